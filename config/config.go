package config

import (
	"image/color"
	"time"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer; renderers run in registration order.
const Default ecs.LayerID = 0

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// MazeConfig controls which maze is loaded and how it is drawn.
type MazeConfig struct {
	Default   string
	HUDHeight int // pixels reserved above the maze

	WallColor  color.RGBA
	FloorColor color.RGBA
	SeamColor  color.RGBA // tunnel mouths on wrap rows
}

// InterpConfig tunes the motion session. Zero values pick the built-in
// defaults.
type InterpConfig struct {
	Speed         float64 // exponential smoothing rate per second
	SnapThreshold float64 // pixels
	MaxFrameDelta time.Duration
}

type NetworkConfig struct {
	Address    string
	Version    string
	PlayerName string
}

// LocalConfig drives the locally controlled player.
type LocalConfig struct {
	StepInterval time.Duration // time to cross one cell
}

type TrailConfig struct {
	Enabled bool
	MinStep float64 // fraction of a cell between samples
	Width   float32
	Alpha   uint8
}

// PracticeConfig configures offline bots.
type PracticeConfig struct {
	Bots         int
	SendRate     float64
	StepInterval time.Duration
	MaxJitter    time.Duration
	SpawnImmune  time.Duration
	Seed         uint64
}

type EffectsConfig struct {
	SpawnPopDuration  float32 // seconds
	SeamFlashDuration float32
	GhostMargin       float64 // cells from the seam at which a ghost copy is drawn
}

type UIConfig struct {
	NameTagFontSize float64
	HUDFontSize     float64
	TitleFontSize   float64
	TextColor       color.RGBA
	HUDColor        color.RGBA
	LocalColor      color.RGBA
	ImmuneColor     color.RGBA
	FrozenColor     color.RGBA
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowTargets bool   // draw each entity's target cell
	TracePath   string // record inbound events here when set
}

type PlayerColor struct {
	Name string
	RGBA color.RGBA
}

type PlayerColorsConfig struct {
	Colors []PlayerColor
}

// Global configuration instances
var C *Config
var Maze MazeConfig
var Interp InterpConfig
var Network NetworkConfig
var Local LocalConfig
var Trail TrailConfig
var Practice PracticeConfig
var Effects EffectsConfig
var UI UIConfig
var Debug DebugConfig
var PlayerColors PlayerColorsConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen  = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 33, G: 33, B: 222, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Cyan         = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Pink         = color.RGBA{R: 255, G: 184, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  960,
		Height: 720,
	}

	Maze = MazeConfig{
		Default:    "classic",
		HUDHeight:  24,
		WallColor:  DarkBlue,
		FloorColor: Black,
		SeamColor:  color.RGBA{R: 60, G: 60, B: 120, A: 255},
	}

	Interp = InterpConfig{
		Speed:         8,
		SnapThreshold: 0.5,
		MaxFrameDelta: 250 * time.Millisecond,
	}

	Network = NetworkConfig{
		Address:    "localhost:7373",
		Version:    "0.1.0",
		PlayerName: "player",
	}

	Local = LocalConfig{
		StepInterval: 150 * time.Millisecond,
	}

	Trail = TrailConfig{
		Enabled: true,
		MinStep: 0.25,
		Width:   3,
		Alpha:   140,
	}

	Practice = PracticeConfig{
		Bots:         4,
		SendRate:     30,
		StepInterval: 180 * time.Millisecond,
		MaxJitter:    40 * time.Millisecond,
		SpawnImmune:  2 * time.Second,
		Seed:         1,
	}

	Effects = EffectsConfig{
		SpawnPopDuration:  0.35,
		SeamFlashDuration: 0.4,
		GhostMargin:       1,
	}

	UI = UIConfig{
		NameTagFontSize: 10,
		HUDFontSize:     14,
		TitleFontSize:   28,
		TextColor:       White,
		HUDColor:        LightGreen,
		LocalColor:      Yellow,
		ImmuneColor:     White,
		FrozenColor:     LightBlue,
	}

	PlayerColors = PlayerColorsConfig{
		Colors: []PlayerColor{
			{Name: "red", RGBA: Red},
			{Name: "pink", RGBA: Pink},
			{Name: "cyan", RGBA: Cyan},
			{Name: "orange", RGBA: Orange},
			{Name: "green", RGBA: BrightGreen},
			{Name: "magenta", RGBA: Magenta},
			{Name: "blue", RGBA: Blue},
			{Name: "white", RGBA: White},
		},
	}
}

// ColorFor returns the player color for a palette index, wrapping around.
func ColorFor(index int) color.RGBA {
	n := len(PlayerColors.Colors)
	if n == 0 {
		return White
	}
	index %= n
	if index < 0 {
		index += n
	}
	return PlayerColors.Colors[index].RGBA
}
