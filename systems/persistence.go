package systems

import (
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/settings"
	"github.com/hajimehoshi/ebiten/v2"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings = settings.Saved

var settingsStore *settings.Store

// InitPersistence initializes the gdata-backed settings store
func InitPersistence() error {
	s, err := settings.Open("mazerun", *DefaultSettings(), logging.Named("settings"))
	if err != nil {
		return err
	}
	settingsStore = s
	return nil
}

// DefaultSettings mirrors the built-in configuration.
func DefaultSettings() *SavedSettings {
	return &SavedSettings{
		PlayerName:      cfg.Network.PlayerName,
		LastAddress:     cfg.Network.Address,
		Trails:          cfg.Trail.Enabled,
		ResolutionIndex: cfg.Settings.DefaultResolutionIndex,
	}
}

// LoadSettings returns the saved settings, or the defaults when nothing was
// saved or persistence is unavailable.
func LoadSettings() *SavedSettings {
	if settingsStore == nil {
		return DefaultSettings()
	}
	saved := settingsStore.Load()
	return &saved
}

// UpdateSettings applies fn to the saved settings and writes them back.
// Save failures are logged by the store.
func UpdateSettings(fn func(*SavedSettings)) {
	if settingsStore == nil {
		return
	}
	_ = settingsStore.Update(fn)
}

// ApplySettings pushes saved settings into the running config and window.
func ApplySettings(s *SavedSettings) {
	cfg.Trail.Enabled = s.Trails
	if s.PlayerName != "" {
		cfg.Network.PlayerName = s.PlayerName
	}
	if s.LastAddress != "" {
		cfg.Network.Address = s.LastAddress
	}

	ebiten.SetFullscreen(s.Fullscreen)
	if !s.Fullscreen && s.ResolutionIndex >= 0 && s.ResolutionIndex < len(cfg.Settings.Resolutions) {
		res := cfg.Settings.Resolutions[s.ResolutionIndex]
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}
