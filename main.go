package main

import (
	"flag"
	"log"
	"sync"

	"github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/fonts"
	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/scenes"
	"github.com/automoto/mazerun-mp/shared/protocol"
	"github.com/automoto/mazerun-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	mu     sync.Mutex
	width  int
	height int
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

// ScreenSize is the size Layout last reported. Scenes apply it at the start
// of their next Update.
func (g *Game) ScreenSize() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

func NewGame(practice bool, maze string) *Game {
	g := &Game{width: config.C.Width, height: config.C.Height}

	if practice {
		scene, err := scenes.NewPracticeScene(g, maze)
		if err == nil {
			g.scene = scene
			return g
		}
		logging.Log.Errorw("could not start practice", "maze", maze, "err", err)
	}
	g.scene = scenes.NewJoinScene(g, "")
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout uses the window size as the logical screen, so the maze is drawn at
// whatever cell size fits.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	g.width, g.height = outsideWidth, outsideHeight
	g.mu.Unlock()
	return outsideWidth, outsideHeight
}

func main() {
	addr := flag.String("addr", "", "server address (host:port)")
	name := flag.String("name", "", "player name")
	practice := flag.Bool("practice", false, "start offline practice with bots")
	maze := flag.String("maze", "", "maze for practice mode")
	logPath := flag.String("log", "", "log file path (stderr when empty)")
	debug := flag.Bool("debug", false, "debug logging and target markers")
	tracePath := flag.String("trace", "", "record inbound motion events to this file")
	flag.Parse()

	if err := logging.Init(*logPath, *debug); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Sync()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	if err := fonts.LoadDefaults(config.UI.NameTagFontSize, config.UI.HUDFontSize, config.UI.TitleFontSize); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("mazerun")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		logging.Log.Warnw("could not initialize persistence", "err", err)
	}
	systems.ApplySettings(systems.LoadSettings())

	// Flags win over saved settings
	if *addr != "" {
		config.Network.Address = *addr
	}
	if *name != "" {
		config.Network.PlayerName = *name
	}
	if *tracePath != "" {
		config.Debug.TracePath = *tracePath
	}
	if *debug {
		config.Debug.ShowTargets = true
	}

	if err := ebiten.RunGame(NewGame(*practice, *maze)); err != nil {
		logging.Log.Errorw("game exited", "err", err)
		logging.Sync()
		log.Fatal(err)
	}
}
