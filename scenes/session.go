package scenes

import (
	"fmt"
	"image/color"
	"os"

	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/control"
	"github.com/automoto/mazerun-mp/effects"
	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/gridmove"
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/automoto/mazerun-mp/systems"
	"github.com/automoto/mazerun-mp/trace"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// sessionScene is the part shared by networked and practice play: one
// motion session, the local driver, the frame systems and the renderers.
type sessionScene struct {
	ecs       *ecs.ECS
	session   *motion.Session
	presenter *effects.Presenter
	driver    *control.Driver
	view      *systems.View
	clock     *systems.FrameClock
	maze      *leveldata.MazeData
	log       *zap.SugaredLogger

	sceneChanger SceneChanger
	recorder     *trace.Recorder
	traceFile    *os.File
	leave        bool
}

func newSessionScene(sc SceneChanger, maze *leveldata.MazeData, localID netconfig.EntityID, send control.Sender, status func() string) (*sessionScene, error) {
	log := logging.Named("session")

	topo, err := maze.Topology(float64(maze.TileSize))
	if err != nil {
		return nil, fmt.Errorf("maze %q: %w", maze.Name, err)
	}
	grid, err := gridmove.NewGrid(maze)
	if err != nil {
		return nil, fmt.Errorf("maze %q: %w", maze.Name, err)
	}

	s := motion.NewSession(topo, motion.Options{
		Speed:         cfg.Interp.Speed,
		SnapThreshold: cfg.Interp.SnapThreshold,
		Logger:        log.Desugar(),
		Components:    effects.Components(),
	})

	ss := &sessionScene{
		session:      s,
		maze:         maze,
		log:          log,
		sceneChanger: sc,
		clock:        systems.NewFrameClock(cfg.Interp.MaxFrameDelta),
		view:         &systems.View{Maze: maze, Session: s},
	}
	ss.presenter = effects.NewPresenter(s, effects.Config{
		SpawnPopDuration:  cfg.Effects.SpawnPopDuration,
		SeamFlashDuration: cfg.Effects.SeamFlashDuration,
		TrailMinStep:      cfg.Trail.MinStep,
		Trails:            cfg.Trail.Enabled,
	}, log)
	ss.driver = control.NewDriver(s, grid, localID, cfg.Local.StepInterval, send, logging.Named("control"))
	ss.presenter.Install(ss.driver.OnServerUpdate)

	if err := ss.openTrace(); err != nil {
		log.Warnw("trace recording disabled", "path", cfg.Debug.TracePath, "err", err)
	}

	ss.ecs = ecs.NewECS(s.World())
	ss.ecs.AddSystem(systems.NewClockSystem(ss.clock))
	ss.ecs.AddSystem(systems.UpdateInput)
	ss.ecs.AddSystem(ss.checkLeave)
	ss.ecs.AddSystem(systems.NewLocalMoveSystem(ss.driver, ss.presenter, ss.clock, saveTrails))
	ss.ecs.AddSystem(systems.NewSessionSystem(s, ss.presenter, ss.clock))

	ss.ecs.AddRenderer(cfg.Default, systems.NewMazeRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewTrailRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewPlayerRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewSeamFlashRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewMaskRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewNameTagRenderer(ss.view))
	ss.ecs.AddRenderer(cfg.Default, systems.NewHUDRenderer(status))

	log.Infow("session started", "maze", maze.Name, "local", localID, "rows", maze.Rows, "cols", maze.Cols)
	return ss, nil
}

// openTrace starts recording inbound events when a trace path is configured.
func (ss *sessionScene) openTrace() error {
	if cfg.Debug.TracePath == "" {
		return nil
	}
	f, err := os.Create(cfg.Debug.TracePath)
	if err != nil {
		return err
	}
	rec, err := trace.NewRecorder(f, trace.Header{
		Maze:     ss.maze.Name,
		Rows:     ss.maze.Rows,
		Cols:     ss.maze.Cols,
		WrapRows: ss.maze.WrapRows,
	}, ss.session.Inbox())
	if err != nil {
		_ = f.Close()
		return err
	}
	ss.recorder = rec
	ss.traceFile = f
	ss.log.Infow("recording trace", "path", cfg.Debug.TracePath)
	return nil
}

// sink is where remote events go: the inbox, or the trace recorder in front
// of it.
func (ss *sessionScene) sink() motion.EventSink {
	if ss.recorder != nil {
		return ss.recorder
	}
	return ss.session.Inbox()
}

func (ss *sessionScene) checkLeave(e *ecs.ECS) {
	if in := systems.Input(e); in != nil && in.JustPressed(netconfig.ActionLeave) {
		ss.leave = true
	}
}

// update applies a pending window resize before anything reads positions,
// then runs one frame.
func (ss *sessionScene) update() {
	w, h := ss.sceneChanger.ScreenSize()
	ss.view.Fit(w, h)
	ss.ecs.Update()
}

func (ss *sessionScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if ss.ecs == nil {
		return
	}
	ss.ecs.Draw(screen)
}

// close stops the trace. The session itself holds no outside resources.
func (ss *sessionScene) close() {
	if ss.recorder == nil {
		return
	}
	if err := ss.recorder.Flush(); err != nil {
		ss.log.Warnw("trace flush failed", "err", err)
	}
	if err := ss.traceFile.Close(); err != nil {
		ss.log.Warnw("trace close failed", "err", err)
	}
	ss.recorder = nil
	ss.traceFile = nil
}

func (ss *sessionScene) trailsLabel() string {
	if ss.presenter.Trails() {
		return "on"
	}
	return "off"
}

func saveTrails(on bool) {
	cfg.Trail.Enabled = on
	systems.UpdateSettings(func(saved *systems.SavedSettings) { saved.Trails = on })
}
