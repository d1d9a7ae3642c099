package scenes

import (
	"context"
	"errors"
	"fmt"

	"github.com/automoto/mazerun-mp/assets"
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/practice"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

const practiceLocalID netconfig.EntityID = 1

// PracticeScene plays offline against bots that report through the same
// inbox a server connection would use.
type PracticeScene struct {
	*sessionScene
	feed   *practice.Feed
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPracticeScene(sc SceneChanger, mazeName string) (*PracticeScene, error) {
	if mazeName == "" {
		mazeName = cfg.Maze.Default
	}
	maze, err := assets.LoadMaze(mazeName)
	if err != nil {
		return nil, err
	}
	if len(maze.Spawns) == 0 {
		return nil, fmt.Errorf("maze %q has no spawn points", maze.Name)
	}

	ps := &PracticeScene{done: make(chan struct{})}
	ss, err := newSessionScene(sc, maze, practiceLocalID, nil, ps.status)
	if err != nil {
		return nil, err
	}
	ps.sessionScene = ss

	feed, err := practice.NewFeed(maze, ss.sink(), practice.Config{
		Bots:         cfg.Practice.Bots,
		SendRate:     cfg.Practice.SendRate,
		StepInterval: cfg.Practice.StepInterval,
		MaxJitter:    cfg.Practice.MaxJitter,
		SpawnImmune:  cfg.Practice.SpawnImmune,
		Seed:         cfg.Practice.Seed,
	}, logging.Named("practice"))
	if err != nil {
		ss.close()
		return nil, err
	}
	ps.feed = feed

	spawn := maze.Spawns[0]
	ss.session.Join(motion.Event{Kind: motion.EventJoin, ID: practiceLocalID, Row: spawn.Row, Col: spawn.Col, Name: cfg.Network.PlayerName})
	ss.driver.Spawn(mazegrid.Cell{Row: spawn.Row, Col: spawn.Col})

	ctx, cancel := context.WithCancel(context.Background())
	ps.cancel = cancel
	go func() {
		defer close(ps.done)
		if err := feed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			ps.log.Errorw("practice feed stopped", "err", err)
		}
	}()
	return ps, nil
}

func (ps *PracticeScene) Update() {
	if ps.leave {
		ps.cancel()
		<-ps.done
		ps.close()
		ps.sceneChanger.ChangeScene(NewJoinScene(ps.sceneChanger, ""))
		return
	}
	ps.update()
}

func (ps *PracticeScene) status() string {
	return fmt.Sprintf("practice  %s  players %d  trails %s",
		ps.maze.Name, ps.session.Len(), ps.trailsLabel())
}
