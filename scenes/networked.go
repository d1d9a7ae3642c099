package scenes

import (
	"fmt"

	"github.com/automoto/mazerun-mp/assets"
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/network"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

// NetworkedScene plays on a server. Snapshots arrive on the client's router
// goroutine and reach the session through its inbox.
type NetworkedScene struct {
	*sessionScene
	client *network.Client
}

// NewNetworkedScene takes over a client that has already joined.
func NewNetworkedScene(sc SceneChanger, client *network.Client) (*NetworkedScene, error) {
	name := client.Maze()
	if name == "" {
		name = cfg.Maze.Default
	}
	maze, err := assets.LoadMaze(name)
	if err != nil {
		return nil, fmt.Errorf("server maze: %w", err)
	}

	ns := &NetworkedScene{client: client}
	localID := netconfig.EntityID(client.NetworkID())
	ss, err := newSessionScene(sc, maze, localID, client.SendMessage, ns.status)
	if err != nil {
		return nil, err
	}
	ns.sessionScene = ss
	client.SetSink(ss.sink())
	return ns, nil
}

func (ns *NetworkedScene) Update() {
	if ns.leave {
		ns.exit("")
		return
	}
	switch ns.client.State() {
	case network.StateError:
		msg := "Connection lost"
		if err := ns.client.LastError(); err != nil {
			msg = err.Error()
		}
		ns.exit(msg)
		return
	case network.StateDisconnected:
		ns.exit("Disconnected from server")
		return
	}
	ns.update()
}

func (ns *NetworkedScene) exit(status string) {
	ns.client.Disconnect()
	ns.close()
	ns.log.Infow("left server", "reason", status, "corrections", ns.driver.Corrections())
	ns.sceneChanger.ChangeScene(NewJoinScene(ns.sceneChanger, status))
}

func (ns *NetworkedScene) status() string {
	return fmt.Sprintf("%s  players %d  tick %dHz  corrections %d  trails %s",
		ns.maze.Name, ns.session.Len(), ns.client.TickRate(), ns.driver.Corrections(), ns.trailsLabel())
}
