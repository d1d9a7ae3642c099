package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/mazerun-mp/assets"
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/network"
	"github.com/automoto/mazerun-mp/systems"
	"github.com/automoto/mazerun-mp/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneChanger allows scenes to trigger transitions and read the current
// window size.
type SceneChanger interface {
	ChangeScene(scene interface{})
	ScreenSize() (int, int)
}

// JoinScene asks for a name and a server, then hands a joined client to the
// networked scene or starts practice.
type JoinScene struct {
	sceneChanger SceneChanger
	joinUI       *ui.JoinUI
	netClient    *network.Client
	once         sync.Once
	status       string
	failed       bool
}

// NewJoinScene creates the join screen. status is shown on entry, for
// example why the last session ended.
func NewJoinScene(sc SceneChanger, status string) *JoinScene {
	return &JoinScene{sceneChanger: sc, status: status}
}

func (s *JoinScene) Update() {
	s.once.Do(s.configure)
	if s.failed {
		return
	}

	s.joinUI.Update()

	if s.netClient == nil {
		return
	}
	switch s.netClient.State() {
	case network.StateJoinedGame:
		s.joinUI.SetStatus("Joined! Loading maze...")
		client := s.netClient
		s.netClient = nil
		scene, err := NewNetworkedScene(s.sceneChanger, client)
		if err != nil {
			client.Disconnect()
			s.joinUI.SetStatus(err.Error())
			s.joinUI.SetConnecting(false)
			return
		}
		s.sceneChanger.ChangeScene(scene)

	case network.StateError:
		errMsg := "Connection failed"
		if err := s.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		s.joinUI.SetStatus(errMsg)
		s.joinUI.SetConnecting(false)
		s.netClient.Disconnect()
		s.netClient = nil

	case network.StateConnecting:
		s.joinUI.SetStatus("Connecting...")

	case network.StateConnected:
		s.joinUI.SetStatus("Connected, joining...")

	case network.StateDisconnected:
		s.joinUI.SetStatus("Disconnected")
		s.joinUI.SetConnecting(false)
		s.netClient = nil
	}
}

func (s *JoinScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{10, 10, 30, 255})
	if s.joinUI == nil {
		return
	}
	s.joinUI.UI.Draw(screen)
}

func (s *JoinScene) configure() {
	mazes, err := assets.MazeNames()
	if err != nil {
		logging.Log.Errorw("no mazes available", "err", err)
	}

	s.joinUI, err = ui.NewJoinUI(cfg.Network.PlayerName, cfg.Network.Address, mazes, s.onConnect, s.onPractice)
	if err != nil {
		logging.Log.Errorw("join screen unavailable", "err", err)
		s.failed = true
		return
	}
	s.joinUI.SetStatus(s.status)
}

func (s *JoinScene) onConnect(name, address string) {
	if s.netClient != nil {
		s.netClient.Disconnect()
	}
	remember(name, address)

	s.joinUI.SetStatus("Connecting...")
	s.joinUI.SetConnecting(true)

	s.netClient = network.NewClient()
	s.netClient.Connect(address, cfg.Network.Version, name)
}

func (s *JoinScene) onPractice(name, maze string) {
	remember(name, "")
	scene, err := NewPracticeScene(s.sceneChanger, maze)
	if err != nil {
		s.joinUI.SetStatus(err.Error())
		return
	}
	s.sceneChanger.ChangeScene(scene)
}

// remember stores the name and, when set, the address for the next launch.
func remember(name, address string) {
	cfg.Network.PlayerName = name
	if address != "" {
		cfg.Network.Address = address
	}
	systems.UpdateSettings(func(saved *systems.SavedSettings) {
		saved.PlayerName = name
		if address != "" {
			saved.LastAddress = address
		}
	})
}
