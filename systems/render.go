package systems

import (
	"image/color"
	"math"

	"github.com/automoto/mazerun-mp/components"
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/effects"
	"github.com/automoto/mazerun-mp/fonts"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// View places the maze on screen. Pixel positions from the session are
// relative to the maze's top-left corner; View adds the origin.
type View struct {
	Maze    *leveldata.MazeData
	Session *motion.Session

	OriginX, OriginY float64
	ScreenW, ScreenH int
}

// Fit resizes the session to the largest cell size that fits below the HUD
// and centers the maze.
func (v *View) Fit(w, h int) {
	if w == v.ScreenW && h == v.ScreenH {
		return
	}
	v.ScreenW, v.ScreenH = w, h
	hud := cfg.Maze.HUDHeight
	v.Session.Resize(w, h-hud)

	topo := v.Session.Topology()
	v.OriginX = math.Floor((float64(w) - topo.Width()) / 2)
	v.OriginY = float64(hud) + math.Floor((float64(h-hud)-topo.Height())/2)
}

func (v *View) screen(p mazegrid.Point) (float32, float32) {
	return float32(v.OriginX + p.X), float32(v.OriginY + p.Y)
}

// NewMazeRenderer draws walls and marks the tunnel mouths on wrap rows.
func NewMazeRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		screen.Fill(cfg.Maze.FloorColor)
		topo := v.Session.Topology()
		size := float32(topo.CellSize())
		if size <= 0 {
			return
		}
		ox, oy := float32(v.OriginX), float32(v.OriginY)
		for r := 0; r < v.Maze.Rows; r++ {
			for c := 0; c < v.Maze.Cols; c++ {
				if v.Maze.IsWall(r, c) {
					vector.DrawFilledRect(screen, ox+float32(c)*size, oy+float32(r)*size, size, size, cfg.Maze.WallColor, false)
				}
			}
		}
		w := float32(topo.Width())
		for _, r := range topo.WrapRows() {
			y := oy + float32(r)*size
			vector.DrawFilledRect(screen, ox-2, y, 2, size, cfg.Maze.SeamColor, false)
			vector.DrawFilledRect(screen, ox+w, y, 2, size, cfg.Maze.SeamColor, false)
		}
	}
}

// NewTrailRenderer draws each player's recent path in its color, split at the
// seam.
func NewTrailRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	var pts []mazegrid.Point
	var segs [][]mazegrid.Point
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		width := v.Session.Topology().Width()
		v.Session.Each(func(entry *donburi.Entry, _ *components.MotionData) {
			tr := components.Trail.Get(entry)
			if tr.Len() < 2 {
				return
			}
			clr := playerColor(entry)
			clr.A = cfg.Trail.Alpha

			pts = tr.Points(pts[:0])
			segs = effects.Segments(pts, width, segs[:0])
			for _, seg := range segs {
				for i := 1; i < len(seg); i++ {
					x0, y0 := v.screen(seg[i-1])
					x1, y1 := v.screen(seg[i])
					vector.StrokeLine(screen, x0, y0, x1, y1, cfg.Trail.Width, clr, true)
				}
			}
		})
	}
}

// NewPlayerRenderer draws every player, plus a ghost copy on the far side of
// the seam while it is near a tunnel mouth.
func NewPlayerRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		topo := v.Session.Topology()
		size := topo.CellSize()
		v.Session.Each(func(entry *donburi.Entry, m *components.MotionData) {
			p := m.Current
			vs := components.VisualState.Get(entry)
			dx, dy := vs.KnockbackOffset(size)
			p.X += dx
			p.Y += dy

			drawPlayer(v, screen, entry, m, p, size)
			if gx, ok := effects.Ghost(topo, m.Target.Row, p.X, cfg.Effects.GhostMargin); ok {
				drawPlayer(v, screen, entry, m, mazegrid.Point{X: gx, Y: p.Y}, size)
			}

			if cfg.Debug.ShowTargets {
				tx, ty := v.screen(mazegrid.Point{X: m.Target.X, Y: m.Target.Y})
				vector.StrokeRect(screen, tx-3, ty-3, 6, 6, 1, cfg.White, false)
			}
		})
	}
}

func drawPlayer(v *View, screen *ebiten.Image, entry *donburi.Entry, m *components.MotionData, p mazegrid.Point, size float64) {
	radius := size * 0.4
	if entry.HasComponent(components.SpawnPop) {
		radius *= math.Max(components.SpawnPop.Get(entry).Scale, 0)
	}
	if radius <= 0 {
		return
	}

	clr := playerColor(entry)
	vs := components.VisualState.Get(entry)
	switch {
	case vs.Frozen != nil:
		clr = cfg.UI.FrozenColor
	case vs.Immunity != nil && vs.Blink():
		clr = cfg.UI.ImmuneColor
	}

	x, y := v.screen(p)
	vector.DrawFilledCircle(screen, x, y, float32(radius), clr, true)
	if m.IsLocallyDriven {
		vector.StrokeCircle(screen, x, y, float32(radius)+2, 2, cfg.UI.LocalColor, true)
	}
}

// NewSeamFlashRenderer draws a fading bar at the tunnel mouth an entity just
// came out of.
func NewSeamFlashRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		topo := v.Session.Topology()
		size := float32(topo.CellSize())
		components.SeamFlash.Each(v.Session.World(), func(entry *donburi.Entry) {
			f := components.SeamFlash.Get(entry)
			clr := playerColor(entry)
			clr.A = uint8(255 * math.Max(0, math.Min(1, f.Alpha)))

			x := float32(v.OriginX) - size/4
			if !f.Left {
				x = float32(v.OriginX+topo.Width()) - size/4
			}
			y := float32(v.OriginY) + float32(f.Row)*size
			vector.DrawFilledRect(screen, x, y, size/2, size, clr, false)
		})
	}
}

// NewMaskRenderer hides anything drawn beside the maze, such as an entity
// still on the virtual side of a wrap.
func NewMaskRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		topo := v.Session.Topology()
		h := float32(topo.Height())
		oy := float32(v.OriginY)
		left := float32(v.OriginX) - 2
		right := float32(v.OriginX+topo.Width()) + 2
		vector.DrawFilledRect(screen, 0, oy, left, h, cfg.Maze.FloorColor, false)
		vector.DrawFilledRect(screen, right, oy, float32(v.ScreenW)-right, h, cfg.Maze.FloorColor, false)
	}
}

// NewNameTagRenderer writes each player's name above it.
func NewNameTagRenderer(v *View) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		face := fonts.NameTag.Get()
		lift := v.Session.Topology().CellSize() * 0.5
		v.Session.Each(func(entry *donburi.Entry, m *components.MotionData) {
			name := components.Player.Get(entry).Name
			if name == "" {
				return
			}
			x, y := v.screen(m.Current)
			w := font.MeasureString(face, name).Ceil()
			text.Draw(screen, name, face, int(x)-w/2, int(float64(y)-lift)-2, cfg.UI.TextColor)
		})
	}
}

// NewHUDRenderer draws a status line above the maze. status is called every
// frame.
func NewHUDRenderer(status func() string) func(*ecs.ECS, *ebiten.Image) {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		face := fonts.HUD.Get()
		vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(cfg.Maze.HUDHeight), cfg.BlackOverlay, false)
		text.Draw(screen, status(), face, 6, cfg.Maze.HUDHeight-6, cfg.UI.HUDColor)
	}
}

func playerColor(entry *donburi.Entry) color.RGBA {
	return cfg.ColorFor(components.Player.Get(entry).ColorIndex)
}
