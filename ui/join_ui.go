package ui

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// JoinUI is the first screen: player name, server address, and a choice
// between joining a server and practicing offline.
type JoinUI struct {
	UI *ebitenui.UI

	OnConnect  func(name, address string)
	OnPractice func(name, maze string)

	nameInput    *widget.TextInput
	addressInput *widget.TextInput
	statusLabel  *widget.Label
	connectBtn   *widget.Button
	mazeBtn      *widget.Button

	mazes     []string
	mazeIndex int

	titleFace  text.Face
	normalFace text.Face
	smallFace  text.Face
}

// NewJoinUI builds the screen prefilled with name and address. mazes lists
// the mazes offered for practice.
func NewJoinUI(name, address string, mazes []string, onConnect func(name, address string), onPractice func(name, maze string)) (*JoinUI, error) {
	ui := &JoinUI{
		OnConnect:  onConnect,
		OnPractice: onPractice,
		mazes:      mazes,
	}
	if err := ui.loadFonts(); err != nil {
		return nil, err
	}
	ui.buildUI()
	ui.nameInput.SetText(name)
	ui.addressInput.SetText(address)
	return ui, nil
}

func (ui *JoinUI) loadFonts() error {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load UI font: %w", err)
	}

	ui.titleFace = &text.GoTextFace{Source: fontSource, Size: 28}
	ui.normalFace = &text.GoTextFace{Source: fontSource, Size: 16}
	ui.smallFace = &text.GoTextFace{Source: fontSource, Size: 13}
	return nil
}

func (ui *JoinUI) buildUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.RGBA{10, 10, 30, 255})),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	contentContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(16)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	titleLabel := widget.NewLabel(
		widget.LabelOpts.Text("MAZERUN", &ui.titleFace, &widget.LabelColor{
			Idle: color.RGBA{255, 255, 0, 255},
		}),
	)
	contentContainer.AddChild(titleLabel)

	ui.nameInput = ui.newTextInput("player")
	contentContainer.AddChild(ui.labeledRow("Name:    ", ui.nameInput))

	ui.addressInput = ui.newTextInput("localhost:7373")
	contentContainer.AddChild(ui.labeledRow("Server:  ", ui.addressInput))

	ui.statusLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &ui.smallFace, &widget.LabelColor{
			Idle: color.RGBA{255, 200, 100, 255},
		}),
	)
	contentContainer.AddChild(ui.statusLabel)

	contentContainer.AddChild(ui.buildButtons())
	rootContainer.AddChild(contentContainer)

	ui.UI = &ebitenui.UI{Container: rootContainer}
}

func (ui *JoinUI) newTextInput(placeholder string) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 26)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{40, 40, 80, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{30, 30, 50, 255}),
		}),
		widget.TextInputOpts.Face(&ui.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func (ui *JoinUI) labeledRow(label string, input *widget.TextInput) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(label, &ui.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	))
	row.AddChild(input)
	return row
}

func (ui *JoinUI) newButton(label string, idle color.RGBA, onClick func()) *widget.Button {
	hover := lighten(idle, 30)
	return widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(140, 30)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(idle),
			Hover:    image.NewNineSliceColor(hover),
			Pressed:  image.NewNineSliceColor(idle),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
		}),
		widget.ButtonOpts.Text(label, &ui.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{255, 255, 200, 255},
			Pressed:  color.RGBA{200, 200, 150, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func lighten(c color.RGBA, d int) color.RGBA {
	up := func(v uint8) uint8 { return uint8(min(int(v)+d, 255)) }
	return color.RGBA{R: up(c.R), G: up(c.G), B: up(c.B), A: c.A}
}

func (ui *JoinUI) buildButtons() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)

	ui.connectBtn = ui.newButton("Connect", color.RGBA{40, 100, 40, 255}, func() {
		if ui.OnConnect != nil {
			ui.OnConnect(ui.Name(), ui.Address())
		}
	})
	container.AddChild(ui.connectBtn)

	container.AddChild(ui.newButton("Practice", color.RGBA{60, 60, 120, 255}, func() {
		if ui.OnPractice != nil {
			ui.OnPractice(ui.Name(), ui.Maze())
		}
	}))

	ui.mazeBtn = ui.newButton(ui.mazeLabel(), color.RGBA{60, 60, 80, 255}, func() {
		if len(ui.mazes) == 0 {
			return
		}
		ui.mazeIndex = (ui.mazeIndex + 1) % len(ui.mazes)
		ui.mazeBtn.Text().Label = ui.mazeLabel()
	})
	container.AddChild(ui.mazeBtn)

	return container
}

func (ui *JoinUI) mazeLabel() string {
	return "Maze: " + ui.Maze()
}

// Name is the trimmed player name, or "player" when empty.
func (ui *JoinUI) Name() string {
	return NormalizeName(ui.nameInput.GetText())
}

// Address is the server address with the default port added when missing.
func (ui *JoinUI) Address() string {
	return NormalizeAddress(ui.addressInput.GetText())
}

// Maze is the maze selected for practice.
func (ui *JoinUI) Maze() string {
	if len(ui.mazes) == 0 {
		return ""
	}
	return ui.mazes[ui.mazeIndex]
}

func (ui *JoinUI) SetStatus(msg string) {
	if ui.statusLabel != nil {
		ui.statusLabel.Label = msg
	}
}

func (ui *JoinUI) SetConnecting(connecting bool) {
	if ui.connectBtn != nil {
		ui.connectBtn.GetWidget().Disabled = connecting
	}
}

func (ui *JoinUI) Update() {
	ui.UI.Update()
}
