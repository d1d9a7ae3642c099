package config

// Resolution represents a display resolution option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// SettingsConfig lists the window sizes the join screen offers.
type SettingsConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
}

var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		Resolutions: []Resolution{
			{Width: 960, Height: 720, Label: "960 x 720"},
			{Width: 1280, Height: 960, Label: "1280 x 960"},
			{Width: 1600, Height: 1200, Label: "1600 x 1200"},
			{Width: 640, Height: 480, Label: "640 x 480"},
		},
		DefaultResolutionIndex: 0,
	}
}
