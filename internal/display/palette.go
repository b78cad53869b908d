package display

// Colors is the dashboard colour scheme.
type Colors struct {
	BgPrimary   string
	BgSecondary string
	BgCard      string
	BgCardHover string
	BgInput     string

	GreenPrimary   string
	GreenSecondary string
	RedPrimary     string
	RedSecondary   string

	WomenBlue string
	MenRed    string
	Neutral   string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	BorderDefault string
	BorderHover   string

	Warning string
	Info    string
}

// Palette is the dark market-style theme used by the HTML templates and the
// CLI.
var Palette = Colors{
	BgPrimary:   "#0a0e27",
	BgSecondary: "#0f1420",
	BgCard:      "#1a1f35",
	BgCardHover: "#1e2438",
	BgInput:     "#141829",

	GreenPrimary:   "#00e676",
	GreenSecondary: "#00c853",
	RedPrimary:     "#ff1744",
	RedSecondary:   "#d50000",

	WomenBlue: "#1f77b4",
	MenRed:    "#d62728",
	Neutral:   "#9575cd",

	TextPrimary:   "#ffffff",
	TextSecondary: "#8b92b0",
	TextMuted:     "#5a5f7d",

	BorderDefault: "#262b44",
	BorderHover:   "#363b64",

	Warning: "#ffc107",
	Info:    "#2196f3",
}
