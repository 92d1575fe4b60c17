package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan
	colorAccent     = lipgloss.Color("#FFD700") // Gold
	colorSuccess    = lipgloss.Color("#00E676") // Green
	colorDanger     = lipgloss.Color("#FF5252") // Red
	colorMuted      = lipgloss.Color("#636363") // Gray
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white
	colorSurface    = lipgloss.Color("#1E1E2E") // Status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Tree glyphs.
const (
	iconExpanded = "▾"
	iconHidden   = "▸"
	iconGame     = "●"
)

// CompactWidth is the terminal width below which the footer drops
// binding descriptions.
const CompactWidth = 70

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusFlag = lipgloss.NewStyle().
			Foreground(colorAccent)
)

// Tree row styles.
var (
	styleCategory = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleCategoryHidden = lipgloss.NewStyle().
				Foreground(colorMuted).
				Strikethrough(true)

	styleCount = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleSubsystem = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleCell = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	styleGame = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleEmpty = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)

// Message styles.
var (
	styleInfo = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
