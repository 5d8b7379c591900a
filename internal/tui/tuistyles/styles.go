package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#8B7FFF"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#0E7C86", Dark: "#3FC1C9"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#C05A00", Dark: "#FF9F45"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1E8E3E", Dark: "#4ADE80"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F87171"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#60A5FA"}

	ColorBackground = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	ColorForeground = lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#E4E4EF"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	ColorNewRegime = ColorInfo
	ColorOldRegime = ColorAccent
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)

// MetricTrendStyle colours a change. For tax a decrease is good, so callers
// pass isPositive=true for savings.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▼"
	}
	return "▲"
}

// RegimeColor returns the accent colour used for a regime
func RegimeColor(r domain.Regime) lipgloss.TerminalColor {
	if r == domain.RegimeOld {
		return ColorOldRegime
	}
	return ColorNewRegime
}

// FormatCurrency formats rupees with Indian grouping
func FormatCurrency(amount decimal.Decimal) string {
	return domain.FormatRupees(amount.Round(0))
}
