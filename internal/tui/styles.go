package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorViolet    = lipgloss.Color("#8524a6")
	colorGreen     = lipgloss.Color("#00FF00")
	colorYellow    = lipgloss.Color("#FFFF00")
	colorRed       = lipgloss.Color("#FF0000")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorLightGray)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true).
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			PaddingLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorViolet).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true).
			MarginTop(1)
)

const logo = `
  ██╗   ██╗ ██████╗ ██╗ ██████╗███████╗ █████╗ ██╗
  ██║   ██║██╔═══██╗██║██╔════╝██╔════╝██╔══██╗██║
  ██║   ██║██║   ██║██║██║     █████╗  ███████║██║
  ╚██╗ ██╔╝██║   ██║██║██║     ██╔══╝  ██╔══██║██║
   ╚████╔╝ ╚██████╔╝██║╚██████╗███████╗██║  ██║██║
    ╚═══╝   ╚═════╝ ╚═╝ ╚═════╝╚══════╝╚═╝  ╚═╝╚═╝
`
