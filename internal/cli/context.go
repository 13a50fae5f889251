package cli

import (
	"io"

	"focusflow/internal/logger"
	"focusflow/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Context is passed to every command's Run method.
type Context struct {
	Store  *storage.YAMLStore
	Logger *logger.Logger
	Out    io.Writer
}

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

func row(label, value string) string {
	return keyStyle.Render(label) + valueStyle.Render(value)
}
