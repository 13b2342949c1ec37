package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
)

// colored renders text in a decision's hex color
func colored(text, hex string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(text)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}
