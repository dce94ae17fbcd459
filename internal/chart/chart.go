// Package chart renders grouped bar charts for stat datasets.
package chart

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/owstat/internal/model"
)

const (
	barRune             = '█'
	emptyRune           = '·'
	minBarWidth         = 10
	belowMarker         = "X"
	terminalWidthBackup = 80
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	heroStyle   = lipgloss.NewStyle().Bold(true)
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Render draws a grouped bar chart: one facet per hero, one bar per player,
// bars colored with the hero's display color. Rows below the playtime
// threshold keep their bar but carry an X marker.
func Render(w io.Writer, ds model.Dataset, width int) error {
	return render(w, ds, width, false)
}

// RenderWithColor draws the chart with optional forced color output.
func RenderWithColor(w io.Writer, ds model.Dataset, width int, forceColor bool) error {
	return render(w, ds, width, forceColor)
}

func render(w io.Writer, ds model.Dataset, width int, forceColor bool) error {
	if len(ds.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No data to chart.")
		return err
	}
	if width <= 0 {
		width = terminalWidth()
	}
	useColor := shouldUseColor(w, forceColor)

	title := fmt.Sprintf("Overwatch Stats Comparison - %s", ds.Stat)
	if useColor {
		title = titleStyle.Render(title)
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	maxValue := 0.0
	labelWidth := 0
	for _, row := range ds.Rows {
		if row.Value > maxValue {
			maxValue = row.Value
		}
		if lw := runewidth.StringWidth(row.Player); lw > labelWidth {
			labelWidth = lw
		}
	}

	for _, hero := range heroOrder(ds.Rows) {
		heroLine := hero
		if useColor {
			heroLine = heroStyle.Foreground(lipgloss.Color(colorFor(ds.Rows, hero))).Render(hero)
		}
		if _, err := fmt.Fprintln(w, heroLine); err != nil {
			return err
		}
		for _, row := range ds.Rows {
			if row.Hero != hero {
				continue
			}
			if err := renderBar(w, row, maxValue, labelWidth, width, useColor); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}

	for _, warning := range ds.Warnings {
		line := "warning: " + warning
		if useColor {
			line = mutedStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderBar(w io.Writer, row model.Row, maxValue float64, labelWidth, totalWidth int, useColor bool) error {
	valueLabel := FormatValue(row.Value)
	suffix := fmt.Sprintf(" %s (%d games)", valueLabel, row.GamesPlayed)
	if row.BelowThreshold {
		marker := belowMarker
		if useColor {
			marker = markerStyle.Render(marker)
		}
		suffix += " " + marker
	}

	barWidth := totalWidth - labelWidth - runewidth.StringWidth(suffix) - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	filled := 0
	if maxValue > 0 {
		filled = int(float64(barWidth)*row.Value/maxValue + 0.5)
	}
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat(string(barRune), filled)
	if filled == 0 && row.Value > 0 {
		bar = string(barRune)
	}
	if bar == "" {
		bar = string(emptyRune)
	}
	if useColor && row.Color != "" {
		bar = lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render(bar)
	}

	label := runewidth.FillRight(row.Player, labelWidth)
	_, err := fmt.Fprintf(w, "  %s  %s%s\n", label, bar, suffix)
	return err
}

// FormatValue prints a stat value without a fixed decimal count, so whole
// numbers stay whole and averages keep their precision.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func heroOrder(rows []model.Row) []string {
	seen := map[string]struct{}{}
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Hero]; ok {
			continue
		}
		seen[row.Hero] = struct{}{}
		order = append(order, row.Hero)
	}
	return order
}

func colorFor(rows []model.Row, hero string) string {
	for _, row := range rows {
		if row.Hero == hero && row.Color != "" {
			return row.Color
		}
	}
	return "#F0F0F0"
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
