package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/qqvirus/chromium-source-tarball/internal/utils"
)

type PrintOptions struct {
	Version string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// PrettyPrintResult writes a short export summary to stdout. On dumb
// terminals the styling degrades to plain text.
func PrettyPrintResult(res *Result, opts PrintOptions) {
	plain := termenv.ColorProfile() == termenv.Ascii

	title := "chromium-source-tarball"
	if opts.Version != "" {
		title += " " + opts.Version
	}

	rows := [][2]string{
		{"archive", res.ArchivePath},
		{"basename", res.Basename},
		{"entries", fmt.Sprintf("%d added, %d skipped", res.Added, res.Skipped)},
		{"content", utils.FormatBytes(res.Bytes)},
		{"duration", res.Duration.Round(time.Millisecond).String()},
	}

	var b strings.Builder
	if plain {
		b.WriteString(title + "\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "  %-10s %s\n", row[0], row[1])
		}
	} else {
		b.WriteString(titleStyle.Render(title) + "\n")
		for _, row := range rows {
			b.WriteString("  " + labelStyle.Render(row[0]) + valueStyle.Render(row[1]) + "\n")
		}
	}
	fmt.Print(b.String())
}
