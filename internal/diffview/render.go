package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

// Render formats the presentation for a terminal: removals first, then
// additions, then the match-confidence footer.
func Render(p Presentation) string {
	var b strings.Builder
	for _, l := range p.Removed {
		b.WriteString(removedStyle.Render(fmt.Sprintf("- %4d  %s", l.Number+1, l.Text)))
		b.WriteByte('\n')
	}
	for _, l := range p.Added {
		b.WriteString(addedStyle.Render(fmt.Sprintf("+ %4d  %s", l.Number+1, l.Text)))
		b.WriteByte('\n')
	}
	if len(p.Removed) == 0 && len(p.Added) == 0 {
		b.WriteString("no changes\n")
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("match confidence: %.0f%%", p.Confidence*100)))
	b.WriteByte('\n')
	return b.String()
}
