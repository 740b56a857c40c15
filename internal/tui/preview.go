package tui

import (
	"strings"

	"cv-builder/internal/render"

	"github.com/charmbracelet/lipgloss"
)

type previewStyles struct {
	name, contact, section, heading, secondary, empty lipgloss.Style
	bullet                                            string
}

var (
	colorStyles = previewStyles{
		name:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		contact:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:   lipgloss.NewStyle().Bold(true).Underline(true),
		heading:   lipgloss.NewStyle().Bold(true),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		bullet:    "  • ",
	}
	plainStyles = previewStyles{
		name:      lipgloss.NewStyle(),
		contact:   lipgloss.NewStyle(),
		section:   lipgloss.NewStyle().Transform(strings.ToUpper),
		heading:   lipgloss.NewStyle(),
		secondary: lipgloss.NewStyle(),
		empty:     lipgloss.NewStyle(),
		bullet:    "  - ",
	}
)

// renderPreview draws l with colours, wrapped to width columns.
func renderPreview(l render.Layout, width int) string {
	return lipgloss.NewStyle().Width(width).Render(layoutText(l, colorStyles))
}

// PlainPreview renders l as uncoloured text for non-interactive output.
func PlainPreview(l render.Layout) string {
	return layoutText(l, plainStyles) + "\n"
}

func layoutText(l render.Layout, st previewStyles) string {
	if l.Empty {
		return st.empty.Render(render.EmptyTitle) + "\n" + st.empty.Render(render.EmptyHint)
	}

	var b strings.Builder
	b.WriteString(st.name.Render(l.Header.Name))
	if line := l.Header.ContactLine(); line != "" {
		b.WriteString("\n" + st.contact.Render(line))
	}

	for _, s := range l.Sections {
		b.WriteString("\n\n" + st.section.Render(s.Title) + "\n")
		switch s.Kind {
		case render.SectionSummary:
			b.WriteString(s.Text + "\n")
		case render.SectionSkills:
			for _, line := range s.Skills {
				b.WriteString(line.String() + "\n")
			}
		case render.SectionExperience, render.SectionProjects:
			for _, e := range s.Entries {
				writeEntry(&b, e, st)
			}
		case render.SectionEducation:
			if s.Degree != nil {
				writeEntry(&b, *s.Degree, st)
			}
			if line := s.AwardsLine(); line != "" {
				b.WriteString(line + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeEntry(b *strings.Builder, e render.Entry, st previewStyles) {
	b.WriteString(st.heading.Render(e.Heading()))
	if e.Secondary != "" {
		b.WriteString("  " + st.secondary.Render(e.Secondary))
	}
	b.WriteString("\n")
	if e.Detail != "" {
		b.WriteString(st.secondary.Render(e.Detail) + "\n")
	}
	for _, bullet := range e.Bullets {
		b.WriteString(st.bullet + bullet + "\n")
	}
}
