// Package render turns a CV document into what the user sees: a structured
// Layout for on-screen preview and a printable HTML page for PDF export.
// Both are built from the same Layout, so section presence and bullet
// filtering cannot drift between the two.
package render

import (
	"strings"

	"cv-builder/internal/model"
)

const (
	NamePlaceholder = "[Your Name]"
	EmptyTitle      = "Your CV preview will appear here"
	EmptyHint       = "Start by filling out your personal information"

	contactSeparator = " | "
	skillSeparator   = ", "
	awardSeparator   = " | "
)

// SectionKind identifies a layout section. Sections always appear in the
// order the constants are declared.
type SectionKind string

const (
	SectionSummary    SectionKind = "summary"
	SectionSkills     SectionKind = "skills"
	SectionExperience SectionKind = "experience"
	SectionProjects   SectionKind = "projects"
	SectionEducation  SectionKind = "education"
)

var sectionTitles = map[SectionKind]string{
	SectionSummary:    "Summary",
	SectionSkills:     "Technical Skills",
	SectionExperience: "Professional Experience",
	SectionProjects:   "Key Projects",
	SectionEducation:  "Education & Awards",
}

type Header struct {
	Name     string   `json:"name"`
	Contacts []string `json:"contacts"`
}

// ContactLine joins the contacts with " | ".
func (h Header) ContactLine() string {
	return strings.Join(h.Contacts, contactSeparator)
}

type SkillLine struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Skills   []string       `json:"skills"`
}

func (s SkillLine) String() string {
	return s.Label + ": " + strings.Join(s.Skills, skillSeparator)
}

// Entry is one experience, project or degree line. Subtitle is the company
// or university shown after " | "; Detail is the tech stack shown on its own
// line; Secondary is the right-aligned duration.
type Entry struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Detail    string   `json:"detail,omitempty"`
	Secondary string   `json:"secondary,omitempty"`
	Bullets   []string `json:"bullets,omitempty"`
}

// Heading is Title followed by " | Subtitle" when a subtitle is set.
func (e Entry) Heading() string {
	if e.Subtitle == "" {
		return e.Title
	}
	return e.Title + " | " + e.Subtitle
}

type Section struct {
	Kind    SectionKind `json:"kind"`
	Title   string      `json:"title"`
	Text    string      `json:"text,omitempty"`
	Skills  []SkillLine `json:"skills,omitempty"`
	Entries []Entry     `json:"entries,omitempty"`
	Degree  *Entry      `json:"degree,omitempty"`
	Awards  []string    `json:"awards,omitempty"`
}

// AwardsLine renders the awards as "Awards: a | b", or "" when there are none.
func (s Section) AwardsLine() string {
	if len(s.Awards) == 0 {
		return ""
	}
	return "Awards: " + strings.Join(s.Awards, awardSeparator)
}

// Layout is the derived view of a document. When Empty is set the caller
// should show the placeholder message instead of the sections.
type Layout struct {
	Empty    bool      `json:"empty"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Section returns the section of the given kind, if present.
func (l Layout) Section(kind SectionKind) (Section, bool) {
	for _, s := range l.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Build derives the layout of d. It is pure and deterministic.
func Build(d model.Document) Layout {
	l := Layout{
		Empty: d.IsEmpty(),
		Header: Header{
			Name:     d.PersonalInfo.Name,
			Contacts: d.PersonalInfo.Contacts(),
		},
		Sections: []Section{},
	}
	if l.Header.Name == "" {
		l.Header.Name = NamePlaceholder
	}

	if d.Summary != "" {
		l.Sections = append(l.Sections, section(SectionSummary, func(s *Section) { s.Text = d.Summary }))
	}

	if d.Skills.Any() {
		l.Sections = append(l.Sections, section(SectionSkills, func(s *Section) {
			for _, c := range model.SkillCategories {
				if list := d.Skills.Get(c.Key); len(list) > 0 {
					s.Skills = append(s.Skills, SkillLine{Category: c.Key, Label: c.Label, Skills: list})
				}
			}
		}))
	}

	if len(d.Experience) > 0 {
		l.Sections = append(l.Sections, section(SectionExperience, func(s *Section) {
			for _, e := range d.Experience {
				s.Entries = append(s.Entries, Entry{
					Title:     e.Title,
					Subtitle:  e.Company,
					Secondary: e.Duration,
					Bullets:   VisibleLines(e.Bullets),
				})
			}
		}))
	}

	if len(d.Projects) > 0 {
		l.Sections = append(l.Sections, section(SectionProjects, func(s *Section) {
			for _, p := range d.Projects {
				s.Entries = append(s.Entries, Entry{
					Title:   p.Name,
					Detail:  p.TechStack,
					Bullets: VisibleLines(p.Bullets),
				})
			}
		}))
	}

	if d.Education.Degree != "" || len(d.Awards) > 0 {
		l.Sections = append(l.Sections, section(SectionEducation, func(s *Section) {
			if d.Education.Degree != "" {
				s.Degree = &Entry{
					Title:     d.Education.Degree,
					Subtitle:  d.Education.University,
					Secondary: d.Education.Duration,
				}
			}
			s.Awards = VisibleLines(d.Awards)
		}))
	}

	return l
}

func section(kind SectionKind, fill func(*Section)) Section {
	s := Section{Kind: kind, Title: sectionTitles[kind]}
	fill(&s)
	return s
}

// VisibleLines keeps the lines whose trimmed value is non-empty. The kept
// lines are returned untrimmed; nil is returned when nothing is left.
func VisibleLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
