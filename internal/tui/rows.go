package tui

import (
	"fmt"

	"cv-builder/internal/editor"
	"cv-builder/internal/model"
)

// row is one line of the form. A row with edit set opens a text input on
// enter; a row with activate runs that op on enter instead. remove is the
// op bound to ctrl+d.
type row struct {
	section  string
	label    string
	value    string
	edit     func(string) editor.Op
	activate *editor.Op
	remove   *editor.Op
}

func op(o editor.Op) *editor.Op { return &o }

func buildRows(d model.Document) []row {
	var rows []row

	personal := []struct {
		field model.PersonalField
		label string
	}{
		{model.PersonalName, "Name"},
		{model.PersonalEmail, "Email"},
		{model.PersonalPhone, "Phone"},
		{model.PersonalLocation, "Location"},
		{model.PersonalLinkedIn, "LinkedIn"},
		{model.PersonalGitHub, "GitHub"},
	}
	for _, p := range personal {
		field := p.field
		v, _ := d.PersonalInfo.Get(field)
		rows = append(rows, row{
			section: "Personal Information",
			label:   p.label,
			value:   v,
			edit: func(s string) editor.Op {
				return editor.Op{Kind: editor.OpUpdatePersonalInfo, Field: string(field), Value: s}
			},
		})
	}

	rows = append(rows, row{
		section: "Summary",
		label:   "Summary",
		value:   d.Summary,
		edit:    func(s string) editor.Op { return editor.Op{Kind: editor.OpUpdateSummary, Value: s} },
	})

	for _, c := range model.SkillCategories {
		cat := c.Key
		for i, skill := range d.Skills.Get(cat) {
			rows = append(rows, row{
				section: "Technical Skills",
				label:   c.Label,
				value:   skill,
				remove:  op(editor.Op{Kind: editor.OpRemoveSkill, Category: cat, Index: i}),
			})
		}
		rows = append(rows, row{
			section: "Technical Skills",
			label:   "+ " + c.Label,
			value:   "",
			edit: func(s string) editor.Op {
				return editor.Op{Kind: editor.OpAddSkill, Category: cat, Value: s}
			},
		})
	}

	for i, e := range d.Experience {
		i := i
		remove := op(editor.Op{Kind: editor.OpRemoveExperience, Index: i})
		section := fmt.Sprintf("Experience #%d", i+1)
		for _, f := range []struct {
			field model.EntryField
			label string
			value string
		}{
			{model.FieldTitle, "Title", e.Title},
			{model.FieldCompany, "Company", e.Company},
			{model.FieldDuration, "Duration", e.Duration},
		} {
			field := f.field
			rows = append(rows, row{
				section: section,
				label:   f.label,
				value:   f.value,
				remove:  remove,
				edit: func(s string) editor.Op {
					return editor.Op{Kind: editor.OpUpdateExperience, Index: i, Field: string(field), Value: s}
				},
			})
		}
		for b, text := range e.Bullets {
			b := b
			rows = append(rows, row{
				section: section,
				label:   "•",
				value:   text,
				remove:  op(editor.Op{Kind: editor.OpRemoveExperienceBullet, Index: i, Bullet: b}),
				edit: func(s string) editor.Op {
					return editor.Op{Kind: editor.OpUpdateExperienceBullet, Index: i, Bullet: b, Value: s}
				},
			})
		}
		rows = append(rows, row{
			section:  section,
			label:    "+ bullet",
			activate: op(editor.Op{Kind: editor.OpAddExperienceBullet, Index: i}),
		})
	}
	rows = append(rows, row{
		section:  "Experience",
		label:    "+ experience",
		activate: op(editor.Op{Kind: editor.OpAddExperience}),
	})

	for i, p := range d.Projects {
		i := i
		remove := op(editor.Op{Kind: editor.OpRemoveProject, Index: i})
		section := fmt.Sprintf("Project #%d", i+1)
		for _, f := range []struct {
			field model.EntryField
			label string
			value string
		}{
			{model.FieldName, "Name", p.Name},
			{model.FieldTechStack, "Tech Stack", p.TechStack},
		} {
			field := f.field
			rows = append(rows, row{
				section: section,
				label:   f.label,
				value:   f.value,
				remove:  remove,
				edit: func(s string) editor.Op {
					return editor.Op{Kind: editor.OpUpdateProject, Index: i, Field: string(field), Value: s}
				},
			})
		}
		for b, text := range p.Bullets {
			b := b
			rows = append(rows, row{
				section: section,
				label:   "•",
				value:   text,
				remove:  op(editor.Op{Kind: editor.OpRemoveProjectBullet, Index: i, Bullet: b}),
				edit: func(s string) editor.Op {
					return editor.Op{Kind: editor.OpUpdateProjectBullet, Index: i, Bullet: b, Value: s}
				},
			})
		}
		rows = append(rows, row{
			section:  section,
			label:    "+ bullet",
			activate: op(editor.Op{Kind: editor.OpAddProjectBullet, Index: i}),
		})
	}
	rows = append(rows, row{
		section:  "Projects",
		label:    "+ project",
		activate: op(editor.Op{Kind: editor.OpAddProject}),
	})

	for _, f := range []struct {
		field model.EducationField
		label string
		value string
	}{
		{model.EducationDegree, "Degree", d.Education.Degree},
		{model.EducationUniversity, "University", d.Education.University},
		{model.EducationDuration, "Duration", d.Education.Duration},
	} {
		field := f.field
		rows = append(rows, row{
			section: "Education",
			label:   f.label,
			value:   f.value,
			edit: func(s string) editor.Op {
				return editor.Op{Kind: editor.OpUpdateEducation, Field: string(field), Value: s}
			},
		})
	}

	for i, a := range d.Awards {
		i := i
		rows = append(rows, row{
			section: "Awards",
			label:   "Award",
			value:   a,
			remove:  op(editor.Op{Kind: editor.OpRemoveAward, Index: i}),
			edit: func(s string) editor.Op {
				return editor.Op{Kind: editor.OpUpdateAward, Index: i, Value: s}
			},
		})
	}
	rows = append(rows, row{
		section:  "Awards",
		label:    "+ award",
		activate: op(editor.Op{Kind: editor.OpAddAward}),
	})

	return rows
}
