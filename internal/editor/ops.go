// Package editor holds the live-edited CV document and the field-scoped
// operations that change it.
//
// Every operation takes a model.Document by value and returns a new one. Only
// the path to the changed value is copied; untouched entries keep their
// backing arrays, and no operation writes into a slice it received. Indices
// outside the current range make an operation a no-op.
package editor

import (
	"strings"

	"cv-builder/internal/model"
)

func inRange(i, n int) bool { return i >= 0 && i < n }

// without returns a fresh slice holding in minus element i.
func without[T any](in []T, i int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:i]...)
	return append(out, in[i+1:]...)
}

// appended returns a fresh slice holding in plus v.
func appended[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

// replaced returns a fresh slice holding in with element i set to v.
func replaced[T any](in []T, i int, v T) []T {
	out := make([]T, len(in))
	copy(out, in)
	out[i] = v
	return out
}

func UpdatePersonalInfo(d model.Document, field model.PersonalField, value string) model.Document {
	d.PersonalInfo = d.PersonalInfo.With(field, value)
	return d
}

func UpdateSummary(d model.Document, value string) model.Document {
	d.Summary = value
	return d
}

// AddSkill appends the trimmed value to category. Blank values and unknown
// categories are ignored; duplicates are kept.
func AddSkill(d model.Document, category model.Category, value string) model.Document {
	value = strings.TrimSpace(value)
	if value == "" {
		return d
	}
	if _, ok := model.LookupCategory(category); !ok {
		return d
	}
	d.Skills = d.Skills.With(category, appended(d.Skills.Get(category), value))
	return d
}

func RemoveSkill(d model.Document, category model.Category, index int) model.Document {
	list := d.Skills.Get(category)
	if !inRange(index, len(list)) {
		return d
	}
	d.Skills = d.Skills.With(category, without(list, index))
	return d
}

func AddExperience(d model.Document) model.Document {
	d.Experience = appended(d.Experience, model.NewExperience())
	return d
}

func UpdateExperience(d model.Document, index int, field model.EntryField, value string) model.Document {
	if !inRange(index, len(d.Experience)) {
		return d
	}
	d.Experience = replaced(d.Experience, index, d.Experience[index].With(field, value))
	return d
}

func RemoveExperience(d model.Document, index int) model.Document {
	if !inRange(index, len(d.Experience)) {
		return d
	}
	d.Experience = without(d.Experience, index)
	return d
}

func AddExperienceBullet(d model.Document, index int) model.Document {
	if !inRange(index, len(d.Experience)) {
		return d
	}
	e := d.Experience[index]
	e.Bullets = appended(e.Bullets, "")
	d.Experience = replaced(d.Experience, index, e)
	return d
}

func UpdateExperienceBullet(d model.Document, index, bullet int, value string) model.Document {
	if !inRange(index, len(d.Experience)) || !inRange(bullet, len(d.Experience[index].Bullets)) {
		return d
	}
	e := d.Experience[index]
	e.Bullets = replaced(e.Bullets, bullet, value)
	d.Experience = replaced(d.Experience, index, e)
	return d
}

// RemoveExperienceBullet never shrinks an entry below one bullet.
func RemoveExperienceBullet(d model.Document, index, bullet int) model.Document {
	if !inRange(index, len(d.Experience)) {
		return d
	}
	e := d.Experience[index]
	if len(e.Bullets) <= 1 || !inRange(bullet, len(e.Bullets)) {
		return d
	}
	e.Bullets = without(e.Bullets, bullet)
	d.Experience = replaced(d.Experience, index, e)
	return d
}

func AddProject(d model.Document) model.Document {
	d.Projects = appended(d.Projects, model.NewProject())
	return d
}

func UpdateProject(d model.Document, index int, field model.EntryField, value string) model.Document {
	if !inRange(index, len(d.Projects)) {
		return d
	}
	d.Projects = replaced(d.Projects, index, d.Projects[index].With(field, value))
	return d
}

func RemoveProject(d model.Document, index int) model.Document {
	if !inRange(index, len(d.Projects)) {
		return d
	}
	d.Projects = without(d.Projects, index)
	return d
}

func AddProjectBullet(d model.Document, index int) model.Document {
	if !inRange(index, len(d.Projects)) {
		return d
	}
	p := d.Projects[index]
	p.Bullets = appended(p.Bullets, "")
	d.Projects = replaced(d.Projects, index, p)
	return d
}

func UpdateProjectBullet(d model.Document, index, bullet int, value string) model.Document {
	if !inRange(index, len(d.Projects)) || !inRange(bullet, len(d.Projects[index].Bullets)) {
		return d
	}
	p := d.Projects[index]
	p.Bullets = replaced(p.Bullets, bullet, value)
	d.Projects = replaced(d.Projects, index, p)
	return d
}

// RemoveProjectBullet never shrinks an entry below one bullet.
func RemoveProjectBullet(d model.Document, index, bullet int) model.Document {
	if !inRange(index, len(d.Projects)) {
		return d
	}
	p := d.Projects[index]
	if len(p.Bullets) <= 1 || !inRange(bullet, len(p.Bullets)) {
		return d
	}
	p.Bullets = without(p.Bullets, bullet)
	d.Projects = replaced(d.Projects, index, p)
	return d
}

func UpdateEducation(d model.Document, field model.EducationField, value string) model.Document {
	d.Education = d.Education.With(field, value)
	return d
}

func AddAward(d model.Document) model.Document {
	d.Awards = appended(d.Awards, "")
	return d
}

func UpdateAward(d model.Document, index int, value string) model.Document {
	if !inRange(index, len(d.Awards)) {
		return d
	}
	d.Awards = replaced(d.Awards, index, value)
	return d
}

func RemoveAward(d model.Document, index int) model.Document {
	if !inRange(index, len(d.Awards)) {
		return d
	}
	d.Awards = without(d.Awards, index)
	return d
}

// ResetData returns the canonical empty document.
func ResetData(model.Document) model.Document {
	return model.NewDocument()
}
