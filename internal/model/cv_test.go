package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentIsEmpty(t *testing.T) {
	d := NewDocument()
	assert.True(t, d.IsEmpty())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"personalInfo": {"name":"","email":"","phone":"","location":"","linkedin":"","github":""},
		"summary": "",
		"skills": {"frontend":[],"backend":[],"database":[],"tools":[],"other":[]},
		"experience": [],
		"projects": [],
		"education": {"degree":"","university":"","duration":""},
		"awards": []
	}`, string(b))
}

func TestIsEmpty(t *testing.T) {
	cases := map[string]func(*Document){
		"name":       func(d *Document) { d.PersonalInfo.Name = "Jane" },
		"summary":    func(d *Document) { d.Summary = "x" },
		"skill":      func(d *Document) { d.Skills.Other = []string{"Scrum"} },
		"experience": func(d *Document) { d.Experience = []Experience{NewExperience()} },
		"project":    func(d *Document) { d.Projects = []Project{NewProject()} },
		"degree":     func(d *Document) { d.Education.Degree = "BSc" },
		"award":      func(d *Document) { d.Awards = []string{""} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := NewDocument()
			mutate(&d)
			assert.False(t, d.IsEmpty())
		})
	}

	d := NewDocument()
	d.PersonalInfo.Email = "only@email.com"
	d.Education.University = "MIT"
	assert.True(t, d.IsEmpty(), "email and university alone do not count")
}

func TestNormalizeDoesNotTouchInput(t *testing.T) {
	in := Document{Experience: []Experience{{Title: "Engineer"}}}
	out := in.Normalize()

	assert.Nil(t, in.Experience[0].Bullets)
	assert.Equal(t, []string{}, out.Experience[0].Bullets)
	assert.Equal(t, []string{}, out.Skills.Tools)
	assert.Equal(t, []string{}, out.Awards)
	assert.Equal(t, []Project{}, out.Projects)
}

func TestCloneIsDeep(t *testing.T) {
	d := NewDocument()
	d.Skills.Frontend = []string{"React"}
	d.Experience = []Experience{{Bullets: []string{"a"}}}

	c := d.Clone()
	c.Skills.Frontend[0] = "Vue"
	c.Experience[0].Bullets[0] = "b"

	assert.Equal(t, "React", d.Skills.Frontend[0])
	assert.Equal(t, "a", d.Experience[0].Bullets[0])
}

func TestContactsOrder(t *testing.T) {
	p := PersonalInfo{Name: "Jane", Email: "jane@x.com", Phone: "555", GitHub: "gh/jane"}
	assert.Equal(t, []string{"555", "jane@x.com", "gh/jane"}, p.Contacts())

	v, ok := p.Get(PersonalEmail)
	assert.True(t, ok)
	assert.Equal(t, "jane@x.com", v)
	_, ok = p.Get("fax")
	assert.False(t, ok)
}

func TestSkillCategories(t *testing.T) {
	keys := make([]Category, 0, len(SkillCategories))
	for _, c := range SkillCategories {
		keys = append(keys, c.Key)
		assert.NotEmpty(t, c.Placeholder)
	}
	assert.Equal(t, []Category{CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryTools, CategoryOther}, keys)

	tools, ok := LookupCategory(CategoryTools)
	require.True(t, ok)
	assert.Equal(t, "Tools & DevOps", tools.Label)
}
