package model

// Go models that match the cv.schema.json used for payload validation and rendering.

// Category is one of the fixed skill groups of a CV.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryDatabase Category = "database"
	CategoryTools    Category = "tools"
	CategoryOther    Category = "other"
)

// SkillCategory is static display configuration for a Category; it is never persisted.
type SkillCategory struct {
	Key         Category `json:"key"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder"`
}

// SkillCategories lists every category in display order.
var SkillCategories = []SkillCategory{
	{Key: CategoryFrontend, Label: "Frontend", Placeholder: "e.g. React, Angular, Vue.js"},
	{Key: CategoryBackend, Label: "Backend", Placeholder: "e.g. Node.js, .NET Core, Python"},
	{Key: CategoryDatabase, Label: "Database", Placeholder: "e.g. MongoDB, PostgreSQL, MySQL"},
	{Key: CategoryTools, Label: "Tools & DevOps", Placeholder: "e.g. Docker, AWS, Git"},
	{Key: CategoryOther, Label: "Other", Placeholder: "e.g. Testing, Agile, Scrum"},
}

// LookupCategory returns the configuration for key.
func LookupCategory(key Category) (SkillCategory, bool) {
	for _, c := range SkillCategories {
		if c.Key == key {
			return c, true
		}
	}
	return SkillCategory{}, false
}

// PersonalField names one field of PersonalInfo.
type PersonalField string

const (
	PersonalName     PersonalField = "name"
	PersonalEmail    PersonalField = "email"
	PersonalPhone    PersonalField = "phone"
	PersonalLocation PersonalField = "location"
	PersonalLinkedIn PersonalField = "linkedin"
	PersonalGitHub   PersonalField = "github"
)

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Get returns the value of field and whether field is known.
func (p PersonalInfo) Get(field PersonalField) (string, bool) {
	switch field {
	case PersonalName:
		return p.Name, true
	case PersonalEmail:
		return p.Email, true
	case PersonalPhone:
		return p.Phone, true
	case PersonalLocation:
		return p.Location, true
	case PersonalLinkedIn:
		return p.LinkedIn, true
	case PersonalGitHub:
		return p.GitHub, true
	}
	return "", false
}

// With returns a copy of p with field set to value. Unknown fields leave p unchanged.
func (p PersonalInfo) With(field PersonalField, value string) PersonalInfo {
	switch field {
	case PersonalName:
		p.Name = value
	case PersonalEmail:
		p.Email = value
	case PersonalPhone:
		p.Phone = value
	case PersonalLocation:
		p.Location = value
	case PersonalLinkedIn:
		p.LinkedIn = value
	case PersonalGitHub:
		p.GitHub = value
	}
	return p
}

// Contacts returns the non-empty contact fields in header order.
func (p PersonalInfo) Contacts() []string {
	out := make([]string, 0, 5)
	for _, v := range []string{p.Phone, p.Email, p.Location, p.LinkedIn, p.GitHub} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Skills keeps one ordered label list per Category.
type Skills struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
	Tools    []string `json:"tools"`
	Other    []string `json:"other"`
}

// Get returns the list stored under key; unknown keys yield nil.
func (s Skills) Get(key Category) []string {
	switch key {
	case CategoryFrontend:
		return s.Frontend
	case CategoryBackend:
		return s.Backend
	case CategoryDatabase:
		return s.Database
	case CategoryTools:
		return s.Tools
	case CategoryOther:
		return s.Other
	}
	return nil
}

// With returns a copy of s whose key list is replaced by list.
func (s Skills) With(key Category, list []string) Skills {
	switch key {
	case CategoryFrontend:
		s.Frontend = list
	case CategoryBackend:
		s.Backend = list
	case CategoryDatabase:
		s.Database = list
	case CategoryTools:
		s.Tools = list
	case CategoryOther:
		s.Other = list
	}
	return s
}

// Any reports whether at least one category holds a skill.
func (s Skills) Any() bool {
	for _, c := range SkillCategories {
		if len(s.Get(c.Key)) > 0 {
			return true
		}
	}
	return false
}

// EntryField names a scalar field of an Experience or Project entry.
type EntryField string

const (
	FieldTitle     EntryField = "title"
	FieldCompany   EntryField = "company"
	FieldDuration  EntryField = "duration"
	FieldName      EntryField = "name"
	FieldTechStack EntryField = "techStack"
)

type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

// With returns a copy of e with one scalar field replaced.
func (e Experience) With(field EntryField, value string) Experience {
	switch field {
	case FieldTitle:
		e.Title = value
	case FieldCompany:
		e.Company = value
	case FieldDuration:
		e.Duration = value
	}
	return e
}

type Project struct {
	Name      string   `json:"name"`
	TechStack string   `json:"techStack"`
	Bullets   []string `json:"bullets"`
}

// With returns a copy of p with one scalar field replaced.
func (p Project) With(field EntryField, value string) Project {
	switch field {
	case FieldName:
		p.Name = value
	case FieldTechStack:
		p.TechStack = value
	}
	return p
}

// EducationField names a field of Education.
type EducationField string

const (
	EducationDegree     EducationField = "degree"
	EducationUniversity EducationField = "university"
	EducationDuration   EducationField = "duration"
)

type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Duration   string `json:"duration"`
}

// With returns a copy of e with field set to value.
func (e Education) With(field EducationField, value string) Education {
	switch field {
	case EducationDegree:
		e.Degree = value
	case EducationUniversity:
		e.University = value
	case EducationDuration:
		e.Duration = value
	}
	return e
}

// Document is the full structured content of one CV.
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Skills       Skills       `json:"skills"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Education    Education    `json:"education"`
	Awards       []string     `json:"awards"`
}

// NewDocument returns the canonical empty Document: blank scalars and empty,
// non-nil containers. No experience or project entry is pre-created.
func NewDocument() Document {
	return Document{
		Skills: Skills{
			Frontend: []string{},
			Backend:  []string{},
			Database: []string{},
			Tools:    []string{},
			Other:    []string{},
		},
		Experience: []Experience{},
		Projects:   []Project{},
		Awards:     []string{},
	}
}

// NewExperience returns a blank entry with exactly one empty bullet.
func NewExperience() Experience {
	return Experience{Bullets: []string{""}}
}

// NewProject returns a blank entry with exactly one empty bullet.
func NewProject() Project {
	return Project{Bullets: []string{""}}
}

// IsEmpty reports whether nothing worth rendering has been entered yet.
func (d Document) IsEmpty() bool {
	return d.PersonalInfo.Name == "" &&
		d.Summary == "" &&
		!d.Skills.Any() &&
		len(d.Experience) == 0 &&
		len(d.Projects) == 0 &&
		d.Education.Degree == "" &&
		len(d.Awards) == 0
}

// Normalize returns a deep copy of d with nil containers replaced by empty
// ones, so decoded payloads have the same shape as NewDocument.
func (d Document) Normalize() Document {
	d = d.Clone()
	for _, c := range SkillCategories {
		if d.Skills.Get(c.Key) == nil {
			d.Skills = d.Skills.With(c.Key, []string{})
		}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	for i := range d.Experience {
		if d.Experience[i].Bullets == nil {
			d.Experience[i].Bullets = []string{}
		}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].Bullets == nil {
			d.Projects[i].Bullets = []string{}
		}
	}
	if d.Awards == nil {
		d.Awards = []string{}
	}
	return d
}

// Clone returns a deep copy of d sharing no slices with it.
func (d Document) Clone() Document {
	out := d
	out.Skills = Skills{
		Frontend: cloneStrings(d.Skills.Frontend),
		Backend:  cloneStrings(d.Skills.Backend),
		Database: cloneStrings(d.Skills.Database),
		Tools:    cloneStrings(d.Skills.Tools),
		Other:    cloneStrings(d.Skills.Other),
	}
	if d.Experience != nil {
		out.Experience = make([]Experience, len(d.Experience))
		for i, e := range d.Experience {
			e.Bullets = cloneStrings(e.Bullets)
			out.Experience[i] = e
		}
	}
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.Bullets = cloneStrings(p.Bullets)
			out.Projects[i] = p
		}
	}
	out.Awards = cloneStrings(d.Awards)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
