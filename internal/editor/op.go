package editor

import (
	"fmt"

	"cv-builder/internal/model"
)

// OpKind names one semantic editing action.
type OpKind string

const (
	OpUpdatePersonalInfo     OpKind = "updatePersonalInfo"
	OpUpdateSummary          OpKind = "updateSummary"
	OpAddSkill               OpKind = "addSkill"
	OpRemoveSkill            OpKind = "removeSkill"
	OpAddExperience          OpKind = "addExperience"
	OpUpdateExperience       OpKind = "updateExperience"
	OpRemoveExperience       OpKind = "removeExperience"
	OpAddExperienceBullet    OpKind = "addExperienceBullet"
	OpUpdateExperienceBullet OpKind = "updateExperienceBullet"
	OpRemoveExperienceBullet OpKind = "removeExperienceBullet"
	OpAddProject             OpKind = "addProject"
	OpUpdateProject          OpKind = "updateProject"
	OpRemoveProject          OpKind = "removeProject"
	OpAddProjectBullet       OpKind = "addProjectBullet"
	OpUpdateProjectBullet    OpKind = "updateProjectBullet"
	OpRemoveProjectBullet    OpKind = "removeProjectBullet"
	OpUpdateEducation        OpKind = "updateEducation"
	OpAddAward               OpKind = "addAward"
	OpUpdateAward            OpKind = "updateAward"
	OpRemoveAward            OpKind = "removeAward"
	OpResetData              OpKind = "resetData"
)

// Op is one editing action together with its arguments. Which arguments are
// read depends on Kind: Field for the update* operations, Category for
// skills, Index for the entry or award position and Bullet for the bullet
// position inside an entry.
type Op struct {
	Kind     OpKind         `json:"op"`
	Field    string         `json:"field,omitempty"`
	Category model.Category `json:"category,omitempty"`
	Index    int            `json:"index"`
	Bullet   int            `json:"bullet"`
	Value    string         `json:"value"`
}

// UnknownOpError is returned by Apply for an unrecognised Kind.
type UnknownOpError struct {
	Kind OpKind
}

func (e *UnknownOpError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Kind)
}

// Apply runs op against d and returns the resulting document.
func Apply(d model.Document, op Op) (model.Document, error) {
	switch op.Kind {
	case OpUpdatePersonalInfo:
		return UpdatePersonalInfo(d, model.PersonalField(op.Field), op.Value), nil
	case OpUpdateSummary:
		return UpdateSummary(d, op.Value), nil
	case OpAddSkill:
		return AddSkill(d, op.Category, op.Value), nil
	case OpRemoveSkill:
		return RemoveSkill(d, op.Category, op.Index), nil
	case OpAddExperience:
		return AddExperience(d), nil
	case OpUpdateExperience:
		return UpdateExperience(d, op.Index, model.EntryField(op.Field), op.Value), nil
	case OpRemoveExperience:
		return RemoveExperience(d, op.Index), nil
	case OpAddExperienceBullet:
		return AddExperienceBullet(d, op.Index), nil
	case OpUpdateExperienceBullet:
		return UpdateExperienceBullet(d, op.Index, op.Bullet, op.Value), nil
	case OpRemoveExperienceBullet:
		return RemoveExperienceBullet(d, op.Index, op.Bullet), nil
	case OpAddProject:
		return AddProject(d), nil
	case OpUpdateProject:
		return UpdateProject(d, op.Index, model.EntryField(op.Field), op.Value), nil
	case OpRemoveProject:
		return RemoveProject(d, op.Index), nil
	case OpAddProjectBullet:
		return AddProjectBullet(d, op.Index), nil
	case OpUpdateProjectBullet:
		return UpdateProjectBullet(d, op.Index, op.Bullet, op.Value), nil
	case OpRemoveProjectBullet:
		return RemoveProjectBullet(d, op.Index, op.Bullet), nil
	case OpUpdateEducation:
		return UpdateEducation(d, model.EducationField(op.Field), op.Value), nil
	case OpAddAward:
		return AddAward(d), nil
	case OpUpdateAward:
		return UpdateAward(d, op.Index, op.Value), nil
	case OpRemoveAward:
		return RemoveAward(d, op.Index), nil
	case OpResetData:
		return ResetData(d), nil
	}
	return d, &UnknownOpError{Kind: op.Kind}
}
