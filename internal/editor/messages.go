package editor

import "resume-builder/internal/resumes"

// Message is an immutable edit emitted by a sub-form.
type Message interface {
	apply(Document) Document
}

type (
	TitleChanged struct{ Title string }

	PersonalInfoChanged struct{ Info resumes.PersonalInfo }

	// ExperienceChanged replaces the whole experience list.
	ExperienceChanged struct{ Entries []resumes.ExperienceEntry }

	// EducationChanged replaces the whole education list.
	EducationChanged struct{ Entries []resumes.EducationEntry }

	// SkillsChanged replaces the whole skill list.
	SkillsChanged struct{ Skills []string }

	ExperienceAppended struct{}
	ExperienceRemoved  struct{ Index int }
	ExperienceUpdated  struct {
		Index int
		Entry resumes.ExperienceEntry
	}

	EducationAppended struct{}
	EducationRemoved  struct{ Index int }
	EducationUpdated  struct {
		Index int
		Entry resumes.EducationEntry
	}

	SkillAdded   struct{ Skill string }
	SkillRemoved struct{ Index int }
)
