package editor

import (
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/resumes"
)

// Reduce returns the document that results from applying msg to doc.
// doc is never modified; the result shares no slices with it.
func Reduce(doc Document, msg Message) Document {
	next := doc.Clone()
	if msg == nil {
		return next
	}
	return msg.apply(next)
}

var newEntryID = uuid.NewString

func (m TitleChanged) apply(d Document) Document {
	d.Title = m.Title
	return d
}

func (m PersonalInfoChanged) apply(d Document) Document {
	d.PersonalInfo = m.Info
	return d
}

func (m ExperienceChanged) apply(d Document) Document {
	d.Experience = make([]resumes.ExperienceEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		d.Experience = append(d.Experience, fixExperience(e))
	}
	return d
}

func (m EducationChanged) apply(d Document) Document {
	d.Education = make([]resumes.EducationEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		d.Education = append(d.Education, fixEducation(e))
	}
	return d
}

func (m SkillsChanged) apply(d Document) Document {
	d.Skills = []string{}
	for _, s := range m.Skills {
		d.Skills = addSkill(d.Skills, s)
	}
	return d
}

func (ExperienceAppended) apply(d Document) Document {
	d.Experience = append(d.Experience, resumes.ExperienceEntry{ID: newEntryID()})
	return d
}

func (m ExperienceRemoved) apply(d Document) Document {
	if m.Index < 0 || m.Index >= len(d.Experience) {
		return d
	}
	d.Experience = append(d.Experience[:m.Index], d.Experience[m.Index+1:]...)
	return d
}

func (m ExperienceUpdated) apply(d Document) Document {
	if m.Index < 0 || m.Index >= len(d.Experience) {
		return d
	}
	entry := m.Entry
	if entry.ID == "" {
		entry.ID = d.Experience[m.Index].ID
	}
	d.Experience[m.Index] = fixExperience(entry)
	return d
}

func (EducationAppended) apply(d Document) Document {
	d.Education = append(d.Education, resumes.EducationEntry{ID: newEntryID()})
	return d
}

func (m EducationRemoved) apply(d Document) Document {
	if m.Index < 0 || m.Index >= len(d.Education) {
		return d
	}
	d.Education = append(d.Education[:m.Index], d.Education[m.Index+1:]...)
	return d
}

func (m EducationUpdated) apply(d Document) Document {
	if m.Index < 0 || m.Index >= len(d.Education) {
		return d
	}
	entry := m.Entry
	if entry.ID == "" {
		entry.ID = d.Education[m.Index].ID
	}
	d.Education[m.Index] = fixEducation(entry)
	return d
}

func (m SkillAdded) apply(d Document) Document {
	d.Skills = addSkill(d.Skills, m.Skill)
	return d
}

func (m SkillRemoved) apply(d Document) Document {
	if m.Index < 0 || m.Index >= len(d.Skills) {
		return d
	}
	d.Skills = append(d.Skills[:m.Index], d.Skills[m.Index+1:]...)
	return d
}

// fixExperience gives the entry an id and drops the end date of a current position.
func fixExperience(e resumes.ExperienceEntry) resumes.ExperienceEntry {
	if e.ID == "" {
		e.ID = newEntryID()
	}
	if e.Current {
		e.EndDate = ""
	}
	return e
}

func fixEducation(e resumes.EducationEntry) resumes.EducationEntry {
	if e.ID == "" {
		e.ID = newEntryID()
	}
	if e.Current {
		e.EndDate = ""
	}
	return e
}

// addSkill appends a trimmed skill unless it is blank or already present.
func addSkill(skills []string, skill string) []string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return skills
	}
	for _, s := range skills {
		if strings.EqualFold(s, skill) {
			return skills
		}
	}
	return append(skills, skill)
}
