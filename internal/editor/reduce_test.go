package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/resumes"
)

func seeded() Document {
	doc := NewDocument()
	doc.Experience = []resumes.ExperienceEntry{
		{ID: "a", Company: "Acme", Position: "Dev", StartDate: "2020-01", EndDate: "2021-01"},
		{ID: "b", Company: "Initech", Position: "Lead", StartDate: "2021-02"},
	}
	doc.Education = []resumes.EducationEntry{{ID: "e", School: "State", Degree: "BSc", StartDate: "2015-09"}}
	doc.Skills = []string{"Go", "SQL"}
	return doc
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	doc := seeded()
	before := doc.Clone()

	msgs := []Message{
		ExperienceRemoved{Index: 0},
		ExperienceUpdated{Index: 1, Entry: resumes.ExperienceEntry{Company: "X"}},
		EducationRemoved{Index: 0},
		SkillRemoved{Index: 0},
		SkillAdded{Skill: "Rust"},
		ExperienceAppended{},
	}
	for _, msg := range msgs {
		_ = Reduce(doc, msg)
		assert.Equal(t, before, doc, "message %T mutated input", msg)
	}
}

func TestReduceSliceUpdates(t *testing.T) {
	doc := Reduce(seeded(), TitleChanged{Title: "Platform"})
	assert.Equal(t, "Platform", doc.Title)

	info := resumes.PersonalInfo{FullName: "Ada", Email: "ada@example.com"}
	doc = Reduce(doc, PersonalInfoChanged{Info: info})
	assert.Equal(t, info, doc.PersonalInfo)
	assert.Len(t, doc.Experience, 2, "personal info change leaves other slices")

	doc = Reduce(doc, SkillsChanged{Skills: []string{"Go", " go ", "", "Kubernetes"}})
	assert.Equal(t, []string{"Go", "Kubernetes"}, doc.Skills)

	doc = Reduce(doc, ExperienceChanged{Entries: []resumes.ExperienceEntry{{Company: "New", Current: true, EndDate: "2024-01"}}})
	require.Len(t, doc.Experience, 1)
	assert.NotEmpty(t, doc.Experience[0].ID)
	assert.Equal(t, "", doc.Experience[0].EndDate)

	doc = Reduce(doc, EducationChanged{Entries: nil})
	assert.NotNil(t, doc.Education)
	assert.Empty(t, doc.Education)
}

func TestReduceAppendAndRemove(t *testing.T) {
	doc := seeded()

	doc = Reduce(doc, ExperienceAppended{})
	require.Len(t, doc.Experience, 3)
	assert.NotEmpty(t, doc.Experience[2].ID)
	assert.NotEqual(t, doc.Experience[1].ID, doc.Experience[2].ID)

	doc = Reduce(doc, ExperienceRemoved{Index: 0})
	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "b", doc.Experience[0].ID)

	same := Reduce(doc, ExperienceRemoved{Index: 7})
	assert.Equal(t, doc, same)
	same = Reduce(doc, EducationRemoved{Index: -1})
	assert.Equal(t, doc, same)

	doc = Reduce(doc, EducationAppended{})
	require.Len(t, doc.Education, 2)
	doc = Reduce(doc, EducationRemoved{Index: 1})
	assert.Len(t, doc.Education, 1)

	doc = Reduce(doc, SkillAdded{Skill: "sql"})
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills)
	doc = Reduce(doc, SkillRemoved{Index: 1})
	assert.Equal(t, []string{"Go"}, doc.Skills)
}

func TestReduceCurrentVoidsEndDate(t *testing.T) {
	doc := seeded()

	doc = Reduce(doc, ExperienceUpdated{Index: 0, Entry: resumes.ExperienceEntry{
		Company: "Acme", Position: "Dev", StartDate: "2020-01", EndDate: "2021-01", Current: true,
	}})
	assert.Equal(t, "a", doc.Experience[0].ID, "id is kept when the update omits it")
	assert.True(t, doc.Experience[0].Current)
	assert.Equal(t, "", doc.Experience[0].EndDate)

	doc = Reduce(doc, EducationUpdated{Index: 0, Entry: resumes.EducationEntry{
		School: "State", Degree: "BSc", StartDate: "2015-09", EndDate: "2019-06", Current: true,
	}})
	assert.Equal(t, "", doc.Education[0].EndDate)
}

func TestValidateFormRules(t *testing.T) {
	doc := seeded()
	doc.PersonalInfo = resumes.PersonalInfo{FullName: "Ada", Email: "ada@example.com"}
	assert.Empty(t, Validate(doc))

	doc = Reduce(doc, ExperienceAppended{})
	doc.PersonalInfo.Website = "not a url"
	issues := Validate(doc)

	got := map[string]string{}
	for _, issue := range issues {
		got[issue.Field] = issue.Issue
	}
	assert.Equal(t, map[string]string{
		"personalInfo.website":    "url",
		"experience[2].company":   "required",
		"experience[2].position":  "required",
		"experience[2].startDate": "required",
	}, got)
}
