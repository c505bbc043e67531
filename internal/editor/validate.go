package editor

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/validation"
)

// Form rules of the sub-forms. Optional fields are only checked when filled in.
type personalForm struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Website  string `json:"website" validate:"omitempty,url"`
}

type experienceForm struct {
	Company   string `json:"company" validate:"required"`
	Position  string `json:"position" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
}

type educationForm struct {
	School    string `json:"school" validate:"required"`
	Degree    string `json:"degree" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
}

type documentForm struct {
	PersonalInfo personalForm     `json:"personalInfo"`
	Experience   []experienceForm `json:"experience" validate:"dive"`
	Education    []educationForm  `json:"education" validate:"dive"`
}

var formValidator = validation.New()

// Validate returns the field issues of doc, or nil when it can be saved.
func Validate(doc Document) []validation.FieldIssue {
	form := documentForm{
		PersonalInfo: personalForm{
			FullName: doc.PersonalInfo.FullName,
			Email:    doc.PersonalInfo.Email,
			Website:  doc.PersonalInfo.Website,
		},
		Experience: make([]experienceForm, 0, len(doc.Experience)),
		Education:  make([]educationForm, 0, len(doc.Education)),
	}
	for _, e := range doc.Experience {
		form.Experience = append(form.Experience, experienceForm{Company: e.Company, Position: e.Position, StartDate: e.StartDate})
	}
	for _, e := range doc.Education {
		form.Education = append(form.Education, educationForm{School: e.School, Degree: e.Degree, StartDate: e.StartDate})
	}

	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []validation.FieldIssue{{Field: "document", Issue: "invalid", Message: err.Error()}}
	}
	return validation.Issues(fieldErrs)
}
