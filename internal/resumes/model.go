package resumes

import (
	"strings"
	"time"
)

// DefaultTitle is used when a resume is saved without a title.
const DefaultTitle = "Untitled Resume"

type PersonalInfo struct {
	FullName string `json:"fullName" validate:"max=255"`
	Email    string `json:"email" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Location string `json:"location" validate:"max=255"`
	Website  string `json:"website" validate:"max=255"`
	Summary  string `json:"summary"`
}

type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationEntry struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
}

// Document is the user-editable content of a resume. Updates replace it whole.
type Document struct {
	Title        string            `json:"title" validate:"max=255"`
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	Skills       []string          `json:"skills"`
}

// Resume is a stored Document owned by one user.
type Resume struct {
	ID     int64
	UserID int64
	Document
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize returns a copy with the stored defaults applied: a blank title
// becomes DefaultTitle, nil lists become empty and current entries lose their end date.
func (d Document) Normalize() Document {
	out := d
	out.Title = strings.TrimSpace(d.Title)
	if out.Title == "" {
		out.Title = DefaultTitle
	}
	out.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		if e.Current {
			e.EndDate = ""
		}
		out.Experience[i] = e
	}
	out.Education = make([]EducationEntry, len(d.Education))
	for i, e := range d.Education {
		if e.Current {
			e.EndDate = ""
		}
		out.Education[i] = e
	}
	out.Skills = make([]string, len(d.Skills))
	copy(out.Skills, d.Skills)
	return out
}

// Clone returns a deep copy so callers never share list backing arrays.
func (r Resume) Clone() Resume {
	out := r
	out.Experience = append([]ExperienceEntry(nil), r.Experience...)
	out.Education = append([]EducationEntry(nil), r.Education...)
	out.Skills = append([]string(nil), r.Skills...)
	if out.Experience == nil {
		out.Experience = []ExperienceEntry{}
	}
	if out.Education == nil {
		out.Education = []EducationEntry{}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out
}
