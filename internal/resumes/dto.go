package resumes

import "time"

// ResumeRequest is the body of create and update calls.
// Version is optional; when set, an update only applies if it matches the stored version.
type ResumeRequest struct {
	Document
	Version int `json:"version,omitempty"`
}

// ResumeResponse is the flat outward-facing representation of a resume row.
type ResumeResponse struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"userId"`
	Title      string            `json:"title"`
	FullName   string            `json:"fullName"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	Website    string            `json:"website"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
	Version    int               `json:"version"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func toResponse(r Resume) ResumeResponse {
	r = r.Clone()
	return ResumeResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Title:      r.Title,
		FullName:   r.PersonalInfo.FullName,
		Email:      r.PersonalInfo.Email,
		Phone:      r.PersonalInfo.Phone,
		Location:   r.PersonalInfo.Location,
		Website:    r.PersonalInfo.Website,
		Summary:    r.PersonalInfo.Summary,
		Experience: r.Experience,
		Education:  r.Education,
		Skills:     r.Skills,
		Version:    r.Version,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toResponses(list []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	return out
}

// FromResponse rebuilds a Resume from its wire form.
func FromResponse(r ResumeResponse) Resume {
	return Resume{
		ID:     r.ID,
		UserID: r.UserID,
		Document: Document{
			Title: r.Title,
			PersonalInfo: PersonalInfo{
				FullName: r.FullName,
				Email:    r.Email,
				Phone:    r.Phone,
				Location: r.Location,
				Website:  r.Website,
				Summary:  r.Summary,
			},
			Experience: r.Experience,
			Education:  r.Education,
			Skills:     r.Skills,
		},
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
