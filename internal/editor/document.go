package editor

import "resume-builder/internal/resumes"

// Document is the editor's composite state. ID is zero until the first save.
type Document struct {
	ID      int64
	Version int
	resumes.Document
}

// NewDocument returns an empty, unsaved document.
func NewDocument() Document {
	return Document{Document: resumes.Document{
		Title:      resumes.DefaultTitle,
		Experience: []resumes.ExperienceEntry{},
		Education:  []resumes.EducationEntry{},
		Skills:     []string{},
	}}
}

// FromResume loads a stored resume into the editor.
func FromResume(r resumes.Resume) Document {
	r = r.Clone()
	return Document{ID: r.ID, Version: r.Version, Document: r.Document}
}

// IsNew reports whether the document has never been saved.
func (d Document) IsNew() bool {
	return d.ID == 0
}

// Clone returns a copy that shares no list backing arrays with d.
func (d Document) Clone() Document {
	out := d
	out.Experience = append([]resumes.ExperienceEntry{}, d.Experience...)
	out.Education = append([]resumes.EducationEntry{}, d.Education...)
	out.Skills = append([]string{}, d.Skills...)
	return out
}
