package models

import "time"

// SubjectRecord is the stored and wire shape of a subject.
type SubjectRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type Subject struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
}

func SubjectFromRecord(r SubjectRecord) Subject {
	return Subject{ID: r.ID, Name: r.Name, Color: r.Color}
}

func (s Subject) Record() SubjectRecord {
	return SubjectRecord{ID: s.ID, Name: s.Name, Color: s.Color}
}

// DefaultSubjects are inserted when the subjects table is empty.
var DefaultSubjects = []CreateSubjectRequest{
	{Name: "Physics", Color: "#3B82F6"},
	{Name: "Chemistry", Color: "#10B981"},
	{Name: "Biology", Color: "#F59E0B"},
}
