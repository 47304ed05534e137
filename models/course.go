package models

import "time"

type Course struct {
	ID         string           `bson:"id" json:"id"`
	Name       string           `bson:"name" json:"name"`
	Instructor string           `bson:"instructor" json:"instructor"`
	Files      []FileAttachment `bson:"files" json:"files"`
	Exams      []Exam           `bson:"exams" json:"exams"`
	Order      int              `bson:"order" json:"order"`
	CreatedAt  time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// FileAttachment is a course material stored in the object store.
type FileAttachment struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Type       string    `bson:"type" json:"type"` // "image" or "pdf"
	ObjectKey  string    `bson:"objectKey" json:"objectKey"`
	UploadedBy string    `bson:"uploadedBy" json:"uploadedBy"`
	UploadDate time.Time `bson:"uploadDate" json:"uploadDate"`
}

type Exam struct {
	ID       string `bson:"id" json:"id"`
	Title    string `bson:"title" json:"title"`
	Date     string `bson:"date" json:"date"`
	Time     string `bson:"time" json:"time"`
	Syllabus string `bson:"syllabus" json:"syllabus"`
}
