package models

import "time"

type Notice struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Date      string    `bson:"date" json:"date"`
	PDFKey    string    `bson:"pdfKey" json:"pdfKey"`
	Username  string    `bson:"username" json:"username"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Syllabus struct {
	Code   string  `bson:"code" json:"code"`
	Title  string  `bson:"title" json:"title"`
	Credit float64 `bson:"credit" json:"credit"`
	Type   string  `bson:"type" json:"type"` // Theory / Lab / Project
}

type Complaint struct {
	ID          string `bson:"id" json:"id"`
	Subject     string `bson:"subject" json:"subject"`
	Department  string `bson:"department" json:"department"`
	Description string `bson:"description" json:"description"`
	Anonymous   bool   `bson:"anonymous" json:"anonymous"`
	Date        string `bson:"date" json:"date"`
}

type Opinion struct {
	ID       string `bson:"id" json:"id"`
	Rating   int    `bson:"rating" json:"rating"`
	Feedback string `bson:"feedback" json:"feedback"`
	Date     string `bson:"date" json:"date"`
}

type Message struct {
	ID      string    `bson:"id" json:"id"`
	Name    string    `bson:"name" json:"name"`
	Email   string    `bson:"email" json:"email"`
	Subject string    `bson:"subject" json:"subject"`
	Message string    `bson:"message" json:"message"`
	Date    time.Time `bson:"date" json:"date"`
}

type AuditLog struct {
	ID       string    `bson:"id" json:"id"`
	Action   string    `bson:"action" json:"action"`
	Username string    `bson:"username" json:"username"`
	Details  string    `bson:"details" json:"details"`
	Date     time.Time `bson:"date" json:"date"`
}

// DeletionRequest is filed by an editor lacking delete rights; an admin
// approves or rejects it later.
type DeletionRequest struct {
	ID          string            `bson:"id" json:"id"`
	Type        string            `bson:"type" json:"type"` // course, file, exam, schedule, syllabus, notice
	ResourceID  string            `bson:"resourceId" json:"resourceId"`
	Details     map[string]string `bson:"details" json:"details"`
	RequestedBy string            `bson:"requestedBy" json:"requestedBy"`
	Status      string            `bson:"status" json:"status"` // pending, approved, rejected
	Date        time.Time         `bson:"date" json:"date"`
}
