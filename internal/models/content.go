package models

import "time"

type PostingStatus string

const (
	PostingStatusActive   PostingStatus = "active"
	PostingStatusInactive PostingStatus = "inactive"
)

type JobPosting struct {
	ID             string
	Title          string
	Slug           string
	Department     string
	Location       string
	EmploymentType string
	Description    string
	Status         PostingStatus
	ClosesAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ContactStatus string

const (
	ContactStatusUnread  ContactStatus = "unread"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Company   string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type CareerApplication struct {
	ID           string
	PostingID    string
	Name         string
	Email        string
	Phone        string
	CoverNote    string
	ResumeBucket string
	ResumeKey    string
	ResumeFormat string
	Status       ApplicationStatus
	CreatedAt    time.Time
}
