package models

import (
	"time"

	"gorm.io/gorm"
)

// Job types accepted by the board.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
	JobTypeRemote     = "Remote"
)

// Food accommodation values.
const (
	FoodProvided    = "Provided"
	FoodNotProvided = "Not Provided"
	FoodPartial     = "Partial"
)

// Application lifecycle. New applications start as pending and only an admin moves them on.
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusRejected    = "rejected"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultCategory is shown for jobs that carry no category.
const DefaultCategory = "General"

// JobTypes lists every accepted job type in display order.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote}

// ApplicationStatuses lists every application status in lifecycle order.
var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
}

// ContactSubjects are the subjects offered on the contact form. Free text is accepted too.
var ContactSubjects = []string{
	"General Inquiry",
	"Job Posting",
	"Candidate Support",
	"Employer Support",
	"Technical Support",
	"Partnership",
	"Other Inquiry",
}

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `gorm:"default:'user'" json:"role"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// Job is the job record as the backend stores and serves it. Requirements are kept
// comma-joined, which is what the client transform expects to split.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title             string `gorm:"not null" json:"title"`
	Company           string `gorm:"not null;index" json:"company"`
	Location          string `gorm:"not null" json:"location"`
	Type              string `gorm:"not null" json:"type"`
	Salary            string `json:"salary,omitempty"`
	Description       string `gorm:"type:text" json:"description"`
	Requirements      string `gorm:"type:text" json:"requirements"`
	Logo              string `json:"logo,omitempty"`
	CategoryName      string `gorm:"index" json:"category_name,omitempty"`
	FoodAccommodation string `json:"food_accommodation,omitempty"`
	Gender            string `json:"gender,omitempty"`

	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Foreign Key
	JobID uint `gorm:"not null;index" json:"job_id"`
	// JobTitle is denormalised for listings
	JobTitle string `json:"job_title"`

	ApplicantName   string `gorm:"not null" json:"applicant_name"`
	ApplicantEmail  string `gorm:"not null" json:"applicant_email"`
	ApplicantPhone  string `json:"applicant_phone"`
	CoverLetter     string `gorm:"type:text" json:"cover_letter"`
	ResumePath      string `json:"resume_path"`
	PaymentFilePath string `json:"payment_file_path,omitempty"`
	Status          string `gorm:"default:'pending'" json:"status"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}

// IsJobType reports whether t is one of JobTypes.
func IsJobType(t string) bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsApplicationStatus reports whether s is one of ApplicationStatuses.
func IsApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}
