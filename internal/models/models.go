package models

import (
	"time"
)

// User is created by the seed/admin process and only ever read here.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"size:20;not null;default:'candidate'" json:"role"`

	// No default tag: gorm drops zero-value fields that carry one, which
	// would turn a deactivated insert into an active row. Callers set
	// the flag explicitly.
	IsActive bool `gorm:"not null" json:"is_active"`
}

// Application is one submitted candidate form. Immutable after creation:
// there is no edit or withdraw flow.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	// Snapshot of the email at submission time. Deliberately NOT unique,
	// unlike users.email.
	Email string `gorm:"size:255;not null" json:"email"`

	Phone          string `gorm:"size:50;not null" json:"phone"`
	CurrentAddress string `gorm:"type:text;not null" json:"current_address"`
	DateOfBirth    string `gorm:"size:30;not null" json:"date_of_birth"`

	PositionAppliedFor string `gorm:"size:50;not null" json:"position_applied_for"`

	ResumePath      string  `gorm:"size:1024;not null" json:"resume_path"`
	LinkedinProfile *string `gorm:"size:1024" json:"linkedin_profile"`

	EducationLevel    string `gorm:"size:50;not null" json:"education_level"`
	YearsOfExperience int    `gorm:"not null;default:0" json:"years_of_experience"`

	// Serialized list, defaults to [], never null. Order-preserving,
	// duplicates allowed.
	Skills []string `gorm:"serializer:json;not null" json:"skills"`

	PreviousEmployer *string `gorm:"size:255" json:"previous_employer"`
	CurrentJobTitle  *string `gorm:"size:255" json:"current_job_title"`

	NoticePeriod string `gorm:"size:50;not null" json:"notice_period"`

	ExpectedSalary           *int       `json:"expected_salary"`
	AvailabilityForInterview *time.Time `json:"availability_for_interview"`
	PreferredLocation        *string    `gorm:"size:50" json:"preferred_location"`
	CoverLetter              *string    `gorm:"type:text" json:"cover_letter"`

	SourceOfApplication string `gorm:"size:50;not null" json:"source_of_application"`
}
