package dtos

import (
	"fmt"
	"strings"
	"time"

	"careers-portal-backend/internal/models"
)

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ApplicationForm is the normalized, typed application payload produced
// from the raw multipart fields. Pointer fields distinguish "not
// provided" from "provided empty".
type ApplicationForm struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	CurrentAddress     string
	DateOfBirth        string
	PositionAppliedFor string
	EducationLevel     string
	NoticePeriod       string
	SourceOfApplication string

	// Filled in by the handler from the stored upload; always wins over
	// any client-supplied resume_path field.
	ResumePath string

	LinkedinProfile   *string
	PreviousEmployer  *string
	CurrentJobTitle   *string
	PreferredLocation *string
	CoverLetter       *string

	YearsOfExperience int
	ExpectedSalary    *int

	AvailabilityForInterview *time.Time

	Skills []string
}

// Validate checks the fields the schema marks NOT NULL. This runs before
// anything is written anywhere.
func (f *ApplicationForm) Validate() error {
	required := []struct {
		name, value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"current_address", f.CurrentAddress},
		{"date_of_birth", f.DateOfBirth},
		{"position_applied_for", f.PositionAppliedFor},
		{"education_level", f.EducationLevel},
		{"notice_period", f.NoticePeriod},
		{"source_of_application", f.SourceOfApplication},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ToModel builds the row to insert for the given owner.
func (f *ApplicationForm) ToModel(userID uint) *models.Application {
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}

	return &models.Application{
		UserID:                   userID,
		FirstName:                f.FirstName,
		LastName:                 f.LastName,
		Email:                    f.Email,
		Phone:                    f.Phone,
		CurrentAddress:           f.CurrentAddress,
		DateOfBirth:              f.DateOfBirth,
		PositionAppliedFor:       f.PositionAppliedFor,
		ResumePath:               f.ResumePath,
		LinkedinProfile:          f.LinkedinProfile,
		EducationLevel:           f.EducationLevel,
		YearsOfExperience:        f.YearsOfExperience,
		Skills:                   skills,
		PreviousEmployer:         f.PreviousEmployer,
		CurrentJobTitle:          f.CurrentJobTitle,
		NoticePeriod:             f.NoticePeriod,
		ExpectedSalary:           f.ExpectedSalary,
		AvailabilityForInterview: f.AvailabilityForInterview,
		PreferredLocation:        f.PreferredLocation,
		CoverLetter:              f.CoverLetter,
		SourceOfApplication:      f.SourceOfApplication,
	}
}
