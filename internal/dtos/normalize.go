package dtos

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NormalizeApplication turns raw multipart text fields into a typed
// ApplicationForm. Every field arrives as a string (or a repeated list
// of strings); nothing here returns an error — malformed optional input
// degrades to its default instead of failing the submission.
func NormalizeApplication(form url.Values) *ApplicationForm {
	f := &ApplicationForm{
		FirstName:           strings.TrimSpace(form.Get("first_name")),
		LastName:            strings.TrimSpace(form.Get("last_name")),
		Email:               strings.TrimSpace(form.Get("email")),
		Phone:               strings.TrimSpace(form.Get("phone")),
		CurrentAddress:      strings.TrimSpace(form.Get("current_address")),
		DateOfBirth:         strings.TrimSpace(form.Get("date_of_birth")),
		PositionAppliedFor:  strings.TrimSpace(form.Get("position_applied_for")),
		EducationLevel:      strings.TrimSpace(form.Get("education_level")),
		NoticePeriod:        strings.TrimSpace(form.Get("notice_period")),
		SourceOfApplication: strings.TrimSpace(form.Get("source_of_application")),
	}

	// Optional text fields: empty string means "not provided" → nil.
	f.LinkedinProfile = optionalString(form.Get("linkedin_profile"))
	f.PreviousEmployer = optionalString(form.Get("previous_employer"))
	f.CurrentJobTitle = optionalString(form.Get("current_job_title"))
	f.PreferredLocation = optionalString(form.Get("preferred_location"))
	f.CoverLetter = optionalString(form.Get("cover_letter"))

	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("years_of_experience"))); err == nil && n >= 0 {
		f.YearsOfExperience = n
	}

	if s := strings.TrimSpace(form.Get("expected_salary")); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			f.ExpectedSalary = &n
		}
	}

	f.AvailabilityForInterview = parseAvailability(form.Get("availability_for_interview"))

	f.Skills = NormalizeSkills(form["skills"])

	return f
}

// NormalizeSkills resolves the skills field, which may arrive as
// repeated form values, a JSON array string, a comma-separated string,
// or a single bare value. It never fails: each fallback degrades to the
// next, bottoming out at an empty list.
func NormalizeSkills(values []string) []string {
	// Repeated form fields are already a list.
	if len(values) > 1 {
		return trimAll(values)
	}
	if len(values) == 0 {
		return []string{}
	}

	raw := strings.TrimSpace(values[0])
	if raw == "" {
		return []string{}
	}

	// First try: JSON array string.
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return trimAll(parsed)
	}

	// Second try: comma-separated.
	if strings.Contains(raw, ",") {
		return trimAll(strings.Split(raw, ","))
	}

	// Last resort: the whole string is one skill.
	return []string{raw}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// parseAvailability accepts RFC3339 or the formats an HTML
// datetime-local input produces. Unparseable input normalizes to nil.
var availabilityLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAvailability(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range availabilityLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
