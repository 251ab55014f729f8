package records

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted on submission.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the accepted gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// DateLayout is the calendar-date format of DateOfBirth.
const DateLayout = "2006-01-02"

// Submission is one personal record as entered in the form.
type Submission struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	PhoneCode   string `json:"phoneCode"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
}

// Record is a stored row of the record table.
type Record struct {
	ID uuid.UUID `json:"id"`
	Submission
	SubmittedAt time.Time `json:"submittedAt,omitzero"`
}
