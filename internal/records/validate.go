package records

import (
	"slices"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	dErrors "intake/pkg/domain-errors"
)

// Normalize trims every field.
func (s *Submission) Normalize() {
	for _, f := range s.fields() {
		*f.value = strings.TrimSpace(*f.value)
	}
}

// Validate checks a normalized submission. today bounds the date of birth and is
// compared by calendar date.
func (s *Submission) Validate(today time.Time) error {
	for _, f := range s.fields() {
		if *f.value == "" {
			return dErrors.New(dErrors.CodeValidation, f.name+" is required")
		}
	}
	if !govalidator.StringLength(s.Email, "3", "254") || !govalidator.IsEmail(s.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if !govalidator.IsNumeric(s.Phone) {
		return dErrors.New(dErrors.CodeValidation, "phone must contain digits only")
	}
	if len(s.PhoneCode) < 2 || s.PhoneCode[0] != '+' || !govalidator.IsNumeric(s.PhoneCode[1:]) {
		return dErrors.New(dErrors.CodeValidation, "phoneCode must be + followed by digits")
	}
	if !slices.Contains(Genders, s.Gender) {
		return dErrors.New(dErrors.CodeValidation, "gender must be one of Male, Female, Other")
	}
	dob, err := time.Parse(DateLayout, s.DateOfBirth)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "dateOfBirth must be YYYY-MM-DD")
	}
	if dob.Format(DateLayout) > today.Format(DateLayout) {
		return dErrors.New(dErrors.CodeValidation, "dateOfBirth cannot be in the future")
	}
	return nil
}

type namedField struct {
	name  string
	value *string
}

func (s *Submission) fields() []namedField {
	return []namedField{
		{"name", &s.Name},
		{"address", &s.Address},
		{"email", &s.Email},
		{"phoneCode", &s.PhoneCode},
		{"phone", &s.Phone},
		{"dateOfBirth", &s.DateOfBirth},
		{"nationality", &s.Nationality},
		{"gender", &s.Gender},
	}
}
