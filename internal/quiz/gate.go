package quiz

import (
	"regexp"
	"strings"

	"checklist-assessment-service/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Gate holds the identity fields a catalog variant requires before submission.
type Gate struct {
	RequireAssessor bool
}

// Check reports every missing or malformed identity field.
func (g Gate) Check(info domain.UserInfo) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(info.Name) == "" {
		verr.Add("name", "Please enter a name before submitting.")
	}
	if g.RequireAssessor {
		if strings.TrimSpace(info.AccessorsName) == "" {
			verr.Add("accessorsName", "Please enter the assessor's name before submitting.")
		}
		email := strings.TrimSpace(info.AccessorsEmail)
		switch {
		case email == "":
			verr.Add("accessorsEmail", "Please enter the assessor's email before submitting.")
		case !ValidEmail(email):
			verr.Add("accessorsEmail", "Invalid assessor email format")
		}
	}
	return verr.OrNil()
}

// Normalize trims identity fields and fills the candidate email sentinel.
func (g Gate) Normalize(info domain.UserInfo) domain.UserInfo {
	out := domain.UserInfo{
		Name:           strings.TrimSpace(info.Name),
		Email:          strings.TrimSpace(info.Email),
		AccessorsName:  strings.TrimSpace(info.AccessorsName),
		AccessorsEmail: strings.TrimSpace(info.AccessorsEmail),
	}
	if out.Email == "" {
		out.Email = domain.EmailNotProvided
	}
	return out
}
