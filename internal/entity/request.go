package entity

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignUpRequest struct {
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	Password            string   `json:"password"`
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	BirthDate           string   `json:"birthDate,omitempty"`
	Department          string   `json:"department,omitempty"`
	JobTitle            string   `json:"jobTitle,omitempty"`
	Gender              Gender   `json:"gender"`
	InterestedInGenders []Gender `json:"interestedInGenders"`
}

func (r *SignUpRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if strings.TrimSpace(r.Username) == "" {
		problems["Username"] = append(problems["Username"], "Username is required")
	}

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	} else if len(r.Password) < 6 {
		problems["Password"] = append(problems["Password"], "Password must be at least 6 characters")
	}

	if len([]byte(r.Password)) > 72 {
		problems["Password"] = append(problems["Password"], "Password length should not exceed 72 bytes")
	}

	if strings.TrimSpace(r.FirstName) == "" {
		problems["FirstName"] = append(problems["FirstName"], "First name is required")
	}

	if strings.TrimSpace(r.LastName) == "" {
		problems["LastName"] = append(problems["LastName"], "Last name is required")
	}

	if r.BirthDate != "" {
		if _, err := time.Parse(DateLayout, r.BirthDate); err != nil {
			problems["BirthDate"] = append(problems["BirthDate"], "Birth date must be YYYY-MM-DD")
		}
	}

	if !r.Gender.Valid() {
		problems["Gender"] = append(problems["Gender"], "Gender must be one of MALE, FEMALE, OTHER")
	}

	return problems
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Username == "" {
		problems["Username"] = append(problems["Username"], "Username is required")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	return problems
}

// UpdateProfileRequest is the full set of editable profile fields. The backend
// overwrites every field with the submitted value.
type UpdateProfileRequest struct {
	FirstName           string   `json:"firstName"`
	LastName            string   `json:"lastName"`
	Bio                 string   `json:"bio"`
	Department          string   `json:"department"`
	JobTitle            string   `json:"jobTitle"`
	ProfileImageURL     string   `json:"profileImageUrl"`
	InterestedInGenders []Gender `json:"interestedInGenders"`
}

func (r *UpdateProfileRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	for _, g := range r.InterestedInGenders {
		if !g.Valid() {
			problems["InterestedInGenders"] = append(problems["InterestedInGenders"], "Unknown gender "+string(g))
		}
	}

	return problems
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipientId"`
	Content     string `json:"content"`
}

func (r *SendMessageRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.RecipientID == 0 {
		problems["RecipientID"] = append(problems["RecipientID"], "Recipient is required")
	}

	if strings.TrimSpace(r.Content) == "" {
		problems["Content"] = append(problems["Content"], "Content is required")
	}

	return problems
}
