package entity

import (
	"slices"
	"time"
)

// DateLayout is the wire format of User.BirthDate.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// AllGenders returns every gender in display order.
func AllGenders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

func (g Gender) Valid() bool {
	return slices.Contains(AllGenders(), g)
}

type User struct {
	ID                  uint      `json:"id" gorm:"primaryKey;column:id"`
	Username            string    `json:"username" gorm:"unique;not null;column:username"`
	Email               string    `json:"email" gorm:"unique;not null;column:email"`
	Password            string    `json:"-" gorm:"not null;column:password"`
	FirstName           string    `json:"firstName" gorm:"not null;column:first_name"`
	LastName            string    `json:"lastName" gorm:"not null;column:last_name"`
	BirthDate           string    `json:"birthDate,omitempty" gorm:"column:birth_date"`
	Department          string    `json:"department,omitempty" gorm:"column:department"`
	JobTitle            string    `json:"jobTitle,omitempty" gorm:"column:job_title"`
	Bio                 string    `json:"bio,omitempty" gorm:"column:bio"`
	ProfileImageURL     string    `json:"profileImageUrl,omitempty" gorm:"column:profile_image_url"`
	Gender              Gender    `json:"gender" gorm:"not null;column:gender"`
	InterestedInGenders []Gender  `json:"interestedInGenders" gorm:"column:interested_in_genders;serializer:json"`
	Active              bool      `json:"active" gorm:"not null;default:true;column:active"`
	CreatedAt           time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt           time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Age returns the age in whole years on now's calendar date. The second value is
// false when the birth date is missing or malformed.
func (u User) Age(now time.Time) (int, bool) {
	return Age(u.BirthDate, now)
}

func Age(birthDate string, now time.Time) (int, bool) {
	if len(birthDate) < len(DateLayout) {
		return 0, false
	}

	// Accept full timestamps by keeping only the date part.
	birth, err := time.Parse(DateLayout, birthDate[:len(DateLayout)])
	if err != nil {
		return 0, false
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}

	return age, true
}

// ToggleGender removes g from set when present and appends it otherwise.
func ToggleGender(set []Gender, g Gender) []Gender {
	if i := slices.Index(set, g); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), g)
}
