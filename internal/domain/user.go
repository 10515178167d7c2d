package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Phone          string     `json:"phone" db:"phone"`
	FullName       *string    `json:"full_name,omitempty" db:"full_name"`
	Email          *string    `json:"email,omitempty" db:"email"`
	BloodType      *string    `json:"blood_type,omitempty" db:"blood_type"`
	Latitude       *float64   `json:"-" db:"latitude"`
	Longitude      *float64   `json:"-" db:"longitude"`
	AvatarURL      *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	FCMToken       *string    `json:"-" db:"fcm_token"`
	TokenUpdatedAt *time.Time `json:"-" db:"token_updated_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Location returns the stored coordinate, or nil when the profile has none.
func (u *User) Location() *Coordinate {
	if u.Latitude == nil || u.Longitude == nil {
		return nil
	}
	return &Coordinate{Lat: *u.Latitude, Lng: *u.Longitude}
}

type UpdateProfileInput struct {
	FullName  *string     `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email     *string     `json:"email,omitempty" validate:"omitempty,email"`
	BloodType *string     `json:"blood_type,omitempty"`
	Location  *Coordinate `json:"location,omitempty"`
}

type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

func (b BloodType) IsValid() bool {
	switch b {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	default:
		return false
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// DonorMatch is a user profile annotated with its distance from a query
// center, rounded to one decimal place.
type DonorMatch struct {
	User
	Distance float64 `json:"distance"`
}
