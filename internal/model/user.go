package model

import "time"

type Role string

const (
	RoleParent   Role = "parent"
	RoleEducator Role = "educator"
	RoleStudent  Role = "student"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleEducator, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

type Preferences struct {
	Theme        string `json:"theme" bson:"theme"`       // "light", "dark", "high-contrast"
	FontSize     string `json:"fontSize" bson:"fontSize"` // "small", "medium", "large"
	ReduceMotion bool   `json:"reduceMotion" bson:"reduceMotion"`
	SoundEnabled bool   `json:"soundEnabled" bson:"soundEnabled"`
}

// DefaultPreferences are applied to new accounts
func DefaultPreferences() Preferences {
	return Preferences{Theme: "light", FontSize: "medium", SoundEnabled: true}
}

type Profile struct {
	ChildName   string      `json:"childName,omitempty" bson:"childName,omitempty"`
	ChildAge    int         `json:"childAge,omitempty" bson:"childAge,omitempty"` // months
	Diagnosis   string      `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Preferences Preferences `json:"preferences" bson:"preferences"`
}

type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	DisplayName  string    `json:"displayName" bson:"displayName"`
	Role         Role      `json:"role" bson:"role"`
	Profile      Profile   `json:"profile" bson:"profile"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	LastLoginAt  time.Time `json:"lastLoginAt" bson:"lastLoginAt"`
}

// ProfileUpdate carries the editable parts of a user; nil fields are left alone
type ProfileUpdate struct {
	DisplayName *string      `json:"displayName,omitempty"`
	ChildName   *string      `json:"childName,omitempty"`
	ChildAge    *int         `json:"childAge,omitempty"`
	Diagnosis   *string      `json:"diagnosis,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
