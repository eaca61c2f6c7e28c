package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrImageNotFound = errors.New("profile image not found")

// Profile is the single member record kept per user. All enumerated fields are
// free text and nullable; the submission form is the source of truth, so no
// typed parsing is applied.
type Profile struct {
	ID     string `json:"id" bson:"_id"`
	UserID string `json:"user_id" bson:"user_id"`

	Name        *string `json:"name" bson:"name"`
	DOB         *string `json:"dob" bson:"dob"`
	Age         *string `json:"age" bson:"age"`
	Gender      *string `json:"gender" bson:"gender"`
	CivilStatus *string `json:"civil_status" bson:"civil_status"`
	Religion    *string `json:"religion" bson:"religion"`
	Contact     *string `json:"contact" bson:"contact"`
	Address     *string `json:"address" bson:"address"`

	SchoolLevel  *string `json:"school_level" bson:"school_level"`
	SchoolName   *string `json:"school_name" bson:"school_name"`
	SchoolStatus *string `json:"school_status" bson:"school_status"`
	Employment   *string `json:"employment" bson:"employment"`
	WorkType     *string `json:"work_type" bson:"work_type"`
	WorkTime     *string `json:"work_time" bson:"work_time"`

	Illnesses    *string `json:"illnesses" bson:"illnesses"`
	Healthcare   *string `json:"healthcare" bson:"healthcare"`
	Disabilities *string `json:"disabilities" bson:"disabilities"`

	YouthOrg    *string `json:"youth_org" bson:"youth_org"`
	Risks       *string `json:"risks" bson:"risks"`
	Experience  *string `json:"experience" bson:"experience"`
	Groups      *string `json:"groups" bson:"groups"`
	Willingness *string `json:"willingness" bson:"willingness"`

	GuardianName    *string `json:"guardian_name" bson:"guardian_name"`
	GuardianContact *string `json:"guardian_contact" bson:"guardian_contact"`
	Relationship    *string `json:"relationship" bson:"relationship"`

	ProfileImage []byte  `json:"-" bson:"profile_image"`
	ImageMime    *string `json:"image_mime" bson:"image_mime"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Surname derives a surname from a free-text name as its last
// whitespace-separated token. The heuristic is unreliable for suffixes and
// multi-word family names; it lives behind this function so a stored surname
// column can replace it without touching call sites.
func Surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
