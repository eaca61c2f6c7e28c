package ports

import (
	"context"

	"github.com/skprofiling/members-api/internal/core/domain"
)

// ProfileFields is the enumerated set of submittable profile attributes.
// A nil field means "not submitted in this request" and is stored as null —
// the upsert policy is a full overwrite, not a field-by-field merge.
type ProfileFields struct {
	Name        *string
	DOB         *string
	Age         *string
	Gender      *string
	CivilStatus *string
	Religion    *string
	Contact     *string
	Address     *string

	SchoolLevel  *string
	SchoolName   *string
	SchoolStatus *string
	Employment   *string
	WorkType     *string
	WorkTime     *string

	Illnesses    *string
	Healthcare   *string
	Disabilities *string

	YouthOrg    *string
	Risks       *string
	Experience  *string
	Groups      *string
	Willingness *string

	GuardianName    *string
	GuardianContact *string
	Relationship    *string
}

// ImageUpload is a binary profile image accompanying a submission.
type ImageUpload struct {
	Data []byte
	Mime string
}

// UpsertProfileInput is the full submission for the create-or-replace operation.
type UpsertProfileInput struct {
	UserID string
	Fields ProfileFields
	Image  *ImageUpload // nil = keep previously stored image
}

// ProfileService covers the member-facing profile operations.
type ProfileService interface {
	// Upsert atomically creates or fully overwrites the caller's profile and
	// returns the resulting stored record.
	Upsert(ctx context.Context, input UpsertProfileInput) (*domain.Profile, error)
	// GetOwn returns the caller's profile, or domain.ErrProfileNotFound.
	GetOwn(ctx context.Context, userID string) (*domain.Profile, error)
	// GetImage returns the stored image bytes and mime type for a user.
	GetImage(ctx context.Context, userID string) ([]byte, string, error)
}

// ProfileRepository defines persistence for profile records. Exactly one
// record may exist per user id; Upsert relies on the store's unique
// constraint for atomicity.
type ProfileRepository interface {
	// Upsert inserts the profile, or on user_id conflict overwrites all
	// enumerated fields. Image bytes are replaced only when replaceImage is
	// true. Returns the stored record after the write.
	Upsert(ctx context.Context, p *domain.Profile, replaceImage bool) (*domain.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	// FindImage returns image bytes and mime; domain.ErrImageNotFound when
	// the profile is missing or has no image.
	FindImage(ctx context.Context, userID string) ([]byte, string, error)
	// SearchByName returns summary projections matching the query
	// case-insensitively, ordered by name ascending.
	SearchByName(ctx context.Context, query string) ([]*domain.Profile, error)
	// ListNamed returns summary projections of every profile with a
	// non-null name.
	ListNamed(ctx context.Context) ([]*domain.Profile, error)
}
