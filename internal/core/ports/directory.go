package ports

import (
	"context"

	"github.com/skprofiling/members-api/internal/core/domain"
)

// MemberSummary is the directory search projection. Image bytes are inlined
// as base64 text for direct rendering by clients.
type MemberSummary struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Contact      *string `json:"contact"`
	Address      *string `json:"address"`
	GuardianName *string `json:"guardian_name"`
	ImgBase64    string  `json:"img_base64,omitempty"`
	ImageMime    *string `json:"image_mime"`
}

// SurnameEntry is a filter result row carrying the derived surname.
type SurnameEntry struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
	Surname string  `json:"surname"`
}

// MemberProfileView is the full admin view of a profile, with the image
// inlined as base64 text.
type MemberProfileView struct {
	domain.Profile
	ImgBase64 string `json:"img_base64,omitempty"`
}

// DirectoryService covers the admin-facing member lookups.
type DirectoryService interface {
	SearchByName(ctx context.Context, query string) ([]MemberSummary, error)
	// FilterBySurnameLetter retains profiles whose derived surname starts
	// with letter (case-insensitive), ordered ascending by surname.
	FilterBySurnameLetter(ctx context.Context, letter string) ([]SurnameEntry, error)
	FetchFullProfile(ctx context.Context, id string) (*MemberProfileView, error)
}
