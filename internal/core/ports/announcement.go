package ports

import (
	"context"

	"github.com/skprofiling/members-api/internal/core/domain"
)

// AnnouncementService covers admin-published notices.
type AnnouncementService interface {
	Create(ctx context.Context, title, message string) (*domain.Announcement, error)
	// ListRecent returns at most the 50 newest announcements, newest first.
	ListRecent(ctx context.Context) ([]domain.Announcement, error)
	// ListAll returns every announcement, newest first.
	ListAll(ctx context.Context) ([]domain.Announcement, error)
	// Delete removes an announcement; domain.ErrAnnouncementNotFound when
	// no record matches.
	Delete(ctx context.Context, id string) error
}

// AnnouncementRepository defines persistence for announcements.
type AnnouncementRepository interface {
	Insert(ctx context.Context, a *domain.Announcement) error
	ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error)
	ListAll(ctx context.Context) ([]domain.Announcement, error)
	Delete(ctx context.Context, id string) error
}
