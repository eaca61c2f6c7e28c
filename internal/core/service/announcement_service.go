package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// recentLimit bounds the public announcements listing.
const recentLimit = 50

// AnnouncementCache abstracts the read-through cache for the public recent
// listing (Redis). A nil cache disables caching entirely.
type AnnouncementCache interface {
	GetRecent(ctx context.Context) ([]domain.Announcement, bool, error)
	SetRecent(ctx context.Context, items []domain.Announcement) error
	Invalidate(ctx context.Context) error
}

// AnnouncementService implements create/list/delete over announcements.
type AnnouncementService struct {
	repo  ports.AnnouncementRepository
	cache AnnouncementCache
	log   zerolog.Logger
}

func NewAnnouncementService(repo ports.AnnouncementRepository, cache AnnouncementCache, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, cache: cache, log: log}
}

func (s *AnnouncementService) Create(ctx context.Context, title, message string) (*domain.Announcement, error) {
	if title == "" || message == "" {
		return nil, domain.ErrAnnouncementInvalid
	}

	a := &domain.Announcement{
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.Info().Str("announcement_id", a.ID).Msg("announcement created")
	return a, nil
}

// ListRecent serves the public listing: newest first, capped at 50. Cache
// failures fall through to the repository with a warning.
func (s *AnnouncementService) ListRecent(ctx context.Context) ([]domain.Announcement, error) {
	if s.cache != nil {
		items, ok, err := s.cache.GetRecent(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("announcement cache read failed, querying store")
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetRecent(ctx, items); err != nil {
			s.log.Warn().Err(err).Msg("announcement cache write failed")
		}
	}
	return items, nil
}

func (s *AnnouncementService) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	return s.repo.ListAll(ctx)
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.log.Info().Str("announcement_id", id).Msg("announcement deleted")
	return nil
}

func (s *AnnouncementService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("announcement cache invalidation failed")
	}
}
