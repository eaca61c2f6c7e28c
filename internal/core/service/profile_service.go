package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

const defaultImageMime = "application/octet-stream"

// ProfileService executes the create-or-replace workflow over the profile
// store.
type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// Upsert materialises every enumerated field from the current submission
// (null where absent) and hands the repository a single atomic write keyed on
// the unique user id. Image bytes ride along only when this submission
// carries a new upload; otherwise the stored image is left untouched.
func (s *ProfileService) Upsert(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
	f := input.Fields
	p := &domain.Profile{
		UserID: input.UserID,

		Name:        f.Name,
		DOB:         f.DOB,
		Age:         f.Age,
		Gender:      f.Gender,
		CivilStatus: f.CivilStatus,
		Religion:    f.Religion,
		Contact:     f.Contact,
		Address:     f.Address,

		SchoolLevel:  f.SchoolLevel,
		SchoolName:   f.SchoolName,
		SchoolStatus: f.SchoolStatus,
		Employment:   f.Employment,
		WorkType:     f.WorkType,
		WorkTime:     f.WorkTime,

		Illnesses:    f.Illnesses,
		Healthcare:   f.Healthcare,
		Disabilities: f.Disabilities,

		YouthOrg:    f.YouthOrg,
		Risks:       f.Risks,
		Experience:  f.Experience,
		Groups:      f.Groups,
		Willingness: f.Willingness,

		GuardianName:    f.GuardianName,
		GuardianContact: f.GuardianContact,
		Relationship:    f.Relationship,
	}

	replaceImage := false
	if input.Image != nil && len(input.Image.Data) > 0 {
		mime := input.Image.Mime
		if mime == "" {
			mime = defaultImageMime
		}
		p.ProfileImage = input.Image.Data
		p.ImageMime = &mime
		replaceImage = true
	}

	stored, err := s.repo.Upsert(ctx, p, replaceImage)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("profile upsert failed")
		return nil, err
	}

	s.log.Info().
		Str("user_id", input.UserID).
		Bool("image_replaced", replaceImage).
		Msg("profile upserted")

	return stored, nil
}

func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *ProfileService) GetImage(ctx context.Context, userID string) ([]byte, string, error) {
	data, mime, err := s.repo.FindImage(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if mime == "" {
		mime = defaultImageMime
	}
	return data, mime, nil
}
