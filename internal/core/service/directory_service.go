package service

import (
	"context"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// DirectoryService implements the admin member lookups.
type DirectoryService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewDirectoryService(repo ports.ProfileRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, log: log}
}

func (s *DirectoryService) SearchByName(ctx context.Context, query string) ([]ports.MemberSummary, error) {
	rows, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]ports.MemberSummary, 0, len(rows))
	for _, p := range rows {
		out = append(out, ports.MemberSummary{
			ID:           p.ID,
			Name:         p.Name,
			Contact:      p.Contact,
			Address:      p.Address,
			GuardianName: p.GuardianName,
			ImgBase64:    encodeImage(p.ProfileImage),
			ImageMime:    p.ImageMime,
		})
	}
	return out, nil
}

// FilterBySurnameLetter loads all named profiles and filters in memory on the
// derived surname. The surname is not a stored column, so the filter cannot
// be pushed down to the repository's query layer.
func (s *DirectoryService) FilterBySurnameLetter(ctx context.Context, letter string) ([]ports.SurnameEntry, error) {
	rows, err := s.repo.ListNamed(ctx)
	if err != nil {
		return nil, err
	}

	prefix := strings.ToLower(letter)
	entries := make([]ports.SurnameEntry, 0, len(rows))
	for _, p := range rows {
		if p.Name == nil {
			continue
		}
		surname := domain.Surname(*p.Name)
		if surname == "" || !strings.HasPrefix(strings.ToLower(surname), prefix) {
			continue
		}
		entries = append(entries, ports.SurnameEntry{
			ID:      p.ID,
			Name:    p.Name,
			Contact: p.Contact,
			Address: p.Address,
			Surname: surname,
		})
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		return coll.CompareString(entries[i].Surname, entries[j].Surname) < 0
	})

	return entries, nil
}

func (s *DirectoryService) FetchFullProfile(ctx context.Context, id string) (*ports.MemberProfileView, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.MemberProfileView{
		Profile:   *p,
		ImgBase64: encodeImage(p.ProfileImage),
	}, nil
}

func encodeImage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}
