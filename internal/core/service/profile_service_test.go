package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// stubProfileRepo mimics the store's upsert contract in memory: one record
// per user id, full field overwrite, image preserved unless replaced.
type stubProfileRepo struct {
	byUser map[string]*domain.Profile
	nextID int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile, replaceImage bool) (*domain.Profile, error) {
	now := time.Now().UTC()
	stored := cloneProfile(p)

	if existing, ok := r.byUser[p.UserID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		if !replaceImage {
			stored.ProfileImage = existing.ProfileImage
			stored.ImageMime = existing.ImageMime
		}
	} else {
		r.nextID++
		stored.ID = fmt.Sprintf("profile-%d", r.nextID)
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.byUser[p.UserID] = cloneProfile(stored)
	return cloneProfile(stored), nil
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	for _, p := range r.byUser {
		if p.ID == id {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) FindImage(_ context.Context, userID string) ([]byte, string, error) {
	p, ok := r.byUser[userID]
	if !ok || len(p.ProfileImage) == 0 {
		return nil, "", domain.ErrImageNotFound
	}
	mime := ""
	if p.ImageMime != nil {
		mime = *p.ImageMime
	}
	return p.ProfileImage, mime, nil
}

func (r *stubProfileRepo) SearchByName(_ context.Context, query string) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0)
	for _, p := range r.byUser {
		if p.Name != nil {
			out = append(out, cloneProfile(p))
		}
	}
	return out, nil
}

func (r *stubProfileRepo) ListNamed(_ context.Context) ([]*domain.Profile, error) {
	return r.SearchByName(context.Background(), "")
}

func strp(s string) *string { return &s }

func TestProfileService_Upsert_CreatesProfile(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	stored, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{Name: strp("Juan Dela Cruz"), Age: strp("19")},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if stored.ID == "" || stored.UserID != "user-1" {
		t.Fatalf("unexpected stored record: %+v", stored)
	}
	if stored.Name == nil || *stored.Name != "Juan Dela Cruz" {
		t.Fatalf("name not stored")
	}
	if stored.Gender != nil {
		t.Fatalf("omitted field must be null, got %v", *stored.Gender)
	}
}

// Submitting field set A then field set B must leave exactly B: omitted
// fields nulled, not merged with A's values.
func TestProfileService_Upsert_FullOverwrite(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	_, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{
			Name:     strp("Juan Dela Cruz"),
			Religion: strp("Catholic"),
			Contact:  strp("0917-000-0000"),
		},
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{
			Name:    strp("Juan Dela Cruz"),
			Address: strp("Zone 4, Poblacion"),
		},
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.Religion != nil || second.Contact != nil {
		t.Fatalf("fields omitted in second submission must be nulled, got religion=%v contact=%v",
			second.Religion, second.Contact)
	}
	if second.Address == nil || *second.Address != "Zone 4, Poblacion" {
		t.Fatalf("address not stored")
	}

	// Still exactly one record for the user.
	if len(repo.byUser) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(repo.byUser))
	}
}

func TestProfileService_Upsert_ImageRetainedWhenNotResubmitted(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	img := []byte{0xFF, 0xD8, 0xFF}
	_, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{Name: strp("Maria Santos")},
		Image:  &ports.ImageUpload{Data: img, Mime: "image/jpeg"},
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{Name: strp("Maria Santos"), Gender: strp("F")},
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if string(second.ProfileImage) != string(img) {
		t.Fatalf("image must be retained when not resubmitted")
	}
	if second.ImageMime == nil || *second.ImageMime != "image/jpeg" {
		t.Fatalf("image mime must be retained, got %v", second.ImageMime)
	}
}

func TestProfileService_Upsert_ImageReplaced(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	_, _ = svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{Name: strp("Jose Cruz")},
		Image:  &ports.ImageUpload{Data: []byte{1}, Mime: "image/png"},
	})

	updated, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{Name: strp("Jose Cruz")},
		Image:  &ports.ImageUpload{Data: []byte{2, 3}, Mime: "image/jpeg"},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if len(updated.ProfileImage) != 2 || *updated.ImageMime != "image/jpeg" {
		t.Fatalf("image not replaced: %+v", updated)
	}
}

func TestProfileService_Upsert_EmptyMimeDefaults(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	stored, err := svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{},
		Image:  &ports.ImageUpload{Data: []byte{1}},
	})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if stored.ImageMime == nil || *stored.ImageMime != defaultImageMime {
		t.Fatalf("expected default mime, got %v", stored.ImageMime)
	}
}

func TestProfileService_GetOwn_NotFound(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), zerolog.Nop())
	if _, err := svc.GetOwn(context.Background(), "missing"); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_GetImage(t *testing.T) {
	repo := newStubProfileRepo()
	svc := NewProfileService(repo, zerolog.Nop())

	if _, _, err := svc.GetImage(context.Background(), "user-1"); err != domain.ErrImageNotFound {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}

	_, _ = svc.Upsert(context.Background(), ports.UpsertProfileInput{
		UserID: "user-1",
		Fields: ports.ProfileFields{},
		Image:  &ports.ImageUpload{Data: []byte{9, 9}, Mime: "image/png"},
	})

	data, mime, err := svc.GetImage(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetImage failed: %v", err)
	}
	if len(data) != 2 || mime != "image/png" {
		t.Fatalf("unexpected image: %v %s", data, mime)
	}
}
