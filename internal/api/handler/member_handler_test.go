package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skprofiling/members-api/internal/api/middleware"
	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

type stubProfileService struct {
	upsertFn   func(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error)
	getOwnFn   func(ctx context.Context, userID string) (*domain.Profile, error)
	getImageFn func(ctx context.Context, userID string) ([]byte, string, error)
}

func (s *stubProfileService) Upsert(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
	return s.upsertFn(ctx, input)
}

func (s *stubProfileService) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.getOwnFn(ctx, userID)
}

func (s *stubProfileService) GetImage(ctx context.Context, userID string) ([]byte, string, error) {
	return s.getImageFn(ctx, userID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, userID, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, role)
	return c
}

func multipartBody(t *testing.T, fields map[string]string, imageField, imageName, imageMime string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if imageField != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+imageField+`"; filename="`+imageName+`"`)
		hdr.Set("Content-Type", imageMime)
		part, err := w.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(imageData); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestMemberHandler_UpsertProfile_FieldPresence(t *testing.T) {
	e := newTestEcho()

	var captured ports.UpsertProfileInput
	stub := &stubProfileService{
		upsertFn: func(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
			captured = input
			return &domain.Profile{ID: "profile-1", UserID: input.UserID, Name: input.Fields.Name}, nil
		},
	}
	h := NewMemberHandler(stub)

	body, contentType := multipartBody(t, map[string]string{
		"name":    "Juan Dela Cruz",
		"contact": "", // submitted empty, must not collapse to nil
	}, "", "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/members/profile", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user-1", domain.RoleMember)

	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.UserID != "user-1" {
		t.Fatalf("expected user id from auth claims, got %q", captured.UserID)
	}
	if captured.Fields.Name == nil || *captured.Fields.Name != "Juan Dela Cruz" {
		t.Fatalf("name not collected: %+v", captured.Fields.Name)
	}
	if captured.Fields.Contact == nil || *captured.Fields.Contact != "" {
		t.Fatalf("empty submission must stay distinguishable from absence")
	}
	if captured.Fields.Religion != nil {
		t.Fatalf("absent field must collect as nil")
	}
	if captured.Image != nil {
		t.Fatalf("no file uploaded, image must be nil")
	}
}

func TestMemberHandler_UpsertProfile_WithImage(t *testing.T) {
	e := newTestEcho()

	var captured ports.UpsertProfileInput
	stub := &stubProfileService{
		upsertFn: func(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
			captured = input
			return &domain.Profile{ID: "profile-1", UserID: input.UserID}, nil
		},
	}
	h := NewMemberHandler(stub)

	imageData := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	body, contentType := multipartBody(t, map[string]string{"name": "Maria Santos"},
		imageFormField, "photo.jpg", "image/jpeg", imageData)

	req := httptest.NewRequest(http.MethodPost, "/api/members/profile", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user-2", domain.RoleMember)

	if err := h.UpsertProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if captured.Image == nil {
		t.Fatal("uploaded image was not passed through")
	}
	if !bytes.Equal(captured.Image.Data, imageData) {
		t.Fatalf("image bytes mangled: %v", captured.Image.Data)
	}
	if captured.Image.Mime != "image/jpeg" {
		t.Fatalf("expected mime image/jpeg, got %q", captured.Image.Mime)
	}
}

func TestMemberHandler_UpsertProfile_NoClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		upsertFn: func(ctx context.Context, input ports.UpsertProfileInput) (*domain.Profile, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewMemberHandler(stub)

	body, contentType := multipartBody(t, map[string]string{"name": "x"}, "", "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/members/profile", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.UpsertProfile(c)
	if err == nil {
		t.Fatal("expected an error without auth claims")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestMemberHandler_GetProfile_NullWhenMissing(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		getOwnFn: func(ctx context.Context, userID string) (*domain.Profile, error) {
			return nil, domain.ErrProfileNotFound
		},
	}
	h := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/members/profile", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user-1", domain.RoleMember)

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("a missing profile is not an error; got %d", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if string(resp["profile"]) != "null" {
		t.Fatalf("expected profile:null, got %s", resp["profile"])
	}
}

func TestMemberHandler_GetProfile_Found(t *testing.T) {
	e := newTestEcho()
	name := "Juan Dela Cruz"
	stub := &stubProfileService{
		getOwnFn: func(ctx context.Context, userID string) (*domain.Profile, error) {
			return &domain.Profile{ID: "profile-1", UserID: userID, Name: &name, CreatedAt: time.Now().UTC()}, nil
		},
	}
	h := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/members/profile", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "user-1", domain.RoleMember)

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Profile *domain.Profile `json:"profile"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Profile == nil || resp.Profile.Name == nil || *resp.Profile.Name != name {
		t.Fatalf("unexpected profile payload: %+v", resp.Profile)
	}
}

func TestMemberHandler_GetImage_ServesBlob(t *testing.T) {
	e := newTestEcho()
	imageData := []byte{0x89, 0x50, 0x4E, 0x47}
	stub := &stubProfileService{
		getImageFn: func(ctx context.Context, userID string) ([]byte, string, error) {
			if userID != "user-7" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return imageData, "image/png", nil
		},
	}
	h := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/members/profile/image/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("user-7")

	if err := h.GetImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "image/png" {
		t.Fatalf("expected image/png content type, got %q", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), imageData) {
		t.Fatalf("blob bytes mangled")
	}
}

func TestMemberHandler_GetImage_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		getImageFn: func(ctx context.Context, userID string) ([]byte, string, error) {
			return nil, "", domain.ErrImageNotFound
		},
	}
	h := NewMemberHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/members/profile/image/:userId")
	c.SetParamNames("userId")
	c.SetParamValues("ghost")

	if err := h.GetImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
