package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/skprofiling/members-api/internal/api/metrics"
	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// imageFormField is the multipart file field carrying the profile image.
// The name is part of the external contract with existing clients.
const imageFormField = "profileImage"

// MemberHandler handles the member-facing profile endpoints.
type MemberHandler struct {
	profileService ports.ProfileService
}

func NewMemberHandler(profileService ports.ProfileService) *MemberHandler {
	return &MemberHandler{profileService: profileService}
}

type profileResponse struct {
	Profile *domain.Profile `json:"profile"`
}

type upsertProfileResponse struct {
	OK      bool            `json:"ok"`
	Profile *domain.Profile `json:"profile"`
}

// GetProfile returns the caller's own profile, or null when none exists yet.
//
// @Summary      Get own profile
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/members/profile [get]
func (h *MemberHandler) GetProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	p, err := h.profileService.GetOwn(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusOK, profileResponse{Profile: nil})
		}
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Profile: p})
}

// UpsertProfile accepts a multipart submission and creates or fully
// overwrites the caller's profile. Fields absent from the form are stored as
// null; the image is only replaced when a file accompanies this request.
//
// @Summary      Submit profile (create or replace)
// @Tags         members
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  upsertProfileResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/members/profile [post]
func (h *MemberHandler) UpsertProfile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	image, err := readImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}

	input := ports.UpsertProfileInput{
		UserID: userID,
		Fields: collectFields(params),
		Image:  image,
	}

	stored, err := h.profileService.Upsert(c.Request().Context(), input)
	if err != nil {
		metrics.ProfileUpsertsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ProfileUpsertsTotal.WithLabelValues("ok").Inc()
	if image != nil {
		metrics.ProfileImageBytes.Observe(float64(len(image.Data)))
	}
	return c.JSON(http.StatusOK, upsertProfileResponse{OK: true, Profile: stored})
}

// GetImage serves the stored binary image for a user. Public by contract:
// profile photos are rendered on listings without authentication.
//
// @Summary      Get a member's profile image
// @Tags         members
// @Produce      octet-stream
// @Param        userId  path  string  true  "User id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /api/members/profile/image/{userId} [get]
func (h *MemberHandler) GetImage(c echo.Context) error {
	userID := c.Param("userId")

	data, mime, err := h.profileService.GetImage(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "no image"})
		}
		return err
	}
	return c.Blob(http.StatusOK, mime, data)
}

// collectFields maps submitted form values onto the enumerated field set.
// Only keys present in the form produce non-nil pointers, so "submitted as
// empty" and "not submitted" stay distinguishable.
func collectFields(params url.Values) ports.ProfileFields {
	return ports.ProfileFields{
		Name:        formField(params, "name"),
		DOB:         formField(params, "dob"),
		Age:         formField(params, "age"),
		Gender:      formField(params, "gender"),
		CivilStatus: formField(params, "civil_status"),
		Religion:    formField(params, "religion"),
		Contact:     formField(params, "contact"),
		Address:     formField(params, "address"),

		SchoolLevel:  formField(params, "school_level"),
		SchoolName:   formField(params, "school_name"),
		SchoolStatus: formField(params, "school_status"),
		Employment:   formField(params, "employment"),
		WorkType:     formField(params, "work_type"),
		WorkTime:     formField(params, "work_time"),

		Illnesses:    formField(params, "illnesses"),
		Healthcare:   formField(params, "healthcare"),
		Disabilities: formField(params, "disabilities"),

		YouthOrg:    formField(params, "youth_org"),
		Risks:       formField(params, "risks"),
		Experience:  formField(params, "experience"),
		Groups:      formField(params, "groups"),
		Willingness: formField(params, "willingness"),

		GuardianName:    formField(params, "guardian_name"),
		GuardianContact: formField(params, "guardian_contact"),
		Relationship:    formField(params, "relationship"),
	}
}

func formField(params url.Values, key string) *string {
	vals, ok := params[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// readImage extracts the optional image file from the request. A missing
// file is not an error.
func readImage(c echo.Context) (*ports.ImageUpload, error) {
	fh, err := c.FormFile(imageFormField)
	if err != nil {
		// echo surfaces both "no multipart body" and "field absent" as
		// errors here; either way there is simply no image to read.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &ports.ImageUpload{
		Data: data,
		Mime: fh.Header.Get("Content-Type"),
	}, nil
}
