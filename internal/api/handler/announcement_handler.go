package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skprofiling/members-api/internal/api/metrics"
	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// AnnouncementHandler handles announcement publishing and listing.
type AnnouncementHandler struct {
	announcements ports.AnnouncementService
}

func NewAnnouncementHandler(announcements ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type createAnnouncementRequest struct {
	Title   string `json:"title"   validate:"required"`
	Message string `json:"message" validate:"required"`
}

type createAnnouncementResponse struct {
	OK           bool                 `json:"ok"`
	Announcement *domain.Announcement `json:"announcement"`
}

type announcementsResponse struct {
	Announcements []domain.Announcement `json:"announcements"`
}

// Create publishes an announcement with a server-assigned timestamp.
//
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAnnouncementRequest  true  "Announcement"
// @Success      201   {object}  createAnnouncementResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/announcement [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req createAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.announcements.Create(c.Request().Context(), req.Title, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrAnnouncementInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	metrics.AnnouncementsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, createAnnouncementResponse{OK: true, Announcement: a})
}

// ListRecent serves the public listing: newest first, at most 50.
//
// @Summary      List recent announcements
// @Tags         announcements
// @Produce      json
// @Success      200  {object}  announcementsResponse
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) ListRecent(c echo.Context) error {
	items, err := h.announcements.ListRecent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, announcementsResponse{Announcements: items})
}

// ListAll serves the unbounded listing, newest first.
//
// @Summary      List all announcements
// @Tags         announcements
// @Produce      json
// @Success      200  {object}  announcementsResponse
// @Router       /api/admin/announcement/all [get]
func (h *AnnouncementHandler) ListAll(c echo.Context) error {
	items, err := h.announcements.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, announcementsResponse{Announcements: items})
}

// Delete removes an announcement by id.
//
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Announcement id"
// @Success      200  {object}  okResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/announcement/{id} [delete]
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	if err := h.announcements.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "announcement not found"})
		}
		return err
	}

	metrics.AnnouncementsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
