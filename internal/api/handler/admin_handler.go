package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skprofiling/members-api/internal/api/metrics"
	"github.com/skprofiling/members-api/internal/core/domain"
	"github.com/skprofiling/members-api/internal/core/ports"
)

// AdminHandler handles the admin directory endpoints.
type AdminHandler struct {
	directory ports.DirectoryService
}

func NewAdminHandler(directory ports.DirectoryService) *AdminHandler {
	return &AdminHandler{directory: directory}
}

type membersResponse[T any] struct {
	Members []T `json:"members"`
}

type memberProfileResponse struct {
	Profile *ports.MemberProfileView `json:"profile"`
}

// Search handles GET /api/admin/members/search?q= — case-insensitive
// substring match on member names.
//
// @Summary      Search members by name
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  false  "Name substring"
// @Success      200  {object}  membersResponse[ports.MemberSummary]
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/members/search [get]
func (h *AdminHandler) Search(c echo.Context) error {
	results, err := h.directory.SearchByName(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("search").Inc()
	return c.JSON(http.StatusOK, membersResponse[ports.MemberSummary]{Members: results})
}

// FilterByLetter handles GET /api/admin/members/filter/:letter — members
// whose derived surname starts with the letter.
//
// @Summary      Filter members by surname letter
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        letter  path  string  true  "Surname initial"
// @Success      200  {object}  membersResponse[ports.SurnameEntry]
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/members/filter/{letter} [get]
func (h *AdminHandler) FilterByLetter(c echo.Context) error {
	entries, err := h.directory.FilterBySurnameLetter(c.Request().Context(), c.Param("letter"))
	if err != nil {
		return err
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("filter").Inc()
	return c.JSON(http.StatusOK, membersResponse[ports.SurnameEntry]{Members: entries})
}

// FetchProfile handles GET /api/admin/members/profile/:id — every stored
// field plus the base64-inlined image.
//
// @Summary      Fetch a member's full profile
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile id"
// @Success      200  {object}  memberProfileResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/members/profile/{id} [get]
func (h *AdminHandler) FetchProfile(c echo.Context) error {
	view, err := h.directory.FetchFullProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
		}
		return err
	}

	metrics.DirectoryLookupsTotal.WithLabelValues("profile").Inc()
	return c.JSON(http.StatusOK, memberProfileResponse{Profile: view})
}
