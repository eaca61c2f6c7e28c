package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skprofiling/members-api/internal/api/middleware"
)

// ctxClaims extracts the auth claims injected by the Auth middleware.
// Presence of both values proves the middleware ran; without them the
// request must not reach storage.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
