package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Veraticus/tech-concierge/internal/common"
)

func (s *Server) getSession(c echo.Context) error {
	session, err := s.agent.Session(c.Request().Context(), c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		return fail(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load session", err.Error())
	}
	return ok(c, session)
}

func (s *Server) deleteSession(c echo.Context) error {
	err := s.agent.EndSession(c.Request().Context(), c.Param("id"))
	if errors.Is(err, common.ErrNotFound) {
		return fail(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete session", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
