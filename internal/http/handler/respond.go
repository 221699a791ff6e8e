package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"basegraph.app/roster/internal/http/dto"
	"basegraph.app/roster/internal/http/middleware"
	"basegraph.app/roster/internal/service"
)

// respondError writes err using its service kind. Untyped errors are logged
// and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) || svcErr.Kind == service.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"route", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	if svcErr.Err != nil {
		slog.DebugContext(c.Request.Context(), "request rejected",
			"code", svcErr.Code,
			"cause", svcErr.Err)
	}
	c.JSON(dto.StatusForKind(svcErr.Kind), dto.ErrorResponse{Error: svcErr.Message, Code: svcErr.Code})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message, Code: "invalid_request"})
}

// requireIdentity returns the caller set by the auth middleware.
func requireIdentity(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentity(c.Request.Context())
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return middleware.Identity{}, false
	}
	return identity, true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func parseIDQuery(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, name+" is required")
		return 0, false
	}
	return id, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
