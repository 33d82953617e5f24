package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"magazine-crm/internal/domain"
	"magazine-crm/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func messageResponse(msg string) gin.H {
	return gin.H{"message": msg}
}

// writeError maps service errors onto status codes. notFound is the message
// used for domain.ErrNotFound.
func writeError(c *gin.Context, logger zerolog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, messageResponse(detail(err, domain.ErrValidation)))
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, messageResponse(detail(err, domain.ErrUnauthorized)))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, messageResponse(notFound))
	case errors.Is(err, store.ErrParse):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("parse document")
		c.JSON(http.StatusInternalServerError, messageResponse("Error parsing file data"))
	case errors.Is(err, store.ErrRead):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("read document")
		c.JSON(http.StatusInternalServerError, messageResponse("Error reading file"))
	case errors.Is(err, store.ErrWrite):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("write document")
		c.JSON(http.StatusInternalServerError, messageResponse("Error writing file"))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, messageResponse("Internal server error"))
	}
}

// detail strips the sentinel prefix so clients see only the specific reason.
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
