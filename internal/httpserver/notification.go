package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func listNotificationsHandler(feed notificationFeed, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := feed.List(c.Request.Context())
		if err != nil {
			logger.Error().Err(err).Msg("list notifications")
			c.JSON(http.StatusInternalServerError, messageResponse("Error reading notifications"))
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}
