package httpserver

import (
	"net/http"

	profilesvc "magazine-crm/internal/service/profile"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const profileNotFound = "No profiles found."

func getProfileHandler(svc profileService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context())
		if err != nil {
			writeError(c, logger, err, profileNotFound)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func updateProfileHandler(svc profileService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in profilesvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
		p, err := svc.Update(c.Request.Context(), in)
		if err != nil {
			writeError(c, logger, err, profileNotFound)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully.", "profile": p})
	}
}
