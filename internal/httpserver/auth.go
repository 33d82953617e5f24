package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func loginHandler(svc authService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
		action, err := svc.Login(req.Username, req.Password)
		if err != nil {
			writeError(c, logger, err, "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"loginAction": action, "message": "Login Successfully"})
	}
}

func changePasswordHandler(svc authService, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, messageResponse("invalid request body"))
			return
		}
		if err := svc.ChangePassword(req.Password, req.NewPassword); err != nil {
			writeError(c, logger, err, "")
			return
		}
		c.JSON(http.StatusOK, messageResponse("Password changed successfully"))
	}
}
