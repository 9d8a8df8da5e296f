package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/domain/errs"
	"user-presence-api/internal/interface/api/rest/dto/auth"
	"user-presence-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger            *zap.Logger
	userService       ports.UserService
	userStatusService ports.UserStatusService
	authService       ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	userStatusService ports.UserStatusService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:            logger,
		userService:       userService,
		userStatusService: userStatusService,
		authService:       authService,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

// LoginHandler issues a token and marks the user as active.
func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	if details := validator.Validate(req); details != nil {
		badRequest(c, details)
		return
	}

	ctx := c.Request.Context()
	u, err := ac.userService.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, ac.logger, "FindByUsername()", "failed to get a user", err)
		return
	}

	token, err := ac.authService.GenerateToken(u, req.Password)
	if err != nil {
		ac.logger.Warn("GenerateToken() error", zap.Error(err), zap.Stringer("user_id", u.ID))
		respondError(c, ac.logger, "GenerateToken()", "failed to generate token", err)
		return
	}

	if _, err = ac.userStatusService.UpdateByUserID(ctx, u.ID, time.Now()); err != nil {
		ac.logger.Error("UpdateByUserID() error", zap.Error(err), zap.Stringer("user_id", u.ID))
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}
