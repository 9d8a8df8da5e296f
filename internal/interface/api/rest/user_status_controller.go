package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/infrastructure/jwt"
	"user-presence-api/internal/interface/api/rest/dto/user_status"
	"user-presence-api/internal/interface/api/rest/middleware"
	"user-presence-api/internal/interface/api/rest/validator"
)

type UserStatusController struct {
	userStatusService ports.UserStatusService
	logger            *zap.Logger
}

func NewUserStatusController(
	r *gin.Engine,
	userStatusService ports.UserStatusService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserStatusController {
	usc := &UserStatusController{
		userStatusService: userStatusService,
		logger:            logger,
	}

	r.GET(RouteUserStatuses, usc.GetUserStatusesHandler)
	r.GET(RouteUserStatusByID, usc.GetUserStatusHandler)
	r.PATCH(RouteUserStatusByID, middleware.AuthMiddleware(jwtService), usc.UpdateUserStatusHandler)

	return usc
}

func (usc *UserStatusController) GetUserStatusesHandler(c *gin.Context) {
	ss, err := usc.userStatusService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, usc.logger, "FindAll()", "failed to get user statuses", err)
		return
	}

	c.JSON(http.StatusOK, user_status.ResponseData{
		Data: user_status.ToResponseUserStatuses(ss, usc.userStatusService.IsOnline),
	})
}

func (usc *UserStatusController) GetUserStatusHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("status_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "status_id must be a valid UUID"},
		)
		return
	}

	s, err := usc.userStatusService.Find(c.Request.Context(), id)
	if err != nil {
		respondError(c, usc.logger, "Find()", "failed to get a user status", err)
		return
	}

	c.JSON(http.StatusOK, user_status.ToResponseUserStatus(*s, usc.userStatusService.IsOnline(*s)))
}

// UpdateUserStatusHandler is only allowed on the caller's own status.
func (usc *UserStatusController) UpdateUserStatusHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("status_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "status_id must be a valid UUID"},
		)
		return
	}

	var req user_status.UpdateRequest
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
	if req.LastActiveAt.After(time.Now()) {
		badRequest(c, map[string]string{"last_active_at": "must not be in the future"})
		return
	}

	ctx := c.Request.Context()
	current, err := usc.userStatusService.Find(ctx, id)
	if err != nil {
		respondError(c, usc.logger, "Find()", "failed to get a user status", err)
		return
	}
	if current.UserID.String() != c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed to act on another user"})
		return
	}

	s, err := usc.userStatusService.Update(ctx, id, req.LastActiveAt)
	if err != nil {
		respondError(c, usc.logger, "Update()", "failed to update a user status", err)
		return
	}

	c.JSON(http.StatusOK, user_status.ToResponseUserStatus(*s, usc.userStatusService.IsOnline(*s)))
}
