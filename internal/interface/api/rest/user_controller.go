package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/infrastructure/jwt"
	"user-presence-api/internal/interface/api/rest/dto/user"
	"user-presence-api/internal/interface/api/rest/dto/user_status"
	"user-presence-api/internal/interface/api/rest/middleware"
	"user-presence-api/internal/interface/api/rest/validator"
)

const (
	profileField = "profile"
	// 10MB
	maxProfileSize = int64(10 << 20)
)

type UserController struct {
	userService       ports.UserService
	userStatusService ports.UserStatusService
	logger            *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	userStatusService ports.UserStatusService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		userService:       userService,
		userStatusService: userStatusService,
		logger:            logger,
	}

	authed := []gin.HandlerFunc{middleware.AuthMiddleware(jwtService), middleware.SelfOnly("user_id")}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PUT(RouteUser, append(authed, uc.UpdateUserHandler)...)
	r.DELETE(RouteUser, append(authed, uc.DeleteUserHandler)...)
	r.PATCH(RouteUserStatus, append(authed, uc.TouchStatusHandler)...)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	views, err := uc.userService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, uc.logger, "FindAll()", "failed to get users", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{
		Data: user.ToResponseUsers(views),
	})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	v, err := uc.userService.Find(c.Request.Context(), id)
	if err != nil {
		respondError(c, uc.logger, "Find()", "failed to get a user", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*v))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if details := validator.Validate(req); details != nil {
		badRequest(c, details)
		return
	}
	profile, ok := uc.profileFile(c)
	if !ok {
		return
	}

	v, err := uc.userService.Create(c.Request.Context(), user.ToCreateRequest(req, profile))
	if err != nil {
		respondError(c, uc.logger, "Create()", "failed to create a user", err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*v))
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if details := validator.Validate(req); details != nil {
		badRequest(c, details)
		return
	}
	profile, ok := uc.profileFile(c)
	if !ok {
		return
	}

	v, err := uc.userService.Update(c.Request.Context(), id, user.ToUpdateRequest(req, profile))
	if err != nil {
		respondError(c, uc.logger, "Update()", "failed to update a user", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*v))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	if err := uc.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, uc.logger, "Delete()", "failed to delete user", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TouchStatusHandler records activity of the user now.
func (uc *UserController) TouchStatusHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	s, err := uc.userStatusService.UpdateByUserID(c.Request.Context(), id, time.Now())
	if err != nil {
		respondError(c, uc.logger, "UpdateByUserID()", "failed to update user status", err)
		return
	}

	c.JSON(http.StatusOK, user_status.ToResponseUserStatus(*s, uc.userStatusService.IsOnline(*s)))
}

// profileFile returns the optional profile upload. It writes the error
// response itself and reports false when the request must stop.
func (uc *UserController) profileFile(c *gin.Context) (*ports.BinaryContentCreateRequest, bool) {
	fh, err := c.FormFile(profileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		badRequest(c, err.Error())
		return nil, false
	}
	if fh.Size > maxProfileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "profile image too large"})
		return nil, false
	}

	return ports.BinaryContentRequestFromFileHeader(fh), true
}
