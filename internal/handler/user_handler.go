package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"patchwork/internal/auth"
	apierrors "patchwork/internal/errors"
	"patchwork/internal/model"
	"patchwork/internal/repository"
	"patchwork/internal/service"
)

// UserHandler handles user registration, user reads and the embedded
// project operations.
type UserHandler struct {
	userService service.UserService
	users       repository.UserRepository
	log         *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, users repository.UserRepository, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, users: users, log: log}
}

// SaveUserRequest represents a user registration payload.
type SaveUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Admin    bool   `json:"admin"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LastSessionRequest carries the lastSession value to set.
type LastSessionRequest struct {
	LastSession string `json:"lastSession"`
}

// ProjectSvgRequest carries the svg content to set on one embedded project.
type ProjectSvgRequest struct {
	Svg map[string]interface{} `json:"svg"`
}

// Save godoc
// @Summary Register a new user
// @Tags user
// @Accept json
// @Produce plain
// @Param request body SaveUserRequest true "User data"
// @Success 200 {string} string "Saved User: <email>"
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/save [post]
func (h *UserHandler) Save(c echo.Context) error {
	logEntry(h.log, c)

	var req SaveUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(h.log, c, err)
	}

	_, err := h.userService.Save(c.Request().Context(), req.Name, req.Email, req.Password, req.Admin)
	switch {
	case errors.Is(err, service.ErrUserAlreadySaved):
		return replyError(h.log, c, http.StatusBadRequest, err.Error(), apierrors.CodeAlreadyExists)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.String(http.StatusOK, "Saved User: "+req.Email)
}

// Get replies with the user addressed by the email path parameter. The
// password hash never leaves the server.
func (h *UserHandler) Get(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusUnauthorized, "User Not Found", apierrors.CodeUnauthorized)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, user)
}

// LastSession replies with the user's last session id, empty when none
// was recorded yet.
func (h *UserHandler) LastSession(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusUnauthorized, "User Not Found", apierrors.CodeUnauthorized)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.String(http.StatusOK, user.LastSession)
}

// Projects replies with the user's embedded project list.
func (h *UserHandler) Projects(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusUnauthorized, "User Not Found", apierrors.CodeUnauthorized)
	case err != nil:
		return internalError(h.log, c, err)
	}

	projects := user.Projects
	if projects == nil {
		projects = []model.Project{}
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, projects)
}

// ProjectBySession replies with the one embedded project matching the
// session id path parameter.
func (h *UserHandler) ProjectBySession(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}
	sessionID, err := requireParam(c, "sessionId")
	if err != nil {
		return err
	}

	project, err := h.users.FindProjectBySession(c.Request().Context(), email, sessionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "Project Not Found", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, project)
}

// SaveProject appends a project to the caller's own embedded list.
func (h *UserHandler) SaveProject(c echo.Context) error {
	logEntry(h.log, c)

	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return replyError(h.log, c, http.StatusUnauthorized, "Unauthorized", apierrors.CodeUnauthorized)
	}

	var project model.Project
	if err := c.Bind(&project); err != nil {
		return badRequestBody(h.log, c)
	}
	if err := c.Validate(&project); err != nil {
		return validationError(h.log, c, err)
	}

	saved, err := h.userService.SaveProject(c.Request().Context(), claims.Email, project)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "User doesn't exist", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, saved)
}

// UpdateLastSession sets the single lastSession field in place.
func (h *UserHandler) UpdateLastSession(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}

	var req LastSessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody(h.log, c)
	}
	if req.LastSession == "" {
		return replyError(h.log, c, http.StatusBadRequest, "Missing user last session", apierrors.CodeMissingField)
	}

	err = h.users.UpdateLastSession(c.Request().Context(), email, req.LastSession)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "User doesn't exist", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.String(http.StatusOK, req.LastSession)
}

// UpdateProjectSvg replaces the svg of the one embedded project matching
// the session id path parameter.
func (h *UserHandler) UpdateProjectSvg(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}
	sessionID, err := requireParam(c, "sessionId")
	if err != nil {
		return err
	}

	var req ProjectSvgRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody(h.log, c)
	}
	if req.Svg == nil {
		return replyError(h.log, c, http.StatusBadRequest, "Missing project svg", apierrors.CodeMissingField)
	}

	err = h.users.UpdateProjectSvg(c.Request().Context(), email, sessionID, req.Svg)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "Project Not Found", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, req.Svg)
}

// DeleteProjectBySession removes the caller's own embedded project
// matching the session id and echoes it back.
func (h *UserHandler) DeleteProjectBySession(c echo.Context) error {
	logEntry(h.log, c)

	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return replyError(h.log, c, http.StatusUnauthorized, "Unauthorized", apierrors.CodeUnauthorized)
	}

	sessionID, err := requireParam(c, "sessionId")
	if err != nil {
		return err
	}

	deleted, err := h.users.DeleteProjectBySession(c.Request().Context(), claims.Email, sessionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "Project Not Found", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, deleted)
}

// Delete removes a user by email and echoes the deleted document back.
func (h *UserHandler) Delete(c echo.Context) error {
	logEntry(h.log, c)

	email, err := requireParam(c, "email")
	if err != nil {
		return err
	}

	deleted, err := h.users.DeleteByEmail(c.Request().Context(), email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return replyError(h.log, c, http.StatusBadRequest, "User doesn't exist", apierrors.CodeNotFound)
	case err != nil:
		return internalError(h.log, c, err)
	}

	logOK(h.log, c)
	return c.JSON(http.StatusOK, deleted)
}
