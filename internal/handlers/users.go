package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"package_features/internal/models"
	"package_features/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgUserRequired  = "email, password, and username are required."
	msgLoginRequired = "Email and password are required."
	msgEmailTaken    = "User with this email already exists."
	msgUserNotFound  = "User not found."
	msgBadPassword   = "Invalid password."
	msgLoginOK       = "Login successful"
	msgUserDeleted   = "User soft deleted successfully."

	errFetchUsers = "An error occurred while fetching users."
	errCreateUser = "An error occurred while creating the user."
	errLogin      = "An error occurred during login."
	errFetchUser  = "An error occurred while fetching the user."
	errUpdateUser = "An error occurred while updating the user."
	errDeleteUser = "An error occurred while soft deleting the user."
	errIssueToken = "An error occurred while issuing the token."
)

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"p1"`
	Username string `json:"username" binding:"required" example:"a"`
	Status   string `json:"status,omitempty" binding:"omitempty,oneof=active inactive" example:"active"`
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required" example:"p1"`
}

// UpdateUserRequest overwrites only the fields present in the body.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

func userSubject(id int) string { return fmt.Sprintf("user:%d", id) }

// writeUserWithToken answers {user, token} with a token bound to u.
func (h *Handler) writeUserWithToken(c *gin.Context, u *models.User) {
	token, err := h.services.IssueToken(service.Identity{UserID: u.ID, Email: u.Email})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errIssueToken, "token_issue_failed", err, "user_id", u.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// @Summary      List users
// @Description  Returns every user and a fresh token for the caller. Optional status filter.
// @Tags         users
// @Produce      json
// @Param        status  query  string  false  "Status filter"  Enums(active,inactive)
// @Success      200  {object}  map[string]interface{}  "users, token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	ctx := c.Request.Context()
	status := statusQuery(c)

	users, err := h.services.Users.List(ctx, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchUsers, "users_list_failed", err, "status", status)
		return
	}

	token, err := h.services.IssueToken(service.Identity{
		UserID: c.GetInt(ctxUserID),
		Email:  c.GetString(ctxEmail),
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchUsers, "token_issue_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "token": token})
}

// @Summary      Register user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  CreateUserRequest  true  "User payload"
// @Success      201  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var req CreateUserRequest
	if ok := h.bindJSONOrBadRequest(c, &req, msgUserRequired); !ok {
		return
	}

	u, err := h.services.Users.Create(c.Request.Context(), service.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Status:   models.Status(req.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgUserRequired})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgEmailTaken})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errCreateUser, "user_create_failed", err, "email", req.Email)
		}
		return
	}

	h.audit(c, callerID(c), models.EventUserCreated, userSubject(u.ID), "user registered", map[string]any{"email": u.Email})
	c.JSON(http.StatusCreated, u)
}

// @Summary      Log in
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "message, token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/login [post]
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if ok := h.bindJSONOrBadRequest(c, &req, msgLoginRequired); !ok {
		return
	}

	token, id, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgLoginRequired})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		case errors.Is(err, service.ErrInvalidPassword):
			if h.log != nil {
				h.log.Infow("auth_login_failed", "email", req.Email, "err", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msgBadPassword})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errLogin, "auth_login_error", err, "email", req.Email)
		}
		return
	}

	h.audit(c, id.UserID, models.EventUserLogin, userSubject(id.UserID), "user logged in", nil)
	c.JSON(http.StatusOK, gin.H{"message": msgLoginOK, "token": token})
}

// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "User ID"
// @Success      200  {object}  map[string]interface{}  "user, token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (h *Handler) getUserByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	u, err := h.services.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeUserLookupError(c, err, "id", id)
		return
	}
	h.writeUserWithToken(c, u)
}

// @Summary      Get user by email
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "User email"
// @Success      200  {object}  map[string]interface{}  "user, token"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/email/{email} [get]
// @Security     BearerAuth
func (h *Handler) getUserByEmail(c *gin.Context) {
	email := c.Param("email")
	u, err := h.services.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.writeUserLookupError(c, err, "email", email)
		return
	}
	h.writeUserWithToken(c, u)
}

func (h *Handler) writeUserLookupError(c *gin.Context, err error, key string, value any) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errFetchUser, "user_get_failed", err, key, value)
}

// @Summary      Update user
// @Description  Only fields present in the body are changed; the password is re-hashed only when supplied.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "User ID"
// @Param        body  body  UpdateUserRequest  true  "Fields to change"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if ok := h.bindJSONOrBadRequest(c, &req, ""); !ok {
		return
	}

	patch := service.UserPatch{Email: req.Email, Password: req.Password, Username: req.Username}
	if req.Status != nil {
		st := models.Status(*req.Status)
		patch.Status = &st
	}

	u, err := h.services.Users.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgEmailTaken})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errUpdateUser, "user_update_failed", err, "id", id)
		}
		return
	}

	h.audit(c, callerID(c), models.EventUserUpdated, userSubject(u.ID), "user updated", map[string]any{
		"password_changed": req.Password != nil && *req.Password != "",
	})
	c.JSON(http.StatusOK, u)
}

// @Summary      Soft delete user
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "User ID"
// @Success      200  {object}  map[string]interface{}  "message, user"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	u, err := h.services.Users.SoftDelete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgUserNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteUser, "user_delete_failed", err, "id", id)
		return
	}

	h.audit(c, callerID(c), models.EventUserDeleted, userSubject(u.ID), "user soft deleted", nil)
	c.JSON(http.StatusOK, gin.H{"message": msgUserDeleted, "user": u})
}
