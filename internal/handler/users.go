package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/auth/credentials"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/middleware"
	"github.com/mahmoud-eltahawy/cryptos-site/internal/model"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.db.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	secure := make([]model.SecureUser, 0, len(users))
	for _, u := range users {
		secure = append(secure, u.Secure())
	}

	count, err := h.db.CountUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": secure, "count": count})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user.Secure())
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Level    string `json:"level" binding:"required"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	level, ok := auth.ParseLevel(req.Level)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "level must be Admin or User"})
		return
	}

	hash, err := credentials.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.CreateUser(c.Request.Context(), req.Name, hash, level)
	if isUniqueViolation(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "name already taken"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user.Secure())
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Level    *string `json:"level"`
}

// updateUser applies any subset of name, password, and level. A level
// change on the caller's own account is rejected: an admin cannot
// rewrite its own tier, so the last admin cannot lock everyone out and
// no principal ever self-escalates.
func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Name == nil && req.Password == nil && req.Level == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	ctx := c.Request.Context()

	if req.Name != nil {
		if _, err := h.db.UpdateUserName(ctx, id, *req.Name); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			if isUniqueViolation(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "name already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update name"})
			return
		}
	}

	if req.Password != nil {
		hash, err := credentials.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if _, err := h.db.UpdateUserPassword(ctx, id, hash); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
			return
		}
	}

	if req.Level != nil {
		level, ok := auth.ParseLevel(*req.Level)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level must be Admin or User"})
			return
		}
		if caller, ok := middleware.PrincipalID(c); ok && caller == id {
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot change own level"})
			return
		}
		if _, err := h.db.UpdateUserLevel(ctx, id, level); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update level"})
			return
		}
	}

	user, err := h.db.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, user.Secure())
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}
