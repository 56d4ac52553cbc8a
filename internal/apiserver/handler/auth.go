package handler

import (
	"net/http"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/apiserver/middleware"
	"github.com/gestimo/gestimo/internal/common/cnst"
	"github.com/gestimo/gestimo/internal/common/dto"
	"github.com/gestimo/gestimo/internal/common/errorx"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func userInfo(u *database.User) dto.UserInfo {
	return dto.UserInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.errs.Handle(c, errorx.NewUnauthorized("invalid email or password"))
		return
	}
	if !user.IsActive {
		h.errs.Handle(c, errorx.NewForbidden("user is disabled"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		h.errs.Handle(c, errorx.NewUnauthorized("invalid email or password"))
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		h.errs.Handle(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userInfo(user),
	})
}

// ChangePassword handles password change requests for the caller
func (h *Handler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		h.errs.Handle(c, errorx.NewUnauthorized("unauthorized"))
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		h.errs.Handle(c, errorx.NewForbidden("invalid old password"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	user.Password = string(hashed)
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	c.JSON(http.StatusOK, dto.ChangePasswordResponse{Success: true})
}

// CreateUser handles user creation (admin only)
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}

	user := &database.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     database.UserRole(req.Role),
		IsActive: true,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionCreate, cnst.EntityUsers, user.ID, nil, userInfo(user))
	c.JSON(http.StatusCreated, userInfo(user))
}

// ListUsers handles listing all users (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	infos := make([]dto.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, userInfo(u))
	}
	c.JSON(http.StatusOK, infos)
}

// UpdateUser handles user updates (admin only)
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.Handle(c, bindingError(err))
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	old := userInfo(user)

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = database.UserRole(req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.errs.Handle(c, err)
			return
		}
		user.Password = string(hashed)
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}

	h.audit(c, cnst.ActionUpdate, cnst.EntityUsers, user.ID, old, userInfo(user))
	c.JSON(http.StatusOK, userInfo(user))
}

// DeleteUser handles user deletion (admin only)
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.errs.Handle(c, err)
		return
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok && claims.UserID == id {
		h.errs.Handle(c, errorx.NewConflict("cannot delete the calling user"))
		return
	}
	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		h.errs.Handle(c, mapStoreErr(err))
		return
	}
	h.audit(c, cnst.ActionDelete, cnst.EntityUsers, id, nil, nil)
	c.Status(http.StatusNoContent)
}
