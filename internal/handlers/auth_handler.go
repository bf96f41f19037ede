package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	ucAuth "github.com/BruksfildServices01/salon-manager/internal/usecase/auth"
)

type AuthHandler struct {
	register       *ucAuth.Register
	login          *ucAuth.Login
	logout         *ucAuth.Logout
	changePassword *ucAuth.ChangePassword
	log            *zap.Logger
}

func NewAuthHandler(
	register *ucAuth.Register,
	login *ucAuth.Login,
	logout *ucAuth.Logout,
	changePassword *ucAuth.ChangePassword,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		logout:         logout,
		changePassword: changePassword,
		log:            log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.register.Execute(c.Request.Context(), ucAuth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, sessionDTO(s))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, sessionDTO(s))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.Principal(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), ucAuth.ChangePasswordInput{
		UserID:      middleware.UserID(c),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func sessionDTO(s *ucAuth.Session) dto.SessionDTO {
	return dto.SessionDTO{
		User:      dto.NewUserDTO(s.User),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}
