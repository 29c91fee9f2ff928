package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realty-client/internal/models"
	"realty-client/services/bidding/helpers"
	"realty-client/utils"
)

//go:generate mockgen -source=auth_handler.go -destination=mock_auth_service.go -package=handler

type AuthServiceInterface interface {
	Register(in models.RegisterInput) (models.RegisterResult, error)
	Login(login, password string) (models.TokenPair, error)
	Refresh(refresh string) (models.TokenPair, error)
	Logout(refresh string) error
	Profile(userID int64) (models.User, error)
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginHandler handles POST /auth/login/
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	pair, err := h.service.Login(req.Login, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, pair)
	helpers.LogSuccess("LoginHandler", "user logged in", nil)
}

// RefreshHandler handles POST /auth/login/refresh/
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req helpers.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RefreshHandler", err)
		return
	}

	pair, err := h.service.Refresh(req.Refresh)
	if err != nil {
		helpers.RespondError(c, "RefreshHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AccessResponse{Access: pair.Access, Refresh: pair.Refresh})
	helpers.LogSuccess("RefreshHandler", "access token refreshed", nil)
}

// RegisterHandler handles POST /auth/register/
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	res, err := h.service.Register(req)
	if err != nil {
		helpers.RespondError(c, "RegisterHandler", err, map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, res)
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{"user_id": res.User.ID})
}

// LogoutHandler handles POST /auth/logout/
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var req helpers.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LogoutHandler", err)
		return
	}

	if err := h.service.Logout(req.RefreshToken); err != nil {
		helpers.RespondError(c, "LogoutHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.DetailResponse{Detail: "Successfully logged out."})
	helpers.LogSuccess("LogoutHandler", "user logged out", nil)
}

// ProfileHandler handles GET /auth/me/
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	current, _ := helpers.CurrentUser(c)

	u, err := h.service.Profile(current.ID)
	if err != nil {
		helpers.RespondError(c, "ProfileHandler", err, map[string]any{"user_id": current.ID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, u)
}
