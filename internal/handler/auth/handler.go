package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicly/booking-api/internal/handler"
	"github.com/clinicly/booking-api/internal/middleware"
	"github.com/clinicly/booking-api/internal/model"
)

// Service is the slice of the auth service the handler needs
type Service interface {
	RegisterPatient(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	RegisterDoctor(ctx context.Context, req *model.DoctorRegisterRequest) (*model.AuthResponse, error)
	LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.RegisterPatient)
		auth.POST("/login", h.LoginPatient)
		auth.POST("/doctor/register", h.RegisterDoctor)
		auth.POST("/doctor/login", h.LoginDoctor)
	}
}

// RegisterProtectedRoutes registers routes that need a valid bearer token
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	resp, err := h.service.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) LoginPatient(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	resp, err := h.service.LoginPatient(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.DoctorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	resp, err := h.service.RegisterDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	resp, err := h.service.LoginDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	expiresAt, _ := c.Get(middleware.ContextTokenExpiresAt)
	expiry, ok := expiresAt.(time.Time)
	if tokenID == "" || !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	if err := h.service.Logout(c.Request.Context(), tokenID, expiry); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
