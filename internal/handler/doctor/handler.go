package doctor

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicly/booking-api/internal/handler"
	"github.com/clinicly/booking-api/internal/middleware"
	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/pkg/auth"
)

// Service is the catalog surface the handler needs
type Service interface {
	List(ctx context.Context, speciality string) ([]model.DoctorSummary, error)
	Get(ctx context.Context, rawID string) (*model.DoctorSummary, error)
	Update(ctx context.Context, rawID string, req *model.UpdateDoctorRequest) (*model.DoctorSummary, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
	}
}

// RegisterProtectedRoutes wires the profile update; doctors may only touch
// their own record.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	r.PUT("/doctors/:id", authMW.RequireRole(auth.RoleDoctor), h.UpdateDoctor)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.List(c.Request.Context(), c.Query("speciality"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	rawID := c.Param("id")
	id, err := model.ParseDoctorID(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID format"))
		return
	}

	if c.GetInt64(middleware.ContextPrincipalID) != id {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("doctors may only update their own profile"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	doctor, err := h.service.Update(c.Request.Context(), rawID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}
