package appointment

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicly/booking-api/internal/handler"
	"github.com/clinicly/booking-api/internal/middleware"
	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/pkg/auth"
)

// Service is the booking surface the handler needs
type Service interface {
	Book(ctx context.Context, userID, doctorID int64, at time.Time, reason string) (*model.AppointmentRecord, error)
	Get(ctx context.Context, id int64) (*model.AppointmentRecord, error)
	List(ctx context.Context) ([]*model.AppointmentRecord, error)
	ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error)
	ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error)
	Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) error
	Cancel(ctx context.Context, id int64) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the appointment endpoints; the per-doctor schedule
// view is gated on the Doctor role.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.GET("/doctor/:doctorId", authMW.RequireRole(auth.RoleDoctor), h.ListDoctorAppointments)
		appointments.GET("/user/:userId", h.ListUserAppointments)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	doctorID, err := model.ParseDoctorID(req.DoctorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID format"))
		return
	}

	record, err := h.service.Book(c.Request.Context(), req.UserID, doctorID, req.AppointmentDateTime, req.Reason)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	doctorID, err := model.ParseDoctorID(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID format"))
		return
	}

	records, err := h.service.ListForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) ListUserAppointments(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	records, err := h.service.ListForPatient(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
