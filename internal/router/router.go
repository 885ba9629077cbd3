package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicly/booking-api/internal/config"
	appointmenthandler "github.com/clinicly/booking-api/internal/handler/appointment"
	authhandler "github.com/clinicly/booking-api/internal/handler/auth"
	doctorhandler "github.com/clinicly/booking-api/internal/handler/doctor"
	"github.com/clinicly/booking-api/internal/handler/health"
	prescriptionhandler "github.com/clinicly/booking-api/internal/handler/prescription"
	"github.com/clinicly/booking-api/internal/middleware"
)

// Handlers collects the route-owning handlers the router wires up.
type Handlers struct {
	Auth         *authhandler.Handler
	Doctor       *doctorhandler.Handler
	Appointment  *appointmenthandler.Handler
	Prescription *prescriptionhandler.Handler
}

// New builds the gin engine with middleware and all routes registered.
func New(cfg *config.Config, db *sqlx.DB, reg prometheus.Registerer, authMW *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.NewHTTPMetrics(reg, "clinicly").Collect())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	}).RateLimit())

	health.NewHandler(db).RegisterRoutes(&r.RouterGroup)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public surface
		h.Auth.RegisterRoutes(v1)
		h.Doctor.RegisterRoutes(v1)

		// everything else needs a valid bearer token
		protected := v1.Group("")
		protected.Use(authMW.Authenticate())
		{
			h.Auth.RegisterProtectedRoutes(protected)
			h.Doctor.RegisterProtectedRoutes(protected, authMW)
			h.Appointment.RegisterRoutes(protected, authMW)
			h.Prescription.RegisterRoutes(protected)
		}
	}

	return r
}
