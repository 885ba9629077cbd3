package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicly/booking-api/internal/middleware"
	"github.com/clinicly/booking-api/internal/model"
	"github.com/clinicly/booking-api/pkg/auth"
	apperrors "github.com/clinicly/booking-api/pkg/errors"
)

type stubService struct {
	bookDoctorID int64
	bookErr      error
	getErr       error
	updateErr    error
	cancelErr    error
	listed       []*model.AppointmentRecord
}

func (s *stubService) Book(ctx context.Context, userID, doctorID int64, at time.Time, reason string) (*model.AppointmentRecord, error) {
	s.bookDoctorID = doctorID
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	r := &model.AppointmentRecord{
		AppointmentID:   1,
		UserID:          userID,
		DoctorNumericID: doctorID,
		AppointmentTime: at,
		Status:          model.AppointmentStatusScheduled,
	}
	r.Normalize()
	return r, nil
}

func (s *stubService) Get(ctx context.Context, id int64) (*model.AppointmentRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &model.AppointmentRecord{AppointmentID: id}, nil
}

func (s *stubService) List(ctx context.Context) ([]*model.AppointmentRecord, error) {
	return s.listed, nil
}

func (s *stubService) ListForDoctor(ctx context.Context, doctorID int64) ([]*model.AppointmentRecord, error) {
	return s.listed, nil
}

func (s *stubService) ListForPatient(ctx context.Context, userID int64) ([]*model.AppointmentRecord, error) {
	return s.listed, nil
}

func (s *stubService) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) error {
	return s.updateErr
}

func (s *stubService) Cancel(ctx context.Context, id int64) error {
	return s.cancelErr
}

func setupRouter(svc *stubService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if role != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextPrincipalRole, role)
		})
	}
	authMW := middleware.NewAuthMiddleware(nil, nil)
	NewHandler(svc).RegisterRoutes(&r.RouterGroup, authMW)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookAppointment(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc, "")

	body := `{"userId":1,"doctorId":"doc2","appointmentDateTime":"2025-07-01T10:00:00Z","reason":"checkup"}`
	w := doRequest(r, http.MethodPost, "/appointments", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(2), svc.bookDoctorID, "the prefixed doctor id form is parsed")
	assert.Contains(t, w.Body.String(), `"doctorId":"doc2"`)
}

func TestBookAppointmentBareNumericDoctorID(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc, "")

	body := `{"userId":1,"doctorId":"2","appointmentDateTime":"2025-07-01T10:00:00Z"}`
	w := doRequest(r, http.MethodPost, "/appointments", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(2), svc.bookDoctorID)
}

func TestBookAppointmentInvalidDoctorID(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	body := `{"userId":1,"doctorId":"nope","appointmentDateTime":"2025-07-01T10:00:00Z"}`
	w := doRequest(r, http.MethodPost, "/appointments", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid doctor ID format")
}

func TestBookAppointmentMissingFields(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	w := doRequest(r, http.MethodPost, "/appointments", `{"userId":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookAppointmentSlotTaken(t *testing.T) {
	svc := &stubService{bookErr: apperrors.BadRequest("this time slot is already booked", nil)}
	r := setupRouter(svc, "")

	body := `{"userId":1,"doctorId":"doc2","appointmentDateTime":"2025-07-01T10:00:00Z"}`
	w := doRequest(r, http.MethodPost, "/appointments", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
}

func TestGetAppointmentNotFound(t *testing.T) {
	svc := &stubService{getErr: apperrors.NotFound("appointment", nil)}
	r := setupRouter(svc, "")

	w := doRequest(r, http.MethodGet, "/appointments/5", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAppointmentBadID(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	w := doRequest(r, http.MethodGet, "/appointments/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDoctorAppointmentsRequiresDoctorRole(t *testing.T) {
	r := setupRouter(&stubService{}, auth.RolePatient)

	w := doRequest(r, http.MethodGet, "/appointments/doctor/doc2", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListDoctorAppointments(t *testing.T) {
	svc := &stubService{listed: []*model.AppointmentRecord{{AppointmentID: 1}}}
	r := setupRouter(svc, auth.RoleDoctor)

	w := doRequest(r, http.MethodGet, "/appointments/doctor/doc2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"appointmentId":1`)
}

func TestListAppointments(t *testing.T) {
	svc := &stubService{listed: []*model.AppointmentRecord{{AppointmentID: 1}, {AppointmentID: 2}}}
	r := setupRouter(svc, "")

	w := doRequest(r, http.MethodGet, "/appointments", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"appointmentId":1`)
	assert.Contains(t, w.Body.String(), `"appointmentId":2`)
}

func TestListUserAppointments(t *testing.T) {
	svc := &stubService{listed: []*model.AppointmentRecord{{AppointmentID: 1}, {AppointmentID: 2}}}
	r := setupRouter(svc, "")

	w := doRequest(r, http.MethodGet, "/appointments/user/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateAppointmentIDMismatch(t *testing.T) {
	svc := &stubService{updateErr: apperrors.BadRequest("appointment ID mismatch", nil)}
	r := setupRouter(svc, "")

	body := `{"appointmentId":2,"appointmentDateTime":"2025-07-01T10:00:00Z","status":"Scheduled","updatedAt":"2025-06-01T00:00:00Z"}`
	w := doRequest(r, http.MethodPut, "/appointments/1", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mismatch")
}

func TestUpdateAppointmentConflict(t *testing.T) {
	svc := &stubService{updateErr: apperrors.Conflict("appointment was modified concurrently", nil)}
	r := setupRouter(svc, "")

	body := `{"appointmentId":1,"appointmentDateTime":"2025-07-01T10:00:00Z","status":"Completed","updatedAt":"2025-06-01T00:00:00Z"}`
	w := doRequest(r, http.MethodPut, "/appointments/1", body)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateAppointmentInvalidStatus(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	body := `{"appointmentId":1,"appointmentDateTime":"2025-07-01T10:00:00Z","status":"Postponed","updatedAt":"2025-06-01T00:00:00Z"}`
	w := doRequest(r, http.MethodPut, "/appointments/1", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAppointmentNoContent(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	body := `{"appointmentId":1,"appointmentDateTime":"2025-07-01T10:00:00Z","status":"Completed","updatedAt":"2025-06-01T00:00:00Z"}`
	w := doRequest(r, http.MethodPut, "/appointments/1", body)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCancelAppointment(t *testing.T) {
	r := setupRouter(&stubService{}, "")

	w := doRequest(r, http.MethodDelete, "/appointments/1", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCancelAppointmentNotFound(t *testing.T) {
	svc := &stubService{cancelErr: apperrors.NotFound("appointment", nil)}
	r := setupRouter(svc, "")

	w := doRequest(r, http.MethodDelete, "/appointments/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
