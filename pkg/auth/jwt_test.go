package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long"

func newTestService(now func() time.Time) *jwtService {
	return &jwtService{
		secret:   []byte(testSecret),
		issuer:   "clinicly",
		audience: "clinicly-web",
		expiry:   time.Hour,
		now:      now,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Now)

	token, err := svc.Generate(42, "Alice", "alice@clinic.test", RolePatient)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	id, err := claims.PrincipalID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@clinic.test", claims.Email)
	assert.Equal(t, RolePatient, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestService(func() time.Time { return issued })
	token, err := svc.Generate(1, "Bob", "bob@clinic.test", RoleDoctor)
	require.NoError(t, err)

	// Still valid just before expiry
	svc.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = svc.Validate(token)
	assert.NoError(t, err)

	// Invalid just after
	svc.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedSignature(t *testing.T) {
	svc := newTestService(time.Now)
	token, err := svc.Generate(1, "Bob", "bob@clinic.test", RoleDoctor)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongAudience(t *testing.T) {
	issuing := newTestService(time.Now)
	token, err := issuing.Generate(1, "Bob", "bob@clinic.test", RoleDoctor)
	require.NoError(t, err)

	verifying := newTestService(time.Now)
	verifying.audience = "other-app"

	_, err = verifying.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestService(time.Now)
	token, err := svc.Generate(1, "Bob", "bob@clinic.test", RoleDoctor)
	require.NoError(t, err)

	other := newTestService(time.Now)
	other.secret = []byte("another-secret-with-enough-bytes")

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	svc := newTestService(time.Now)
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
