package wire

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"
	"student-housing/internal/gateway"
	"student-housing/pkg/mq"
	"student-housing/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (pgxmock.PgxPoolIface, http.Handler) {
	t.Helper()
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.ExpectationsWereMet())
		db.Close()
	})

	log := zap.NewNop()
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}}
	gw := gateway.NewSimulator(0, gateway.FixedResolver(true), log)

	return db, Wiring(repository.NewRepository(db, log), gw, mq.Noop{}, config, log)
}

func expectSession(db pgxmock.PgxPoolIface, token string, role entity.UserRole) {
	now := time.Now()
	db.ExpectQuery(regexp.QuoteMeta("FROM sessions s")).
		WithArgs(token).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "token", "user_agent", "ip_address",
			"expires_at", "revoked_at", "created_at", "role",
		}).AddRow(
			uuid.New(), uuid.New(), uuid.MustParse(token), nil, nil,
			now.Add(time.Hour), nil, now, role,
		))
}

func serve(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_PaymentMethodsPublic(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/api/payment-methods", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MTN Mobile Money")
	assert.Contains(t, w.Body.String(), "Orange Money")
}

func TestRouter_ProtectedNeedsToken(t *testing.T) {
	_, r := newRouter(t)

	for _, target := range []string{"/api/bookings", "/api/payments", "/api/dashboard", "/api/users/profile"} {
		w := serve(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestRouter_RoleGate(t *testing.T) {
	db, r := newRouter(t)

	token := uuid.NewString()
	expectSession(db, token, entity.RoleStudent)

	w := serve(r, http.MethodPost, "/api/rooms", token, `{"title":"Studio","district":"Bastos","price":45000}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AdminOnlyUsers(t *testing.T) {
	db, r := newRouter(t)

	token := uuid.NewString()
	expectSession(db, token, entity.RoleOwner)

	w := serve(r, http.MethodGet, "/api/admin/users", token, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_DistrictsPublic(t *testing.T) {
	db, r := newRouter(t)

	now := time.Now()
	db.ExpectQuery(regexp.QuoteMeta("FROM districts ORDER BY name")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(uuid.New(), "Bastos", nil, now, now))

	w := serve(r, http.MethodGet, "/api/districts", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bastos")
}

func TestRouter_DeleteDistrictWithRooms(t *testing.T) {
	db, r := newRouter(t)

	token := uuid.NewString()
	expectSession(db, token, entity.RoleAdmin)

	id := uuid.New()
	db.ExpectExec(regexp.QuoteMeta("DELETE FROM districts WHERE id = $1")).
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	w := serve(r, http.MethodDelete, "/api/admin/districts/"+id.String(), token, "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_DistrictWritesAdminOnly(t *testing.T) {
	db, r := newRouter(t)

	token := uuid.NewString()
	expectSession(db, token, entity.RoleOwner)

	w := serve(r, http.MethodPost, "/api/admin/districts", token, `{"name":"Essos"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_AdminDeactivatesUser(t *testing.T) {
	db, r := newRouter(t)

	token := uuid.NewString()
	expectSession(db, token, entity.RoleAdmin)

	now := time.Now()
	userID := uuid.New()
	db.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "password", "phone", "role", "is_active", "created_at", "updated_at",
		}).AddRow(userID, "Bob", "bob@example.com", "hash", nil, entity.RoleOwner, true, now, now))
	db.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_active = $2")).
		WithArgs(userID, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	w := serve(r, http.MethodPatch, "/api/admin/users/"+userID.String()+"/status", token, `{"active":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_active":false`)
}
