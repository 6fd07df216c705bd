package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/zaika/app/controllers"
	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/app/routes"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/pkg/auth"
	"github.com/shashiranjanraj/zaika/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func newAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:routesdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Reservation{}, &models.Order{}))

	userRepo := repositories.NewUserRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(userRepo, nil)
	reservationSvc := services.NewReservationService(reservationRepo, nil)
	orderSvc := services.NewOrderService(orderRepo)
	paymentSvc := services.NewPaymentService(orderRepo, nil, "key-secret", "hook-secret")

	r := router.New()
	routes.Register(r, routes.Controllers{
		Auth:        controllers.NewAuthController(authSvc),
		Reservation: controllers.NewReservationController(reservationSvc),
		Order:       controllers.NewOrderController(orderSvc),
		Payment:     controllers.NewPaymentController(paymentSvc),
		Resolve:     authSvc.ResolveUser,
	})
	return r.Handler(), db
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestSignupLoginMeFlow(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "ravi",
		"email":    "ravi@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Signup sets the token cookie too.
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "token" && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "signup should set the token cookie")

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "ravi", user["username"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword, "profile must never include the password hash")
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/orders/my", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token provided", body["message"])
}

func TestAdminGateOnReservationAll(t *testing.T) {
	h, db := newAPI(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "plain",
		"email":    "plain@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token, _ := body["token"].(string)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/reservation/all", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "plain users must not list all reservations")

	// Promote the user and mint a token carrying the admin role claim.
	var u models.User
	require.NoError(t, db.Where("email = ?", "plain@example.com").First(&u).Error)
	adminToken, err := auth.GenerateToken(u.ID, models.RoleAdmin)
	require.NoError(t, err)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/reservation/all", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFoundFallback(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/definitely/not/here", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cannot GET /api/v1/definitely/not/here", body["message"])
}

func TestReservationLivenessRoute(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/reservation/test", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestReservationFlow(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "asha",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token, _ := body["token"].(string)

	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/reservation/send", token, map[string]string{
		"firstName": "Asha",
		"lastName":  "Raoji",
		"email":     "asha@example.com",
		"phone":     "9876543210",
		"date":      "2026-09-15",
		"time":      "19:30",
		"address":   "12 MG Road, Bengaluru",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reservation, _ := body["reservation"].(map[string]interface{})
	require.NotNil(t, reservation)
	table, _ := reservation["tableNumber"].(float64)
	assert.GreaterOrEqual(t, table, float64(1))
	assert.LessOrEqual(t, table, float64(100))

	// The envelope is uniformly camelCase, with no soft-delete marker.
	assert.Contains(t, reservation, "id")
	assert.Contains(t, reservation, "createdAt")
	assert.NotContains(t, reservation, "ID")
	assert.NotContains(t, reservation, "CreatedAt")
	assert.NotContains(t, reservation, "DeletedAt")

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/reservation/my", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list, _ := body["reservations"].([]interface{})
	assert.Len(t, list, 1)
}

func TestReservationRequiresAddress(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "asha",
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token, _ := body["token"].(string)

	base := map[string]string{
		"firstName": "Asha",
		"lastName":  "Raoji",
		"email":     "asha@example.com",
		"phone":     "9876543210",
		"date":      "2026-09-15",
		"time":      "19:30",
	}

	// Missing entirely.
	rec, body = doJSON(t, h, http.MethodPost, "/api/v1/reservation/send", token, base)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	msg, _ := body["message"].(string)
	assert.Contains(t, msg, "address")

	// Present but shorter than 10 characters.
	short := map[string]string{}
	for k, v := range base {
		short[k] = v
	}
	short["address"] = "MG Road"
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/reservation/send", token, short)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidationErrorsEnumerateFields(t *testing.T) {
	h, _ := newAPI(t)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ := body["message"].(string)
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "password")
}
