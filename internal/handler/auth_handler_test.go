package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
	"gstrecon/internal/handler"
	"gstrecon/internal/service"
	"gstrecon/mocks"
)

func postJSON(h gin.HandlerFunc, target, body string, userID *uuid.UUID) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != nil {
		setAuthContext(c, *userID)
	}
	h(c)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)
	svc.On("Signup", mock.Anything, service.SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: "s3cret#pw", GSTIN: "27AAPFU0939F1ZV",
	}).Return(&domain.User{ID: uuid.New(), Email: "asha@example.com", PasswordHash: "hash"}, nil)

	w := postJSON(h.Signup, "/api/v1/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"s3cret#pw","gstin":"27AAPFU0939F1ZV"}`, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestAuthHandler_Signup_WeakPassword(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)
	svc.On("Signup", mock.Anything, mock.Anything).Return(nil, domain.ErrWeakPassword)

	w := postJSON(h.Signup, "/api/v1/auth/signup", `{"name":"A","email":"a@b.co","password":"abc"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WEAK_PASSWORD", decodeResponse(t, w.Body.Bytes()).Error.Code)
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)

	w := postJSON(h.Signup, "/api/v1/auth/signup", `{"email":"not-an-email"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)
	svc.On("Login", mock.Anything, service.LoginInput{Email: "asha@example.com", Password: "s3cret#pw"}).
		Return(&service.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := postJSON(h.Login, "/api/v1/auth/login", `{"email":"asha@example.com","password":"s3cret#pw"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"access"`)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	w := postJSON(h.Login, "/api/v1/auth/login", `{"email":"asha@example.com","password":"nope#1"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	svc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(svc)
	svc.On("RefreshToken", mock.Anything, "refresh").Return(&service.TokenPair{AccessToken: "new"}, nil)

	w := postJSON(h.RefreshToken, "/api/v1/auth/refresh", `{"refresh_token":"refresh"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"new"`)
}

func TestProfileHandler_Me(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)
	userID := uuid.New()
	svc.On("Get", mock.Anything, userID).Return(&domain.User{ID: userID, Name: "Asha", GSTIN: "27AAPFU0939F1ZV"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/profile/me", http.NoBody)
	setAuthContext(c, userID)
	h.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "27AAPFU0939F1ZV")
}

func TestProfileHandler_UpdateGSTIN(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)
	userID := uuid.New()
	svc.On("UpdateGSTIN", mock.Anything, userID, "27aapfu0939f1zv").
		Return(&domain.User{ID: userID, GSTIN: "27AAPFU0939F1ZV"}, nil)

	w := postJSON(h.UpdateGSTIN, "/api/v1/profile/gstin", `{"gstin":"27aapfu0939f1zv"}`, &userID)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileHandler_UpdateGSTIN_Invalid(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc)
	userID := uuid.New()
	svc.On("UpdateGSTIN", mock.Anything, userID, "BAD").Return(nil, domain.ErrInvalidGSTIN)

	w := postJSON(h.UpdateGSTIN, "/api/v1/profile/gstin", `{"gstin":"BAD"}`, &userID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_GSTIN", decodeResponse(t, w.Body.Bytes()).Error.Code)
}

func TestRateHandler_Resolve(t *testing.T) {
	svc := new(mocks.MockRateService)
	h := handler.NewRateHandler(svc)
	rate := 18.0
	svc.On("Resolve", mock.Anything, "8471", "").
		Return(&domain.RateResolution{Rate: &rate, Source: "hsn", Matched: "8471"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/gst-rates?hsn=8471", http.NoBody)
	h.Resolve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"hsn"`)
	assert.Contains(t, w.Body.String(), `"rate":18`)
}

func TestRateHandler_Resolve_NoMatch(t *testing.T) {
	svc := new(mocks.MockRateService)
	h := handler.NewRateHandler(svc)
	svc.On("Resolve", mock.Anything, "", "spaceship").Return(&domain.RateResolution{Source: "none", Notes: "No match"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/gst-rates?text=spaceship", http.NoBody)
	h.Resolve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rate":null`)
}
