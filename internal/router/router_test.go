package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
	"gstrecon/internal/handler"
	"gstrecon/internal/middleware"
	"gstrecon/internal/router"
	"gstrecon/internal/service"
	"gstrecon/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	auth    *mocks.MockAuthService
	returns *mocks.MockReturnService
	rates   *mocks.MockRateService
	engine  *gin.Engine
}

func newFixture(limiter *middleware.IPRateLimiter) *fixture {
	f := &fixture{
		auth:    new(mocks.MockAuthService),
		returns: new(mocks.MockReturnService),
		rates:   new(mocks.MockRateService),
	}
	f.engine = router.Setup(f.auth, router.Handlers{
		Auth:    handler.NewAuthHandler(f.auth),
		Profile: handler.NewProfileHandler(new(mocks.MockProfileService)),
		Invoice: handler.NewInvoiceHandler(new(mocks.MockInvoiceService)),
		Return:  handler.NewReturnHandler(f.returns),
		Rate:    handler.NewRateHandler(f.rates),
		Health:  handler.NewHealthHandler(nil, nil),
	}, router.Options{AllowedOrigins: []string{"http://localhost:3000"}, Limiter: limiter})
	return f
}

func TestRouter_ProtectedRouteNeedsToken(t *testing.T) {
	f := newFixture(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/gstr2b", http.NoBody)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	f := newFixture(nil)
	userID := uuid.New()
	f.auth.On("ValidateToken", "tok").Return(&service.Claims{UserID: userID}, nil)
	f.returns.On("SummarizeITC", mock.Anything, userID).Return(&domain.ITCSummary{Invoices: []domain.ITCRow{}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/gstr2b", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.returns.AssertExpectations(t)
}

func TestRouter_RatesArePublic(t *testing.T) {
	f := newFixture(nil)
	f.rates.On("Resolve", mock.Anything, "9403", "").Return(&domain.RateResolution{Source: "hsn"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/gst-rates?hsn=9403", http.NoBody)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Liveness(t *testing.T) {
	f := newFixture(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RateLimited(t *testing.T) {
	f := newFixture(middleware.NewIPRateLimiter(0.001, 1))
	f.rates.On("Resolve", mock.Anything, "", "").Return(&domain.RateResolution{Source: "none"}, nil)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/gst-rates", http.NoBody)
		req.RemoteAddr = "192.0.2.7:5555"
		f.engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
