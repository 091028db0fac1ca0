package user

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/services"
	"elite_market/internal/utils"
)

const jwtSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProfiles struct {
	country string
}

func (s *stubProfiles) View(_ context.Context, userID string) (*services.ProfileView, error) {
	tracking := &models.Tracking{ShippingCompany: "Correo Argentino", TrackingCode: "AR123456789"}
	return &services.ProfileView{
		Profile: &models.Profile{ID: userID},
		Orders: []services.ProfileOrder{{
			OrderWithProduct: models.OrderWithProduct{Order: models.Order{UserID: userID, Status: models.OrderStatusShipped}},
			Display:          services.DisplayTracking,
			Tracking:         tracking,
		}},
		Shipments: []services.ProfileShipment{},
	}, nil
}

func (s *stubProfiles) SetCountry(_ context.Context, userID, country string) (*models.Profile, error) {
	if !models.IsCountry(country) {
		return nil, models.ErrInvalidCountry
	}
	s.country = country
	return &models.Profile{ID: userID, Country: &country}, nil
}

func router(svc Profiles) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/profile", middleware.AuthRequired(jwtSecret))
	g.GET("", HandleProfile(svc))
	g.PUT("/country", HandleSetCountry(svc))
	return r
}

func request(t *testing.T, method, path, body string, authed bool) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		tok, err := utils.GenerateJWT(jwtSecret, models.Profile{ID: "buyer-1", Email: "ana@example.com"}, time.Now())
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookie, Value: tok})
	}
	return req
}

func TestProfile(t *testing.T) {
	r := router(&stubProfiles{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodGet, "/api/profile", "", true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display":"tracking"`)
	assert.Contains(t, rec.Body.String(), `"tracking_code":"AR123456789"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodGet, "/api/profile", "", false))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSetCountry(t *testing.T) {
	svc := &stubProfiles{}
	r := router(svc)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodPut, "/api/profile/country", `{"country":"Mexico"}`, true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mexico", svc.country)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodPut, "/api/profile/country", `{"country":"Atlantis"}`, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_country")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, request(t, http.MethodPut, "/api/profile/country", `{}`, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
