package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/models"
)

const (
	CodeInvalidRequestBody = "invalid_request_body"
	CodeUnauthorized       = "unauthorized"
	CodeInternalError      = "internal_error"
	LoginURL               = "/auth/login?provider=google"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{models.ErrInvalidPurchaseType, http.StatusBadRequest, "invalid_purchase_type"},
	{models.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{models.ErrInvalidMonth, http.StatusBadRequest, "invalid_month"},
	{models.ErrInvalidCategory, http.StatusBadRequest, "invalid_category"},
	{models.ErrInvalidPrice, http.StatusBadRequest, "invalid_price"},
	{models.ErrMissingField, http.StatusBadRequest, "missing_required_field"},
	{models.ErrMissingImages, http.StatusBadRequest, "missing_images"},
	{models.ErrInvalidCountry, http.StatusBadRequest, "invalid_country"},
	{models.ErrCountryRequired, http.StatusPreconditionRequired, "country_required"},
	{models.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{models.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{models.ErrProfileNotFound, http.StatusNotFound, "profile_not_found"},
	{models.ErrNotProductOwner, http.StatusForbidden, "forbidden"},
	{models.ErrOrderNotShippable, http.StatusConflict, "order_not_shippable"},
	{models.ErrOrderAlreadyShipped, http.StatusConflict, "order_already_shipped"},
	{models.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{models.ErrNoSubscription, http.StatusConflict, "no_subscription"},
	{models.ErrShipmentAlreadyDispatched, http.StatusConflict, "shipment_already_dispatched"},
	{models.ErrImageStoreUnavailable, http.StatusServiceUnavailable, "image_store_unavailable"},
	{models.ErrGatewayNotConfigured, http.StatusInternalServerError, "gateway_not_configured"},
}

// RespondError maps a domain error onto a status and a stable code.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": CodeUnauthorized, "login_url": LoginURL})
		return
	case errors.Is(err, models.ErrGatewayFailure):
		// Provider details stay in the logs.
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable, please try again", "code": "gateway_failure"})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": err.Error(), "code": m.code})
			return
		}
	}

	log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": CodeInternalError})
}

// BadRequest answers a body or query that could not be bound.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error(), "code": CodeInvalidRequestBody})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
