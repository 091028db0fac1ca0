package product

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/middleware"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

type Storefront interface {
	List(ctx context.Context, country string) *services.Listing
	Product(ctx context.Context, rawID string) (*services.ProductDetail, error)
	Search(ctx context.Context, query, country string) ([]models.Product, error)
}

// CountryResolver picks the storefront country from the query or the buyer profile.
type CountryResolver interface {
	Country(ctx context.Context, explicit string, buyer *services.Buyer) (string, error)
}

// HandleList answers a country's listings. Without a country nothing is
// fetched and the client is asked to pick one first.
func HandleList(svc Storefront, countries CountryResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		country, err := countries.Country(c.Request.Context(), c.Query("country"), middleware.CurrentBuyer(c))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, svc.List(c.Request.Context(), country))
	}
}

func HandleDetail(svc Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func HandleSearch(svc Storefront) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.Search(c.Request.Context(), c.Query("q"), c.Query("country"))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
	}
}
