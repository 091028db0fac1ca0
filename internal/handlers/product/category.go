package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/models"
)

// HandleCategories answers the grouped taxonomy and the served countries.
func HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.ProductCategories,
		"countries":  models.Countries,
	})
}
