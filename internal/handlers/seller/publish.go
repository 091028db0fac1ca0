package seller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"elite_market/internal/handlers"
	"elite_market/internal/models"
	"elite_market/internal/services"
)

type Publisher interface {
	Publish(ctx context.Context, in services.PublishInput) (*models.Product, error)
}

// HandlePublish takes a multipart listing: title, description, price,
// category, country and one or more images[].
func HandlePublish(svc Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sellerID(c)
		if !ok {
			return
		}
		form, err := c.MultipartForm()
		if err != nil {
			handlers.BadRequest(c, err)
			return
		}

		product, err := svc.Publish(c.Request.Context(), services.PublishInput{
			SellerID:    id,
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Price:       c.PostForm("price"),
			Category:    c.PostForm("category"),
			Country:     c.PostForm("country"),
			Images:      form.File["images"],
		})
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}
