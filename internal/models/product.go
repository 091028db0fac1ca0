package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          gocql.UUID      `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Country     string          `json:"country"`
	OwnerID     string          `json:"owner_id"`
	ImageURL    string          `json:"image_url"`
	Gallery     []string        `json:"gallery"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Images returns the primary image followed by the gallery, without blanks or repeats.
func (p Product) Images() []string {
	seen := make(map[string]bool, len(p.Gallery)+1)
	images := make([]string, 0, len(p.Gallery)+1)
	for _, img := range append([]string{p.ImageURL}, p.Gallery...) {
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}
	return images
}
