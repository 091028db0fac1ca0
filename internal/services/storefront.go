package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"elite_market/internal/clock"
	"elite_market/internal/models"
)

const relatedLimit = 3

type ImageUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type SearchIndex interface {
	Index(ctx context.Context, p models.Product) error
	Search(ctx context.Context, query, country string) ([]models.Product, error)
}

// StorefrontService lists, shows, searches and publishes listings.
type StorefrontService struct {
	products ProductRepository
	cache    ProductCache
	index    SearchIndex
	images   ImageUploader
	audit    auditTrail
	clock    clock.Clock
}

func NewStorefrontService(products ProductRepository, clk clock.Clock) *StorefrontService {
	return &StorefrontService{products: products, audit: auditTrail{clock: clk}, clock: clk}
}

func (s *StorefrontService) WithCache(c ProductCache) *StorefrontService {
	s.cache = c
	return s
}

func (s *StorefrontService) WithSearch(x SearchIndex) *StorefrontService {
	s.index = x
	return s
}

func (s *StorefrontService) WithImages(u ImageUploader) *StorefrontService {
	s.images = u
	return s
}

func (s *StorefrontService) WithAudit(a AuditRepository) *StorefrontService {
	s.audit.repo = a
	return s
}

type Listing struct {
	Country  string           `json:"country"`
	Featured []string         `json:"featured_categories"`
	Products []models.Product `json:"products"`
}

// List returns a country's listings, through the cache when there is one.
// A failed read yields an empty listing.
func (s *StorefrontService) List(ctx context.Context, country string) *Listing {
	l := &Listing{Country: country, Featured: models.FeaturedCategories(country), Products: []models.Product{}}

	if s.cache != nil {
		if cached, ok := s.cache.GetCountry(ctx, country); ok {
			l.Products = cached
			return l
		}
	}

	products, err := s.products.ListByCountry(ctx, country)
	if err != nil {
		log.Printf("⚠️ Listing %s: %v", country, err)
		return l
	}
	l.Products = products

	if s.cache != nil {
		if err := s.cache.SetCountry(ctx, country, products); err != nil {
			log.Printf("⚠️ Could not cache listing %s: %v", country, err)
		}
	}
	return l
}

type ProductDetail struct {
	Product *models.Product  `json:"product"`
	Images  []string         `json:"images"`
	Related []models.Product `json:"related"`
}

// Product loads one listing with its image set and a few others from the same country.
func (s *StorefrontService) Product(ctx context.Context, rawID string) (*ProductDetail, error) {
	id, err := gocql.ParseUUID(rawID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &ProductDetail{Product: p, Images: p.Images(), Related: []models.Product{}}
	others, err := s.products.ListByCountry(ctx, p.Country)
	if err != nil {
		log.Printf("⚠️ Related products for %s: %v", p.ID, err)
		return d, nil
	}
	for _, o := range others {
		if len(d.Related) == relatedLimit {
			break
		}
		if o.ID != p.ID {
			d.Related = append(d.Related, o)
		}
	}
	return d, nil
}

// Search goes to the index; without one it returns nothing.
func (s *StorefrontService) Search(ctx context.Context, query, country string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q", models.ErrMissingField)
	}
	if s.index == nil {
		return []models.Product{}, nil
	}
	products, err := s.index.Search(ctx, query, country)
	if err != nil {
		log.Printf("⚠️ Search %q: %v", query, err)
		return []models.Product{}, nil
	}
	return products, nil
}

type PublishInput struct {
	SellerID    string
	Title       string
	Description string
	Price       string
	Category    string
	Country     string
	Images      []*multipart.FileHeader
}

func (in PublishInput) validate() (decimal.Decimal, error) {
	if strings.TrimSpace(in.Title) == "" {
		return decimal.Zero, fmt.Errorf("%w: title", models.ErrMissingField)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return decimal.Zero, models.ErrInvalidPrice
	}
	// The digital share is the smallest charge a listing can produce.
	if _, err := models.ChargeAmount(models.PurchaseDigital, price); err != nil {
		return decimal.Zero, models.ErrInvalidPrice
	}
	if !models.IsCategory(in.Category) {
		return decimal.Zero, models.ErrInvalidCategory
	}
	if !models.IsCountry(in.Country) {
		return decimal.Zero, models.ErrInvalidCountry
	}
	if len(in.Images) == 0 {
		return decimal.Zero, models.ErrMissingImages
	}
	return price, nil
}

// Publish uploads the gallery, stores the listing, indexes it and drops the
// country's cached listing. The first image becomes the cover.
func (s *StorefrontService) Publish(ctx context.Context, in PublishInput) (*models.Product, error) {
	p, err := s.publish(ctx, in)
	resourceID := in.Title
	if p != nil {
		resourceID = p.ID.String()
	}
	s.audit.record(ctx, in.SellerID, models.ActionProductCreate, models.ResourceProduct, resourceID, in.Price, err)
	return p, err
}

func (s *StorefrontService) publish(ctx context.Context, in PublishInput) (*models.Product, error) {
	price, err := in.validate()
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, models.ErrImageStoreUnavailable
	}

	gallery := make([]string, 0, len(in.Images))
	for _, fh := range in.Images {
		url, err := s.images.Upload(ctx, fh)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
		}
		gallery = append(gallery, url)
	}

	p := &models.Product{
		ID:          gocql.TimeUUID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Category:    in.Category,
		Country:     in.Country,
		OwnerID:     in.SellerID,
		ImageURL:    gallery[0],
		Gallery:     gallery,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.products.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("✅ Product published: %s (%s)", p.Title, p.ID)

	if s.index != nil {
		if err := s.index.Index(ctx, *p); err != nil {
			log.Printf("⚠️ Could not index %s: %v", p.ID, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.InvalidateCountry(ctx, p.Country); err != nil {
			log.Printf("⚠️ Could not invalidate listing %s: %v", p.Country, err)
		}
	}
	return p, nil
}
