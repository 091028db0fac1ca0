package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"elite_market/internal/models"
)

const productColumns = `product_id, title, description, price, category, country, owner_id, image_url, gallery, created_at`

// ProductStore persists listings. Prices are stored as text to keep the exact decimal.
type ProductStore struct {
	session *gocql.Session
}

func NewProductStore(session *gocql.Session) *ProductStore {
	return &ProductStore{session: session}
}

func (s *ProductStore) CreateProduct(ctx context.Context, p *models.Product) error {
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Price.String(), p.Category, p.Country, p.OwnerID, p.ImageURL, p.Gallery, p.CreatedAt)
	batch.Query(`INSERT INTO products_by_country (country, created_at, product_id) VALUES (?, ?, ?)`,
		p.Country, p.CreatedAt, p.ID)
	batch.Query(`INSERT INTO products_by_owner (owner_id, created_at, product_id) VALUES (?, ?, ?)`,
		p.OwnerID, p.CreatedAt, p.ID)
	if err := s.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *ProductStore) GetProduct(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var (
		p     models.Product
		price string
	)
	err := s.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Title, &p.Description, &price, &p.Category, &p.Country, &p.OwnerID, &p.ImageURL, &p.Gallery, &p.CreatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %s price %q: %w", id, price, err)
	}
	return &p, nil
}

func (s *ProductStore) ListByCountry(ctx context.Context, country string) ([]models.Product, error) {
	ids, err := s.scanIDs(ctx, `SELECT product_id FROM products_by_country WHERE country = ?`, country)
	if err != nil {
		return nil, err
	}
	return s.GetProducts(ctx, ids)
}

func (s *ProductStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	ids, err := s.scanIDs(ctx, `SELECT product_id FROM products_by_owner WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	return s.GetProducts(ctx, ids)
}

// GetProducts loads listings by id, keeping the order of ids and skipping unknown ones.
func (s *ProductStore) GetProducts(ctx context.Context, ids []gocql.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	iter := s.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id IN ?`, ids).
		WithContext(ctx).Iter()

	byID := make(map[gocql.UUID]models.Product, len(ids))
	var (
		p     models.Product
		price string
	)
	for iter.Scan(&p.ID, &p.Title, &p.Description, &price, &p.Category, &p.Country, &p.OwnerID, &p.ImageURL, &p.Gallery, &p.CreatedAt) {
		p.Price, _ = decimal.NewFromString(price)
		byID[p.ID] = p
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	products := make([]models.Product, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) scanIDs(ctx context.Context, stmt string, key string) ([]gocql.UUID, error) {
	ids, err := collectUUIDs(s.session.Query(stmt, key).WithContext(ctx).Iter())
	if err != nil {
		return nil, fmt.Errorf("select product ids: %w", err)
	}
	return ids, nil
}
