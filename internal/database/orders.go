package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

const orderColumns = `order_id, user_id, product_id, type, status, shipping_company, tracking_code, created_at, updated_at`

// OrderStore keeps orders plus two lookup tables (by buyer, by product).
type OrderStore struct {
	session *gocql.Session
}

func NewOrderStore(session *gocql.Session) *OrderStore {
	return &OrderStore{session: session}
}

func (s *OrderStore) CreateOrder(ctx context.Context, o *models.Order) error {
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.ProductID, string(o.Type), string(o.Status), o.ShippingCompany, o.TrackingCode, o.CreatedAt, o.UpdatedAt)
	batch.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id) VALUES (?, ?, ?)`,
		o.UserID, o.CreatedAt, o.ID)
	batch.Query(`INSERT INTO orders_by_product (product_id, created_at, order_id) VALUES (?, ?, ?)`,
		o.ProductID, o.CreatedAt, o.ID)
	if err := s.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	var (
		o           models.Order
		typ, status string
	)
	err := s.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).
		WithContext(ctx).
		Scan(&o.ID, &o.UserID, &o.ProductID, &typ, &status, &o.ShippingCompany, &o.TrackingCode, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	o.Type, o.Status = models.PurchaseType(typ), models.OrderStatus(status)
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, userID).WithContext(ctx).Iter()
	ids, err := collectUUIDs(iter)
	if err != nil {
		return nil, fmt.Errorf("select orders_by_user: %w", err)
	}
	return s.getOrders(ctx, ids)
}

func (s *OrderStore) ListByProducts(ctx context.Context, productIDs []gocql.UUID) ([]models.Order, error) {
	if len(productIDs) == 0 {
		return []models.Order{}, nil
	}
	iter := s.session.Query(`SELECT order_id FROM orders_by_product WHERE product_id IN ?`, productIDs).WithContext(ctx).Iter()
	ids, err := collectUUIDs(iter)
	if err != nil {
		return nil, fmt.Errorf("select orders_by_product: %w", err)
	}
	return s.getOrders(ctx, ids)
}

// MarkShipped is a plain update: the paid check happens in the service, there is no
// conditional write behind it.
func (s *OrderStore) MarkShipped(ctx context.Context, id gocql.UUID, company, code string, at time.Time) error {
	err := s.session.Query(`UPDATE orders SET status = ?, shipping_company = ?, tracking_code = ?, updated_at = ? WHERE order_id = ?`,
		string(models.OrderStatusShipped), company, code, at, id).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// getOrders returns orders newest first.
func (s *OrderStore) getOrders(ctx context.Context, ids []gocql.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	if len(ids) == 0 {
		return orders, nil
	}

	iter := s.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id IN ?`, ids).WithContext(ctx).Iter()
	var (
		o           models.Order
		typ, status string
	)
	for iter.Scan(&o.ID, &o.UserID, &o.ProductID, &typ, &status, &o.ShippingCompany, &o.TrackingCode, &o.CreatedAt, &o.UpdatedAt) {
		o.Type, o.Status = models.PurchaseType(typ), models.OrderStatus(status)
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func collectUUIDs(iter *gocql.Iter) ([]gocql.UUID, error) {
	var (
		ids []gocql.UUID
		id  gocql.UUID
	)
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	return ids, iter.Close()
}
