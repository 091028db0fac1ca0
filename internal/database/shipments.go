package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

const shipmentColumns = `shipment_id, subscriber_id, product_id, month, content, shipping_company, tracking_code, created_at`

// ShipmentStore keeps monthly subscription shipments. Nothing here enforces one
// shipment per (subscriber, product, month).
type ShipmentStore struct {
	session *gocql.Session
}

func NewShipmentStore(session *gocql.Session) *ShipmentStore {
	return &ShipmentStore{session: session}
}

func (s *ShipmentStore) CreateShipment(ctx context.Context, sh *models.Shipment) error {
	batch := s.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	batch.Query(`INSERT INTO shipments (`+shipmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sh.ID, sh.SubscriberID, sh.ProductID, sh.Month, sh.Content, sh.ShippingCompany, sh.TrackingCode, sh.CreatedAt)
	batch.Query(`INSERT INTO shipments_by_subscriber (subscriber_id, created_at, shipment_id) VALUES (?, ?, ?)`,
		sh.SubscriberID, sh.CreatedAt, sh.ID)
	batch.Query(`INSERT INTO shipments_by_product (product_id, created_at, shipment_id) VALUES (?, ?, ?)`,
		sh.ProductID, sh.CreatedAt, sh.ID)
	if err := s.session.ExecuteBatch(batch); err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (s *ShipmentStore) ListBySubscriber(ctx context.Context, subscriberID string) ([]models.Shipment, error) {
	iter := s.session.Query(`SELECT shipment_id FROM shipments_by_subscriber WHERE subscriber_id = ?`, subscriberID).WithContext(ctx).Iter()
	ids, err := collectUUIDs(iter)
	if err != nil {
		return nil, fmt.Errorf("select shipments_by_subscriber: %w", err)
	}
	return s.getShipments(ctx, ids)
}

func (s *ShipmentStore) ListByProducts(ctx context.Context, productIDs []gocql.UUID) ([]models.Shipment, error) {
	if len(productIDs) == 0 {
		return []models.Shipment{}, nil
	}
	iter := s.session.Query(`SELECT shipment_id FROM shipments_by_product WHERE product_id IN ?`, productIDs).WithContext(ctx).Iter()
	ids, err := collectUUIDs(iter)
	if err != nil {
		return nil, fmt.Errorf("select shipments_by_product: %w", err)
	}
	return s.getShipments(ctx, ids)
}

func (s *ShipmentStore) getShipments(ctx context.Context, ids []gocql.UUID) ([]models.Shipment, error) {
	shipments := []models.Shipment{}
	if len(ids) == 0 {
		return shipments, nil
	}

	iter := s.session.Query(`SELECT `+shipmentColumns+` FROM shipments WHERE shipment_id IN ?`, ids).WithContext(ctx).Iter()
	var sh models.Shipment
	for iter.Scan(&sh.ID, &sh.SubscriberID, &sh.ProductID, &sh.Month, &sh.Content, &sh.ShippingCompany, &sh.TrackingCode, &sh.CreatedAt) {
		shipments = append(shipments, sh)
		sh = models.Shipment{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("select shipments: %w", err)
	}

	sort.SliceStable(shipments, func(i, j int) bool { return shipments[i].CreatedAt.After(shipments[j].CreatedAt) })
	return shipments, nil
}
