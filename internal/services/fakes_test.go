package services

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"elite_market/internal/models"
)

type fakeProducts struct {
	mu       sync.Mutex
	products map[gocql.UUID]models.Product
	err      error
}

func newFakeProducts(ps ...models.Product) *fakeProducts {
	f := &fakeProducts{products: make(map[gocql.UUID]models.Product)}
	for _, p := range ps {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) CreateProduct(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetProduct(_ context.Context, id gocql.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProducts) GetProducts(_ context.Context, ids []gocql.UUID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListByCountry(_ context.Context, country string) ([]models.Product, error) {
	return f.filter(func(p models.Product) bool { return p.Country == country })
}

func (f *fakeProducts) ListByOwner(_ context.Context, ownerID string) ([]models.Product, error) {
	return f.filter(func(p models.Product) bool { return p.OwnerID == ownerID })
}

func (f *fakeProducts) filter(keep func(models.Product) bool) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Product{}
	for _, p := range f.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[gocql.UUID]models.Order
	err    error
}

func newFakeOrders(os ...models.Order) *fakeOrders {
	f := &fakeOrders{orders: make(map[gocql.UUID]models.Order)}
	for _, o := range os {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) CreateOrder(_ context.Context, o *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id gocql.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return &o, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	return f.filter(func(o models.Order) bool { return o.UserID == userID })
}

func (f *fakeOrders) ListByProducts(_ context.Context, ids []gocql.UUID) ([]models.Order, error) {
	set := make(map[gocql.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return f.filter(func(o models.Order) bool { return set[o.ProductID] })
}

func (f *fakeOrders) MarkShipped(_ context.Context, id gocql.UUID, company, code string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.Status = models.OrderStatusShipped
	o.ShippingCompany, o.TrackingCode, o.UpdatedAt = company, code, at
	f.orders[id] = o
	return nil
}

func (f *fakeOrders) filter(keep func(models.Order) bool) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Order{}
	for _, o := range f.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeShipments struct {
	mu        sync.Mutex
	shipments []models.Shipment
	err       error
}

func (f *fakeShipments) CreateShipment(_ context.Context, s *models.Shipment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.shipments = append(f.shipments, *s)
	return nil
}

func (f *fakeShipments) ListBySubscriber(_ context.Context, subscriberID string) ([]models.Shipment, error) {
	return f.filter(func(s models.Shipment) bool { return s.SubscriberID == subscriberID })
}

func (f *fakeShipments) ListByProducts(_ context.Context, ids []gocql.UUID) ([]models.Shipment, error) {
	set := make(map[gocql.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return f.filter(func(s models.Shipment) bool { return set[s.ProductID] })
}

func (f *fakeShipments) filter(keep func(models.Shipment) bool) ([]models.Shipment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Shipment{}
	for _, s := range f.shipments {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
}

func newFakeProfiles(ps ...models.Profile) *fakeProfiles {
	f := &fakeProfiles{profiles: make(map[string]models.Profile)}
	for _, p := range ps {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) UpsertByEmail(_ context.Context, email, name string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	p := models.Profile{ID: "user-" + email, Email: email, Name: name}
	f.profiles[p.ID] = p
	return &p, nil
}

func (f *fakeProfiles) SetCountry(_ context.Context, userID, country string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return models.ErrProfileNotFound
	}
	p.Country = &country
	f.profiles[userID] = p
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
	listErr error
}

func (f *fakeAudit) InsertAuditLog(_ context.Context, l *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *l)
	return nil
}

func (f *fakeAudit) ListByUser(_ context.Context, userID string, limit int) ([]models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.AuditLog{}
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

type fakeGateway struct {
	url      string
	err      error
	requests []CheckoutRequest
}

func (g *fakeGateway) CreateSession(req CheckoutRequest) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

type sentMail struct {
	kind string
	to   string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *fakeNotifier) add(kind, to string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{kind: kind, to: to})
}

func (n *fakeNotifier) OrderPaid(to string, _ models.Order, _ models.Product) {
	n.add("paid", to)
}

func (n *fakeNotifier) OrderShipped(to string, _ models.Order, _ models.Product) {
	n.add("shipped", to)
}

func (n *fakeNotifier) ShipmentSent(to string, _ models.Shipment, _ models.Product) {
	n.add("shipment", to)
}

type fakeCache struct {
	mu          sync.Mutex
	lists       map[string][]models.Product
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{lists: make(map[string][]models.Product)}
}

func (c *fakeCache) GetCountry(_ context.Context, country string) ([]models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ps, ok := c.lists[country]
	return ps, ok
}

func (c *fakeCache) SetCountry(_ context.Context, country string, ps []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[country] = ps
	return nil
}

func (c *fakeCache) InvalidateCountry(_ context.Context, country string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, country)
	c.invalidated = append(c.invalidated, country)
	return nil
}

type fakeIndex struct {
	indexed []models.Product
	hits    []models.Product
	err     error
}

func (x *fakeIndex) Index(_ context.Context, p models.Product) error {
	x.indexed = append(x.indexed, p)
	return nil
}

func (x *fakeIndex) Search(_ context.Context, _, _ string) ([]models.Product, error) {
	return x.hits, x.err
}

type fakeUploader struct {
	names []string
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, fh *multipart.FileHeader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.names = append(u.names, fh.Filename)
	return "https://cdn.test/products/" + fh.Filename, nil
}

var errBoom = errors.New("boom")
