package models

import (
	"time"

	"github.com/gocql/gocql"
)

// AuditLog traces one seller action (publish, dispatch).
type AuditLog struct {
	ID         gocql.UUID `json:"id"`
	UserID     string     `json:"user_id"`
	Action     string     `json:"action"`
	Resource   string     `json:"resource"`
	ResourceID string     `json:"resource_id,omitempty"`
	NewValue   string     `json:"new_value,omitempty"`
	IPAddress  string     `json:"ip_address"`
	UserAgent  string     `json:"user_agent"`
	Success    bool       `json:"success"`
	ErrorMsg   string     `json:"error_msg,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

const (
	ActionProductCreate    = "product.create"
	ActionOrderCreate      = "order.create"
	ActionOrderDispatch    = "order.dispatch"
	ActionShipmentDispatch = "shipment.dispatch"

	ResourceProduct  = "product"
	ResourceOrder    = "order"
	ResourceShipment = "shipment"
)
