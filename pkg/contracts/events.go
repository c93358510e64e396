package contracts

import "time"

type Event struct {
	EventID   string         `json:"event_id"`
	ReceiptID string         `json:"receipt_id,omitempty"`
	Customer  string         `json:"customer"`
	CreatedAt time.Time      `json:"created_at"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
}

const (
	EventCheckoutCompleted = "checkout.completed"
	EventCheckoutRejected  = "checkout.rejected"
	EventShipmentCreated   = "shipment.created"
)
