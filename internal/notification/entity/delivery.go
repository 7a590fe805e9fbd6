package entity

import "time"

// Delivery tracks one message sent to one destination.
type Delivery struct {
	ID          int64
	UserID      int64
	Channel     Channel
	Destination string
	Kind        Kind
	Status      DeliveryStatus
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeliveryResult is the outcome written back after sending.
type DeliveryResult struct {
	ID        int64
	Status    DeliveryStatus
	Attempts  int
	LastError string
	UpdatedAt time.Time
}
