package domain

import (
	"time"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// InboundRun is a bounded session during which goods are received into a
// warehouse. Created active, closed exactly once, never reopened.
type InboundRun struct {
	InboundID    string     `bson:"inboundId" json:"inboundId"`
	WarehouseID  string     `bson:"warehouseId" json:"warehouseId"`
	Status       RunStatus  `bson:"status" json:"status"`
	UserID       string     `bson:"userId" json:"userId"`
	StartTime    time.Time  `bson:"startTime" json:"startTime"`
	EndTime      *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ModifiedTime time.Time  `bson:"modifiedTime" json:"modifiedTime"`
}

// NewInboundRun starts a new inbound run
func NewInboundRun(inboundID, warehouseID, userID string) *InboundRun {
	now := time.Now().UTC()
	return &InboundRun{
		InboundID:    inboundID,
		WarehouseID:  warehouseID,
		Status:       RunStatusActive,
		UserID:       userID,
		StartTime:    now,
		ModifiedTime: now,
	}
}

// IsOpen reports whether the run still accepts inventory actions
func (r *InboundRun) IsOpen() bool {
	return r.Status == RunStatusActive
}

// Close ends the run. Closed is terminal.
func (r *InboundRun) Close() error {
	if !r.Status.CanTransitionTo(RunStatusClosed) {
		return apperrors.ErrActionNotAllowed("inbound run is already closed").
			WithDetail("inboundId", r.InboundID)
	}

	now := time.Now().UTC()
	r.Status = RunStatusClosed
	r.EndTime = &now
	r.ModifiedTime = now
	return nil
}

// OutboundRun is a bounded session during which goods are shipped out of a
// warehouse on behalf of a customer.
type OutboundRun struct {
	OutboundID   string     `bson:"outboundId" json:"outboundId"`
	WarehouseID  string     `bson:"warehouseId" json:"warehouseId"`
	CustomerID   string     `bson:"customerId" json:"customerId"`
	Status       RunStatus  `bson:"status" json:"status"`
	UserID       string     `bson:"userId" json:"userId"`
	StartTime    time.Time  `bson:"startTime" json:"startTime"`
	EndTime      *time.Time `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ModifiedTime time.Time  `bson:"modifiedTime" json:"modifiedTime"`
}

// NewOutboundRun starts a new outbound run
func NewOutboundRun(outboundID, warehouseID, customerID, userID string) *OutboundRun {
	now := time.Now().UTC()
	return &OutboundRun{
		OutboundID:   outboundID,
		WarehouseID:  warehouseID,
		CustomerID:   customerID,
		Status:       RunStatusActive,
		UserID:       userID,
		StartTime:    now,
		ModifiedTime: now,
	}
}

// IsOpen reports whether the run still accepts inventory actions
func (r *OutboundRun) IsOpen() bool {
	return r.Status == RunStatusActive
}

// Close ends the run. Closed is terminal.
func (r *OutboundRun) Close() error {
	if !r.Status.CanTransitionTo(RunStatusClosed) {
		return apperrors.ErrActionNotAllowed("outbound run is already closed").
			WithDetail("outboundId", r.OutboundID)
	}

	now := time.Now().UTC()
	r.Status = RunStatusClosed
	r.EndTime = &now
	r.ModifiedTime = now
	return nil
}
