package application

import (
	"context"
	"errors"
	"time"

	"github.com/wms-platform/capacity-service/internal/domain"
	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
	"github.com/wms-platform/capacity-service/internal/validation"
)

// maxIDAllocationAttempts bounds the create-if-absent retry loop for
// sequential ID allocation. Each attempt re-reads the latest ID, so losing
// the race more often than this means the warehouse is under write
// contention the caller should back off from.
const maxIDAllocationAttempts = 3

// RunService handles the lifecycle of inbound and outbound runs
type RunService struct {
	pipeline  *validation.Pipeline
	inbounds  domain.InboundStore
	outbounds domain.OutboundStore
	publisher domain.EventPublisher
	logger    *logging.Logger
}

// NewRunService creates a new RunService
func NewRunService(pipeline *validation.Pipeline, inbounds domain.InboundStore, outbounds domain.OutboundStore, publisher domain.EventPublisher, logger *logging.Logger) *RunService {
	return &RunService{
		pipeline:  pipeline,
		inbounds:  inbounds,
		outbounds: outbounds,
		publisher: publisher,
		logger:    logger,
	}
}

// StartInbound validates the request and opens a new inbound run under a
// freshly allocated sequential ID
func (s *RunService) StartInbound(ctx context.Context, cmd StartInboundCommand) (*domain.InboundRun, error) {
	req := &validation.ActionRequest{
		Kind:        validation.ActionStartInbound,
		WarehouseID: cmd.WarehouseID,
		CompanyID:   cmd.CompanyID,
	}
	if _, err := s.pipeline.Execute(ctx, req); err != nil {
		return nil, err
	}

	var run *domain.InboundRun
	err := allocateSequentialID(maxIDAllocationAttempts, func() error {
		last, err := s.inbounds.GetLastForWarehouse(ctx, cmd.WarehouseID)
		if err != nil {
			return err
		}

		lastID := ""
		if last != nil {
			lastID = last.InboundID
		}

		inboundID, err := domain.NextSequentialID(lastID, domain.InboundIDPrefix)
		if err != nil {
			return err
		}

		run = domain.NewInboundRun(inboundID, cmd.WarehouseID, cmd.UserID)
		return s.inbounds.Create(ctx, run)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.InboundStartedEvent{
		InboundID:   run.InboundID,
		WarehouseID: run.WarehouseID,
		UserID:      run.UserID,
		OccurredAt_: time.Now().UTC(),
	})

	s.logger.Info("Inbound run started",
		"inboundId", run.InboundID,
		"warehouseId", run.WarehouseID,
		"userId", run.UserID,
	)

	return run, nil
}

// EndInbound closes an open inbound run
func (s *RunService) EndInbound(ctx context.Context, cmd EndInboundCommand) (*domain.InboundRun, error) {
	req := &validation.ActionRequest{
		Kind:        validation.ActionEndInbound,
		WarehouseID: cmd.WarehouseID,
		InboundID:   cmd.InboundID,
	}

	bundle, err := s.pipeline.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	run := bundle.InboundRun
	if err := run.Close(); err != nil {
		return nil, err
	}

	if err := s.inbounds.Update(ctx, run); err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.InboundClosedEvent{
		InboundID:   run.InboundID,
		WarehouseID: run.WarehouseID,
		OccurredAt_: time.Now().UTC(),
	})

	s.logger.Info("Inbound run closed",
		"inboundId", run.InboundID,
		"warehouseId", run.WarehouseID,
	)

	return run, nil
}

// StartOutbound validates the request and opens a new outbound run under a
// freshly allocated sequential ID
func (s *RunService) StartOutbound(ctx context.Context, cmd StartOutboundCommand) (*domain.OutboundRun, error) {
	req := &validation.ActionRequest{
		Kind:        validation.ActionStartOutbound,
		WarehouseID: cmd.WarehouseID,
		CompanyID:   cmd.CompanyID,
		CustomerID:  cmd.CustomerID,
	}
	if _, err := s.pipeline.Execute(ctx, req); err != nil {
		return nil, err
	}

	var run *domain.OutboundRun
	err := allocateSequentialID(maxIDAllocationAttempts, func() error {
		last, err := s.outbounds.GetLastForWarehouse(ctx, cmd.WarehouseID)
		if err != nil {
			return err
		}

		lastID := ""
		if last != nil {
			lastID = last.OutboundID
		}

		outboundID, err := domain.NextSequentialID(lastID, domain.OutboundIDPrefix)
		if err != nil {
			return err
		}

		run = domain.NewOutboundRun(outboundID, cmd.WarehouseID, cmd.CustomerID, cmd.UserID)
		return s.outbounds.Create(ctx, run)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.OutboundStartedEvent{
		OutboundID:  run.OutboundID,
		WarehouseID: run.WarehouseID,
		CustomerID:  run.CustomerID,
		UserID:      run.UserID,
		OccurredAt_: time.Now().UTC(),
	})

	s.logger.Info("Outbound run started",
		"outboundId", run.OutboundID,
		"warehouseId", run.WarehouseID,
		"customerId", run.CustomerID,
	)

	return run, nil
}

// EndOutbound closes an open outbound run
func (s *RunService) EndOutbound(ctx context.Context, cmd EndOutboundCommand) (*domain.OutboundRun, error) {
	req := &validation.ActionRequest{
		Kind:        validation.ActionEndOutbound,
		WarehouseID: cmd.WarehouseID,
		OutboundID:  cmd.OutboundID,
	}

	bundle, err := s.pipeline.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	run := bundle.OutboundRun
	if err := run.Close(); err != nil {
		return nil, err
	}

	if err := s.outbounds.Update(ctx, run); err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.OutboundClosedEvent{
		OutboundID:  run.OutboundID,
		WarehouseID: run.WarehouseID,
		OccurredAt_: time.Now().UTC(),
	})

	s.logger.Info("Outbound run closed",
		"outboundId", run.OutboundID,
		"warehouseId", run.WarehouseID,
	)

	return run, nil
}

// GetInbound retrieves an inbound run
func (s *RunService) GetInbound(ctx context.Context, warehouseID, inboundID string) (*domain.InboundRun, error) {
	if warehouseID == "" || inboundID == "" {
		return nil, apperrors.ErrValidation("warehouse ID and inbound ID must not be blank")
	}

	run, err := s.inbounds.Get(ctx, warehouseID, inboundID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperrors.ErrNotFoundWithID("inbound run", inboundID)
	}
	return run, nil
}

// GetOutbound retrieves an outbound run
func (s *RunService) GetOutbound(ctx context.Context, warehouseID, outboundID string) (*domain.OutboundRun, error) {
	if warehouseID == "" || outboundID == "" {
		return nil, apperrors.ErrValidation("warehouse ID and outbound ID must not be blank")
	}

	run, err := s.outbounds.Get(ctx, warehouseID, outboundID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperrors.ErrNotFoundWithID("outbound run", outboundID)
	}
	return run, nil
}

func (s *RunService) publish(ctx context.Context, event domain.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish domain event", "eventType", event.EventType())
	}
}

// allocateSequentialID runs the read-generate-create sequence until the
// conditional create succeeds or attempts are exhausted. Each retry starts
// from a fresh read of the latest ID, so two racing callers can never both
// commit the same candidate.
func allocateSequentialID(attempts int, tryOnce func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = tryOnce()
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateID) {
			return err
		}
	}

	return apperrors.ErrConflict("could not allocate a sequential identifier; retry the request").Wrap(err)
}
