package validation

import (
	"context"

	apperrors "github.com/wms-platform/capacity-service/internal/pkg/errors"
)

// Pipeline maps each action kind to an ordered validator sequence and runs
// the sequence fail-fast, left to right. The first failing validator aborts
// the whole pipeline; no partial bundle is ever returned and errors
// propagate verbatim. The mapping is fixed at construction so ordering is
// explicit and auditable.
type Pipeline struct {
	sequences map[ActionKind][]Validator
}

// NewPipeline builds the action-kind to validator-sequence table. Existence
// checks are deliberately sequenced before the business-rule checks that
// depend on the resolved entity.
func NewPipeline(v *Validators) *Pipeline {
	return &Pipeline{
		sequences: map[ActionKind][]Validator{
			ActionStartInbound:  {v.WarehouseExists, v.CompanyExists},
			ActionEndInbound:    {v.InboundRunOpen},
			ActionStartOutbound: {v.WarehouseExists, v.CompanyExists, v.CustomerExists},

			// Ending an outbound run only requires the run itself to exist
			// and be open; the start-time warehouse/customer checks do not
			// apply to an already-started run.
			ActionEndOutbound: {v.OutboundRunOpen},

			ActionInventoryInbound:  {v.WarehouseExists, v.SKUExists, v.InboundRunOpen, v.ContainerHasRoomForInbound},
			ActionInventoryOutbound: {v.WarehouseExists, v.SKUExists, v.OutboundRunOpen, v.ContainerHasStockForOutbound},

			ActionSKUBarcodeGeneration: {v.CompanyExists, v.SKUExists},

			ActionMoveInventory: {v.WarehouseExists, v.SKUExists, v.SourceContainerHasStock, v.DestinationContainerHasRoom},
		},
	}
}

// Execute runs the validator sequence for the request's action kind and
// returns the fully populated bundle, or the first validator failure.
func (p *Pipeline) Execute(ctx context.Context, req *ActionRequest) (*ValidatedEntityBundle, error) {
	if req == nil {
		return nil, apperrors.ErrValidation("validation request must not be nil")
	}

	sequence, ok := p.sequences[req.Kind]
	if !ok {
		return nil, apperrors.ErrValidation("unrecognized action kind").
			WithDetail("kind", string(req.Kind))
	}

	bundle := &ValidatedEntityBundle{}
	for _, validate := range sequence {
		if err := validate(ctx, req, bundle); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}
