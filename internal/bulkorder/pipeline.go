package bulkorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/boostlane/panel/internal/domain/model"
)

// ErrUnknownUserCurrency aborts a pass before any per-line work: a total
// computed without a priceable user currency would be meaningless.
var ErrUnknownUserCurrency = errors.New("user currency is not present in rate table")

// Input is everything one validation pass depends on. The pipeline is a pure
// function of this value plus the injected collaborators.
type Input struct {
	Text         string
	UserCurrency string
	Rates        model.RateTable
}

// Pipeline runs tokenize, normalize, resolve, validate and aggregate for one
// pass over the full input text. A bad line never fails the batch; it lands
// in InvalidOrders. Only collaborator failures and an unpriceable user
// currency surface as errors.
type Pipeline struct {
	resolver  ServiceResolver
	converter CurrencyConverter
}

// NewPipeline constructs the engine around injected collaborators.
func NewPipeline(resolver ServiceResolver, converter CurrencyConverter) *Pipeline {
	return &Pipeline{resolver: resolver, converter: converter}
}

// Run executes one complete validation pass.
func (p *Pipeline) Run(ctx context.Context, in Input) (*ValidationResult, error) {
	if !in.Rates.Supports(in.UserCurrency) {
		return nil, ErrUnknownUserCurrency
	}

	candidates, invalid := Tokenize(in.Text)

	records := make([]normalizedRecord, 0, len(candidates))
	for _, candidate := range candidates {
		record, bad := normalize(candidate)
		if bad != nil {
			invalid = append(invalid, *bad)
			continue
		}
		records = append(records, *record)
	}

	services, err := p.resolveServices(ctx, records)
	if err != nil {
		return nil, err
	}

	v := validator{converter: p.converter}
	var valid []ParsedOrder
	for _, record := range records {
		order, bad := v.validate(record, services, in.UserCurrency, in.Rates)
		if bad != nil {
			invalid = append(invalid, *bad)
			continue
		}
		valid = append(valid, *order)
	}

	return aggregate(valid, invalid, in.UserCurrency), nil
}

func (p *Pipeline) resolveServices(ctx context.Context, records []normalizedRecord) (map[int64]model.ServiceDescriptor, error) {
	if len(records) == 0 {
		return nil, nil
	}

	seen := make(map[int64]struct{}, len(records))
	ids := make([]int64, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.serviceID]; ok {
			continue
		}
		seen[record.serviceID] = struct{}{}
		ids = append(ids, record.serviceID)
	}

	services, err := p.resolver.ResolveMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve services: %w", err)
	}
	return services, nil
}
