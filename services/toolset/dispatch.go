package toolset

import (
	"context"
	"fmt"

	"imovelmatch/render"
	"imovelmatch/services/search"
	"imovelmatch/services/slots"
)

// ResultKind tags which output channel a tool result belongs to.
type ResultKind string

const (
	KindProperties   ResultKind = "properties"
	KindSlots        ResultKind = "slots"
	KindConfirmation ResultKind = "confirmation"
)

// Result carries the rendered outcome of one dispatched request. Table is set
// for properties/slots results; Message for confirmations.
type Result struct {
	Kind    ResultKind
	Table   string
	Message string
}

// Dispatcher routes typed requests to the search and slot services.
type Dispatcher struct {
	Search search.Service
	Slots  slots.Service
}

func NewDispatcher(searchSvc search.Service, slotSvc slots.Service) *Dispatcher {
	return &Dispatcher{Search: searchSvc, Slots: slotSvc}
}

// Execute runs one validated request. Retryable failures (not-found, empty
// search, status conflicts) come back as guidance-carrying errors.
func (d *Dispatcher) Execute(ctx context.Context, req Request) (*Result, error) {
	switch r := req.(type) {
	case SearchRequest:
		props, err := d.Search.Search(ctx, r.Filters)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindProperties, Table: render.Properties(props)}, nil

	case GetSlotsRequest:
		free, err := d.Slots.FreeSlots(ctx, r.PropertyID)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindSlots, Table: render.Slots(free)}, nil

	case BookRequest:
		msg, err := d.Slots.Book(ctx, r.PropertyID, r.SlotStart)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindConfirmation, Message: msg}, nil

	case CancelRequest:
		msg, err := d.Slots.Cancel(ctx, r.PropertyID, r.SlotStart)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindConfirmation, Message: msg}, nil

	default:
		return nil, fmt.Errorf("unhandled request type %T", req)
	}
}
