// Package toolset defines the closed set of operations the assistant oracle
// may request, validates raw tool calls against it, and dispatches them.
package toolset

import (
	"fmt"
	"time"

	"imovelmatch/models"
	"imovelmatch/services/search"
)

// Tool names exposed to the oracle.
const (
	ToolSearchProperties = "search_properties"
	ToolGetPropertySlots = "get_property_slots"
	ToolBookPropertySlot = "book_property_slot"
	ToolCancelSlot       = "cancel_property_slot"
)

// Request is one of the fixed, schema-validated operations. The oracle's
// freeform generation never reaches a service without passing through Decode.
type Request interface {
	ToolName() string
}

type SearchRequest struct {
	Filters search.Filters
}

func (SearchRequest) ToolName() string { return ToolSearchProperties }

type GetSlotsRequest struct {
	PropertyID string
}

func (GetSlotsRequest) ToolName() string { return ToolGetPropertySlots }

type BookRequest struct {
	PropertyID string
	SlotStart  time.Time
}

func (BookRequest) ToolName() string { return ToolBookPropertySlot }

type CancelRequest struct {
	PropertyID string
	SlotStart  time.Time
}

func (CancelRequest) ToolName() string { return ToolCancelSlot }

// ValidationError reports a tool call that does not fit the closed schema.
// It is retryable: the guidance goes back to the oracle.
type ValidationError struct {
	Tool   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid call to %s: %s", e.Tool, e.Reason)
}

func (e *ValidationError) Guidance() string {
	return fmt.Sprintf("The call to %s was invalid: %s. Correct the arguments and try again.", e.Tool, e.Reason)
}

// Decode validates a raw oracle tool call and produces a typed Request.
func Decode(call models.ToolCall) (Request, error) {
	switch call.Name {
	case ToolSearchProperties:
		return decodeSearch(call)
	case ToolGetPropertySlots:
		id, err := requireString(call, "property_id")
		if err != nil {
			return nil, err
		}
		return GetSlotsRequest{PropertyID: id}, nil
	case ToolBookPropertySlot:
		id, start, err := decodeSlotIdentity(call)
		if err != nil {
			return nil, err
		}
		return BookRequest{PropertyID: id, SlotStart: start}, nil
	case ToolCancelSlot:
		id, start, err := decodeSlotIdentity(call)
		if err != nil {
			return nil, err
		}
		return CancelRequest{PropertyID: id, SlotStart: start}, nil
	default:
		return nil, &ValidationError{Tool: call.Name, Reason: "unknown tool"}
	}
}

func decodeSearch(call models.ToolCall) (Request, error) {
	var f search.Filters
	var err error
	if f.PriceMin, err = optionalFloat(call, "price_min"); err != nil {
		return nil, err
	}
	if f.PriceMax, err = optionalFloat(call, "price_max"); err != nil {
		return nil, err
	}
	if f.SizeMin, err = optionalFloat(call, "size_min"); err != nil {
		return nil, err
	}
	if f.SizeMax, err = optionalFloat(call, "size_max"); err != nil {
		return nil, err
	}
	if f.Bedrooms, err = optionalInt(call, "bedrooms"); err != nil {
		return nil, err
	}
	if f.Bathrooms, err = optionalInt(call, "bathrooms"); err != nil {
		return nil, err
	}
	if f.GarageSpots, err = optionalInt(call, "garage_spots"); err != nil {
		return nil, err
	}
	if f.Street, err = optionalString(call, "street"); err != nil {
		return nil, err
	}
	if f.Neighborhood, err = optionalString(call, "neighborhood"); err != nil {
		return nil, err
	}
	if f.City, err = optionalString(call, "city"); err != nil {
		return nil, err
	}
	return SearchRequest{Filters: f}, nil
}

func decodeSlotIdentity(call models.ToolCall) (string, time.Time, error) {
	id, err := requireString(call, "property_id")
	if err != nil {
		return "", time.Time{}, err
	}
	raw, err := requireString(call, "slot_start")
	if err != nil {
		return "", time.Time{}, err
	}
	start, err := parseSlotStart(raw)
	if err != nil {
		return "", time.Time{}, &ValidationError{Tool: call.Name, Reason: fmt.Sprintf("slot_start %q is not a valid timestamp", raw)}
	}
	return id, start, nil
}

var slotStartLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseSlotStart(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range slotStartLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func requireString(call models.ToolCall, key string) (string, error) {
	v, ok := call.Args[key]
	if !ok || v == nil {
		return "", &ValidationError{Tool: call.Name, Reason: fmt.Sprintf("missing required argument %q", key)}
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", &ValidationError{Tool: call.Name, Reason: fmt.Sprintf("argument %q must be a non-empty string", key)}
	}
	return s, nil
}

func optionalString(call models.ToolCall, key string) (string, error) {
	v, ok := call.Args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Tool: call.Name, Reason: fmt.Sprintf("argument %q must be a string", key)}
	}
	return s, nil
}

func optionalFloat(call models.ToolCall, key string) (*float64, error) {
	v, ok := call.Args[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return &n, nil
	case float32:
		f := float64(n)
		return &f, nil
	case int:
		f := float64(n)
		return &f, nil
	default:
		return nil, &ValidationError{Tool: call.Name, Reason: fmt.Sprintf("argument %q must be a number", key)}
	}
}

func optionalInt(call models.ToolCall, key string) (*int, error) {
	f, err := optionalFloat(call, key)
	if err != nil || f == nil {
		return nil, err
	}
	n := int(*f)
	return &n, nil
}
