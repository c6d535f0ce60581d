package slots

import (
	"fmt"
	"time"
)

// NotFoundKind distinguishes the two existence failures of the slot manager.
type NotFoundKind string

const (
	KindProperty NotFoundKind = "property"
	KindSlot     NotFoundKind = "slot"
)

// NotFoundError signals a missing property or a missing (property, start)
// pair. Both are retryable: the dialogue layer feeds the guidance back to the
// assistant, which may re-check the identifier with the user.
type NotFoundError struct {
	Kind       NotFoundKind
	PropertyID string
	SlotStart  time.Time
}

func (e *NotFoundError) Error() string {
	if e.Kind == KindProperty {
		return fmt.Sprintf("property %q not found", e.PropertyID)
	}
	return fmt.Sprintf("slot %s for property %q not found", e.SlotStart.Format(time.RFC3339), e.PropertyID)
}

// Guidance is the retry hint consumed by the dialogue layer.
func (e *NotFoundError) Guidance() string {
	if e.Kind == KindProperty {
		return fmt.Sprintf("No property with id %q exists. Ask the user to re-check the property identifier.", e.PropertyID)
	}
	return fmt.Sprintf("Property %q has no slot starting at %s. Ask the user to pick one of the listed available slots.",
		e.PropertyID, e.SlotStart.Format("2006-01-02 15:04"))
}

// StatusConflictError is raised only in strict mode, when Book targets an
// already-booked slot or Cancel targets an already-free one.
type StatusConflictError struct {
	PropertyID string
	SlotStart  time.Time
	Booking    bool
}

func (e *StatusConflictError) Error() string {
	if e.Booking {
		return fmt.Sprintf("slot %s on property %q is already booked", e.SlotStart.Format(time.RFC3339), e.PropertyID)
	}
	return fmt.Sprintf("slot %s on property %q is not booked", e.SlotStart.Format(time.RFC3339), e.PropertyID)
}

func (e *StatusConflictError) Guidance() string {
	if e.Booking {
		return "That slot is already booked. Offer the user another available slot."
	}
	return "That slot is not currently booked, so there is nothing to cancel. Confirm the viewing time with the user."
}
