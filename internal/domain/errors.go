package domain

import (
	"errors"
	"fmt"
)

// Error represents a caller-recoverable validation or conflict failure.
//
// Every core operation returns an *Error rather than panicking; conflicts
// such as TABLE_OCCUPIED are business outcomes, not transient faults, so
// no operation retries internally. Surrounding layers surface Code
// verbatim to the actor.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// ReservationID identifies the affected reservation, if any.
	ReservationID string

	// OrderID identifies the affected order, if any.
	OrderID string

	// TableNumber identifies the affected table, if any.
	TableNumber int
}

// Code categorizes coordinator errors.
type Code string

const (
	// CodeInvalidReservation indicates rejected reservation input.
	CodeInvalidReservation Code = "INVALID_RESERVATION"

	// CodeReservationNotFound indicates an unknown reservation id.
	CodeReservationNotFound Code = "RESERVATION_NOT_FOUND"

	// CodeInvalidTransition indicates a lifecycle move the state machine forbids.
	CodeInvalidTransition Code = "INVALID_TRANSITION"

	// CodeDuplicateTable indicates the table number already exists.
	CodeDuplicateTable Code = "DUPLICATE_TABLE"

	// CodeTableNotFound indicates an unknown table number.
	CodeTableNotFound Code = "TABLE_NOT_FOUND"

	// CodeTableOccupied indicates the table is bound to another reservation.
	CodeTableOccupied Code = "TABLE_OCCUPIED"

	// CodeEmptyOrder indicates an order with no line items.
	CodeEmptyOrder Code = "EMPTY_ORDER"

	// CodeUnknownMenuItem indicates a line item not present in the catalogue.
	CodeUnknownMenuItem Code = "UNKNOWN_MENU_ITEM"

	// CodeOrderNotReady indicates completion attempted before the order was served.
	CodeOrderNotReady Code = "ORDER_NOT_READY"

	// CodeQueueEmpty indicates the kitchen queue has no open tickets.
	CodeQueueEmpty Code = "QUEUE_EMPTY"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.ReservationID != "" && e.TableNumber != 0:
		return fmt.Sprintf("%s: %s (reservation=%s, table=%d)", e.Code, e.Message, e.ReservationID, e.TableNumber)
	case e.ReservationID != "":
		return fmt.Sprintf("%s: %s (reservation=%s)", e.Code, e.Message, e.ReservationID)
	case e.OrderID != "":
		return fmt.Sprintf("%s: %s (order=%s)", e.Code, e.Message, e.OrderID)
	case e.TableNumber != 0:
		return fmt.Sprintf("%s: %s (table=%d)", e.Code, e.Message, e.TableNumber)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the Code from an error, unwrapping as needed.
// Returns "" if the error is not a coordinator *Error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Is reports whether err carries the given code. Uses errors.As to handle
// wrapped errors.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsTableOccupied reports whether the error is a table occupancy conflict.
func IsTableOccupied(err error) bool { return Is(err, CodeTableOccupied) }

// IsInvalidTransition reports whether the error is a forbidden lifecycle move.
func IsInvalidTransition(err error) bool { return Is(err, CodeInvalidTransition) }

// IsQueueEmpty reports whether the error signals an empty kitchen queue.
func IsQueueEmpty(err error) bool { return Is(err, CodeQueueEmpty) }

// NewInvalidReservation creates an INVALID_RESERVATION error.
func NewInvalidReservation(message string) *Error {
	return &Error{Code: CodeInvalidReservation, Message: message}
}

// NewReservationNotFound creates a RESERVATION_NOT_FOUND error.
func NewReservationNotFound(id string) *Error {
	return &Error{Code: CodeReservationNotFound, Message: "no such reservation", ReservationID: id}
}

// NewInvalidTransition creates an INVALID_TRANSITION error.
func NewInvalidTransition(message string) *Error {
	return &Error{Code: CodeInvalidTransition, Message: message}
}

// NewDuplicateTable creates a DUPLICATE_TABLE error.
func NewDuplicateTable(number int) *Error {
	return &Error{Code: CodeDuplicateTable, Message: "table number already exists", TableNumber: number}
}

// NewTableNotFound creates a TABLE_NOT_FOUND error.
func NewTableNotFound(number int) *Error {
	return &Error{Code: CodeTableNotFound, Message: "no such table", TableNumber: number}
}

// NewTableOccupied creates a TABLE_OCCUPIED error.
func NewTableOccupied(number int, occupant string) *Error {
	return &Error{
		Code:          CodeTableOccupied,
		Message:       "table is bound to another reservation",
		TableNumber:   number,
		ReservationID: occupant,
	}
}

// NewEmptyOrder creates an EMPTY_ORDER error.
func NewEmptyOrder(reservationID string) *Error {
	return &Error{Code: CodeEmptyOrder, Message: "order has no line items", ReservationID: reservationID}
}

// NewUnknownMenuItem creates an UNKNOWN_MENU_ITEM error.
func NewUnknownMenuItem(itemID string) *Error {
	return &Error{Code: CodeUnknownMenuItem, Message: fmt.Sprintf("menu item %q not in catalogue", itemID)}
}

// NewOrderNotReady creates an ORDER_NOT_READY error.
func NewOrderNotReady(orderID string) *Error {
	return &Error{Code: CodeOrderNotReady, Message: "order has not been served", OrderID: orderID}
}

// NewQueueEmpty creates a QUEUE_EMPTY error.
func NewQueueEmpty() *Error {
	return &Error{Code: CodeQueueEmpty, Message: "no open tickets"}
}
