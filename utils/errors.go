package utils

import (
	"Tankard/services/coordination"
	"Tankard/services/reservation"
	"Tankard/services/slots"
	"Tankard/services/store"
	"errors"
	"net/http"
)

// HTTPStatus maps a core error to the response status class: validation
// and business-rule conflicts are 400, missing entities 404, denied access
// 403, anything unexpected (store trouble included) 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, coordination.ErrGamerNotFound),
		errors.Is(err, coordination.ErrPublicanNotFound),
		errors.Is(err, coordination.ErrEventNotFound),
		errors.Is(err, coordination.ErrGameNotFound),
		errors.Is(err, coordination.ErrNoCoveringEvent),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, reservation.ErrAccessDenied),
		errors.Is(err, coordination.ErrNotHost):
		return http.StatusForbidden

	case errors.Is(err, coordination.ErrMissingFields),
		errors.Is(err, coordination.ErrEmailTaken),
		errors.Is(err, coordination.ErrNoTablesLeft),
		errors.Is(err, slots.ErrInvalidGameType),
		errors.Is(err, slots.ErrInsufficientCapacity),
		errors.Is(err, slots.ErrUnalignedTime),
		errors.Is(err, slots.ErrInvalidTimeRange),
		errors.Is(err, slots.ErrInvalidCapacity),
		errors.Is(err, reservation.ErrGameFull),
		errors.Is(err, reservation.ErrAlreadyJoined),
		errors.Is(err, reservation.ErrNotJoined),
		errors.Is(err, reservation.ErrInvalidSeat),
		errors.Is(err, reservation.ErrSeatTaken),
		errors.Is(err, reservation.ErrTableNotFound),
		errors.Is(err, reservation.ErrTableFull):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
