package delivery

import "errors"

var (
	ErrOrderNotFound      = errors.New("order is not in the delivery list")
	ErrInvalidCarrier     = errors.New("carrier must be Uber or PickMe")
	ErrAlreadyAssigned    = errors.New("order already has a carrier")
	ErrAssignmentInFlight = errors.New("assignment already in progress for this order")
	ErrNotReady           = errors.New("order is not confirmed yet")
	ErrNoPrompt           = errors.New("no assignment waiting for confirmation")
)
