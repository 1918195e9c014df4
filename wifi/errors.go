package wifi

import (
	"errors"
	"fmt"
)

var (
	ErrServiceUnavailable = errors.New("network service unavailable")
	ErrNoWirelessDevice   = errors.New("no wireless device found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrTimeout            = errors.New("timed out waiting for activation")
	ErrUnknownNetwork     = errors.New("unknown network")
	ErrOperationFailed    = errors.New("operation failed")
)

// ActivationRejectedError is returned when the service gives up on an
// activation for a reason other than bad credentials.
type ActivationRejectedError struct {
	Reason uint32
	Detail string
}

func (e *ActivationRejectedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("activation rejected (reason %d): %s", e.Reason, e.Detail)
	}
	return fmt.Sprintf("activation rejected (reason %d)", e.Reason)
}
