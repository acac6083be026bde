package httperr

import "errors"

// BusinessError carries a stable machine-readable code across the
// usecase -> handler boundary. Handlers translate codes into HTTP status.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Codes shared by more than one usecase.
const (
	CodeTimeConflict        = "time_conflict"
	CodeInvalidState        = "invalid_state"
	CodeAppointmentNotFound = "appointment_not_found"
)
