package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BusinessError is a rule violation the caller can act on, as opposed to
// an infrastructure failure. The code is stable and part of the API.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Stable business codes.
const (
	CodeDoctorNotFound      = "doctor_not_found"
	CodePatientNotFound     = "patient_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeBillNotFound        = "bill_not_found"
	CodeSlotConflict        = "slot_conflict"
	CodeInvalidTransition   = "invalid_transition"
	CodeInsufficientPayment = "insufficient_payment"
	CodePaymentFailed       = "payment_failed"
	CodeInvalidInterval     = "invalid_interval"
	CodeInvalidBillType     = "invalid_bill_type"
	CodeInvalidPaymentType  = "invalid_payment_type"
)

var statusByCode = map[string]int{
	CodeDoctorNotFound:      http.StatusNotFound,
	CodePatientNotFound:     http.StatusNotFound,
	CodeAppointmentNotFound: http.StatusNotFound,
	CodeBillNotFound:        http.StatusNotFound,
	CodeSlotConflict:        http.StatusConflict,
	CodeInvalidTransition:   http.StatusConflict,
	CodeInsufficientPayment: http.StatusPaymentRequired,
	CodePaymentFailed:       http.StatusPaymentRequired,
	CodeInvalidInterval:     http.StatusBadRequest,
	CodeInvalidBillType:     http.StatusBadRequest,
	CodeInvalidPaymentType:  http.StatusBadRequest,
}

// Respond maps a use case error onto the wire. Business errors keep their
// code and status; anything else is an opaque internal failure so callers
// can tell a bad request apart from a broken system.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, be.Message)
		return
	}
	Internal(c, "internal_error", "Something went wrong.")
}
