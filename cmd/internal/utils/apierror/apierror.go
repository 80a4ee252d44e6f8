// Package apierror defines the structured errors the API returns to
// clients. Services produce ErrorResponse values; routes serialize
// them with c.JSON(err.Code(), err). Internal details stay in the
// logs, the client only ever sees the message payload.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	status  int
	Message string `json:"message"`
}

func (e *simpleError) Error() string { return e.Message }
func (e *simpleError) Code() int     { return e.status }

func NewSimple(status int, message string) ErrorResponse {
	return &simpleError{status: status, Message: message}
}

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be a valid %s", name, expected))
}

// Generic failures.
var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Something went wrong on our side")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Request body is malformed")
	NotFoundError         = NewSimple(http.StatusNotFound, "Resource not found")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")
	ForbiddenError        = NewSimple(http.StatusForbidden, "You are not allowed to do that")
)

// Booking failures.
var (
	AppointmentInPastError = NewSimple(http.StatusUnprocessableEntity, "Appointments cannot be booked in the past")
	SlotNotInCatalogError  = NewSimple(http.StatusUnprocessableEntity, "That time is outside the clinic's bookable hours")
	SlotTakenError         = NewSimple(http.StatusConflict, "That slot was just taken, please pick another")
	PatientNotFoundError   = NewSimple(http.StatusNotFound, "No patient is registered with that DNI")
)

// Account failures.
var (
	UserAlreadyExistsError    = NewSimple(http.StatusConflict, "A user with that email already exists")
	DniAlreadyExistsError     = NewSimple(http.StatusConflict, "A user with that DNI already exists")
	UserAlreadyConfirmedError = NewSimple(http.StatusConflict, "This account is already confirmed")
)

// Identity-provider failures, mapped from Cognito error codes.
var (
	IDPInvalidPasswordError     = NewSimple(http.StatusBadRequest, "Password does not meet the requirements")
	IDPExistingEmailError       = NewSimple(http.StatusConflict, "A user with that email already exists")
	IDPUserNotFoundError        = NewSimple(http.StatusNotFound, "No account exists with that email")
	IDPUserNotConfirmedError    = NewSimple(http.StatusForbidden, "Account has not been confirmed yet")
	IDPCredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Email or password is incorrect")
	IDPConfirmCodeMismatchError = NewSimple(http.StatusBadRequest, "Confirmation code does not match")
	IDPConfirmCodeExpiredError  = NewSimple(http.StatusBadRequest, "Confirmation code has expired")
)

// FieldError points at the specific request field that failed and the
// rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type validationError struct {
	status  int
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields"`
}

func (e *validationError) Error() string { return e.Message }
func (e *validationError) Code() int     { return e.status }

// FromValidationError translates validator.v10 failures into a field
// level payload the UI can attach to its form controls.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{Field: fe.Field(), Rule: fe.Tag()}
	}
	return &validationError{
		status:  http.StatusBadRequest,
		Message: "Validation failed",
		Fields:  fields,
	}
}
