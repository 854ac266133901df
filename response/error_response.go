package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"boothbuzz-admin/logger"
	"boothbuzz-admin/store"
	"boothbuzz-admin/validate"
)

type ErrorResponse struct {
	StatusCode  int               `json:"-"`
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Status      string            `json:"status"`
	Description string            `json:"description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func (r ErrorResponse) Error() string {
	return fmt.Sprintf("StatusCode: %d, Success: %t, Message: %s, Status: %s, Description: %s", r.StatusCode, r.Success, r.Message, r.Status, r.Description)
}

func (r ErrorResponse) Send(ctx context.Context, w http.ResponseWriter) {
	if r.StatusCode >= http.StatusInternalServerError {
		logger.Errorf(ctx, "%s", r.Error())
	} else {
		logger.Warnf(ctx, "%s", r.Error())
	}
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func BadRequest(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     message,
		Status:      "BAD REQUEST",
		Description: description,
	}
}

func ResourceNotFound(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusNotFound,
		Success:     false,
		Message:     message,
		Status:      "NOT FOUND",
		Description: description,
	}
}

func Unauthorized() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "No valid Auth Token",
		Status:     "UNAUTHORISED",
	}
}

// AccessDenied is rendered in place of a page the role may not open.
func AccessDenied() ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusForbidden,
		Success:     false,
		Message:     "Access Denied",
		Status:      "ACCESS_DENIED",
		Description: "You don't have permission to access this page.",
	}
}

// Forbidden is a sign-in refused for a reason the user can act on.
func Forbidden(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    message,
		Status:     "FORBIDDEN",
	}
}

func SomethingWrong() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    "Sorry, Something went wrong",
		Status:     "SOMETHING_WRONG",
	}
}

func InvalidData(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Invalid data passed",
		Status:      "INVALID_DATA",
		Description: description,
	}
}

// ValidationFailed carries per-field messages. Nothing was sent to the store.
func ValidationFailed(fields validate.Errors) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Success:    false,
		Message:    "Please correct the highlighted fields",
		Status:     "VALIDATION_FAILED",
		Fields:     fields,
	}
}

// StoreRejected shows the store's own message, under the submit pseudo-field
// as well so forms can render it as a banner.
func StoreRejected(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    message,
		Status:     "STORE_REJECTED",
		Fields:     map[string]string{validate.Submit: message},
	}
}

// NoRows is the "No <entity> was deleted" family.
func NoRows(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    message,
		Status:     "NO_ROWS",
	}
}

func MethodNotAllowed(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusMethodNotAllowed,
		Success:    false,
		Message:    message,
		Status:     "METHOD_NOT_ALLOWED",
	}
}

func CanNotLogin() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "Wrong Username or Password",
		Status:     "CANT_LOGIN",
	}
}

func NotFound() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "Requested Resource Not Found",
		Status:     "NOT_FOUND",
	}
}

// FromError picks the response for an error returned by a service.
// Anything unrecognised is logged in full and reduced to SomethingWrong.
func FromError(ctx context.Context, err error) ErrorResponse {
	var er ErrorResponse
	var fields validate.Errors
	var storeErr *store.Error
	var noRows *store.NoRowsError

	switch {
	case errors.As(err, &er):
		return er
	case errors.As(err, &fields):
		return ValidationFailed(fields)
	case errors.As(err, &noRows):
		return NoRows(noRows.Error())
	case errors.As(err, &storeErr):
		return StoreRejected(storeErr.Error())
	case errors.Is(err, store.ErrUnknownColumn), errors.Is(err, store.ErrUnknownRelation), errors.Is(err, store.ErrBadSelect):
		return InvalidData(err.Error())
	}

	logger.Errorf(ctx, "FromError: unexpected error: %+v", err)
	return SomethingWrong()
}
