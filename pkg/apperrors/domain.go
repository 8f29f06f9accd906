package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the coordination domain. Precondition
violations (already joined, already claimed, not the assignee) are deliberate
409/403 responses, not 500s: the client is told the current authoritative state
and can simply refresh.
*/

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and friends)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a unique-constraint violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidStatus rejects a disallowed status transition.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrInvalidOperation rejects an operation the caller's role cannot perform.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Coordination domain ---

// ErrAlreadyJoined - the volunteer already holds a membership for the program.
// Benign: the join endpoint is idempotent from the client's point of view.
var ErrAlreadyJoined = New(
	CodeAlreadyExists,
	"program",
	"Already joined this program",
	http.StatusConflict,
)

// ErrProgramEnded - the program is no longer active; joining is closed.
var ErrProgramEnded = New(
	CodeInvalidStatus,
	"program",
	"This program has ended",
	http.StatusConflict,
)

// ErrAlreadyHelped - another helper claimed the emergency first.
var ErrAlreadyHelped = New(
	CodeConflict,
	"emergency",
	"This emergency is already being helped",
	http.StatusConflict,
)

// ErrNotAssignedHelper - only the helper who claimed the emergency may complete it.
var ErrNotAssignedHelper = New(
	CodeForbidden,
	"emergency",
	"Only the assigned helper can complete this emergency",
	http.StatusForbidden,
)

// ErrRequestNotPending - the resource request was already accepted or completed.
var ErrRequestNotPending = New(
	CodeInvalidStatus,
	"resource_request",
	"This request is no longer open",
	http.StatusConflict,
)

// ErrNotRequestProvider - only the accepting provider may complete the request.
var ErrNotRequestProvider = New(
	CodeForbidden,
	"resource_request",
	"Only the accepted provider can complete this request",
	http.StatusForbidden,
)

// ErrNotProgramMember - the action requires membership in the program.
var ErrNotProgramMember = New(
	CodeForbidden,
	"program",
	"You are not a member of this program",
	http.StatusForbidden,
)

// ErrInvalidUserRole - the operation is not available for the caller's role.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)
