// Package api defines the shared JSON response envelopes used by all handlers.
package api

// StatusResponse is the status/message envelope returned on error paths and
// for operations whose success payload is a plain confirmation.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error builds an error envelope with the given message.
func Error(message string) StatusResponse {
	return StatusResponse{Status: "error", Message: message}
}

// Success builds a confirmation envelope with the given message.
func Success(message string) StatusResponse {
	return StatusResponse{Status: "successful", Message: message}
}

// MsgSomethingWentWrong is the generic message for unexpected failures.
const MsgSomethingWentWrong = "something went wrong"
