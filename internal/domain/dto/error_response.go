package dto

import "time"

// ErrorResponse is the JSON body returned for every non-2xx response that is
// not a row-scoped parse failure.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"missing multipart field \"file\""`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-18T12:36:00Z"`
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse stamps msg with the current time; err, when present,
// becomes the details field.
func NewErrorResponse(msg string, err error) ErrorResponse {
	resp := ErrorResponse{Message: msg, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
