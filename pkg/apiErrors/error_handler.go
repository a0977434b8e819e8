package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Authentication (AUTH)
	ErrInvalidCredentials = "AUTH_001"
	ErrInvalidToken       = "AUTH_006"
	ErrExpiredToken       = "AUTH_007"
	ErrMissingCredentials = "AUTH_011"

	// Validation (VAL)
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"
	ErrInvalidPeriod       = "VAL_004"
	ErrNotFound            = "VAL_005"

	// Archive (DATA)
	ErrPeriodNotFound  = "DATA_001"
	ErrPeriodExists    = "DATA_002"
	ErrMissingInput    = "DATA_003"
	ErrInvalidInput    = "DATA_004"
	ErrUnknownDocument = "DATA_005"

	// Server (SRV)
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrGenerationBusy    = "SRV_005"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrMissingCredentials:  http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidPeriod:       http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrPeriodNotFound:      http.StatusNotFound,
	ErrPeriodExists:        http.StatusConflict,
	ErrMissingInput:        http.StatusUnprocessableEntity,
	ErrInvalidInput:        http.StatusUnprocessableEntity,
	ErrUnknownDocument:     http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrGenerationBusy:      http.StatusConflict,
}

// APIError is the JSON body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (e APIError) Error() string {
	return e.Code + ": " + e.Message
}

// StatusFor returns the HTTP status for code, 500 when unmapped.
func StatusFor(code string) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps err under code.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
