package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_010"
	ErrCodeMessageQueueError  ErrorCode = "COMMON_011"
	ErrCodeUnknown            ErrorCode = "COMMON_012"

	CodeOK = ErrorCode("OK")
)

// Listing module error codes.
const (
	ErrCodeListingNotFound ErrorCode = "LST_001"
	ErrCodeInvalidContext  ErrorCode = "LST_002"
)

// Profile module error codes.
const (
	ErrCodeProfileNotFound   ErrorCode = "PRF_001"
	ErrCodeComputationFailed ErrorCode = "PRF_002"
	ErrCodeProfileStore      ErrorCode = "PRF_003"
	ErrCodeAggregationFailed ErrorCode = "PRF_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeMessageQueueError:  http.StatusInternalServerError,
	ErrCodeUnknown:            http.StatusInternalServerError,

	ErrCodeListingNotFound: http.StatusNotFound,
	ErrCodeInvalidContext:  http.StatusBadRequest,

	ErrCodeProfileNotFound:   http.StatusNotFound,
	ErrCodeComputationFailed: http.StatusInternalServerError,
	ErrCodeProfileStore:      http.StatusInternalServerError,
	ErrCodeAggregationFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeMessageQueueError:  "message queue error",
	ErrCodeUnknown:            "unknown error",

	ErrCodeListingNotFound: "listing not found",
	ErrCodeInvalidContext:  "invalid listing context",

	ErrCodeProfileNotFound:   "intelligence profile not found",
	ErrCodeComputationFailed: "profile computation failed",
	ErrCodeProfileStore:      "profile store failure",
	ErrCodeAggregationFailed: "aggregation failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
