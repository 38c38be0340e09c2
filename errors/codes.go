package errors

// ErrorCode identifies a class of application error
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_INPUT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_PROVIDER_FAILED
	ErrorCode_SINK_FAILED
	ErrorCode_DUPLICATE_DELIVERY
	ErrorCode_SIGNATURE_INVALID
	ErrorCode_RUN_ABORTED
	ErrorCode_HTTP_OK
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:            "UNKNOWN",
	ErrorCode_INTERNAL:           "INTERNAL",
	ErrorCode_INVALID_INPUT:      "INVALID_INPUT",
	ErrorCode_INVALID_PAYLOAD:    "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:          "NOT_FOUND",
	ErrorCode_PROVIDER_FAILED:    "PROVIDER_FAILED",
	ErrorCode_SINK_FAILED:        "SINK_FAILED",
	ErrorCode_DUPLICATE_DELIVERY: "DUPLICATE_DELIVERY",
	ErrorCode_SIGNATURE_INVALID:  "SIGNATURE_INVALID",
	ErrorCode_RUN_ABORTED:        "RUN_ABORTED",
	ErrorCode_HTTP_OK:            "OK",
}

// String returns the name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
