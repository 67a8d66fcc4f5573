package flowerr

// Kind is a machine-readable failure category.
type Kind string

const (
	InvalidToken          Kind = "INVALID_TOKEN"
	InvalidResult         Kind = "INVALID_RESULT"
	InvalidResultRedirect Kind = "INVALID_RESULT_REDIRECT"
	InvalidResultCode     Kind = "INVALID_RESULT_CODE"
	InvalidParameter      Kind = "INVALID_PARAMETER"
	MissingParameter      Kind = "MISSING_PARAMETER"
	UnknownClient         Kind = "UNKNOWN_CLIENT"
	Unknown               Kind = "UNKNOWN"
)

var defaultMessages = map[Kind]string{
	InvalidToken:          "invalid token",
	InvalidResult:         "invalid OAuth result",
	InvalidResultRedirect: "invalid OAuth result redirect",
	InvalidResultCode:     "invalid OAuth result code",
	InvalidParameter:      "invalid parameter",
	MissingParameter:      "missing parameter",
	UnknownClient:         "unknown client",
	Unknown:               "unexpected error",
}

// String returns the string form of the kind.
func (k Kind) String() string { return string(k) }

// Error lets a bare Kind act as an errors.Is target.
func (k Kind) Error() string { return defaultMessages[k] }
