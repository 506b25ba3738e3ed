package pubchem

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound means the name resolved to no compound
var ErrNotFound = errors.New("compound not found")

// Kind classifies a FetchError
type Kind int

const (
	// Transport covers connection, timeout and body-read failures
	Transport Kind = iota
	// HTTPStatus is a non-2xx response
	HTTPStatus
	// Shape is a payload that parsed badly or lacks a required field
	Shape
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case HTTPStatus:
		return "http_status"
	case Shape:
		return "shape"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FetchError is the single error type returned by the client and every extractor
type FetchError struct {
	Kind       Kind
	Endpoint   string
	StatusCode int    // HTTPStatus only
	Field      string // Shape only: the missing or malformed field
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Endpoint != "" {
		b.WriteString(" ")
		b.WriteString(e.Endpoint)
	}
	switch e.Kind {
	case HTTPStatus:
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	case Shape:
		if e.Field != "" {
			fmt.Fprintf(&b, ": field %q", e.Field)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt could succeed
func (e *FetchError) Retryable() bool {
	switch e.Kind {
	case Transport:
		return true
	case HTTPStatus:
		return e.StatusCode == 429 || e.StatusCode >= 500
	default:
		return false
	}
}

// IsKind reports whether err wraps a FetchError of kind k
func IsKind(err error, k Kind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == k
}

func shapeError(endpoint, field string, err error) *FetchError {
	return &FetchError{Kind: Shape, Endpoint: endpoint, Field: field, Err: err}
}

// fault is the PUG REST error body
type fault struct {
	Fault struct {
		Code    string   `json:"Code"`
		Message string   `json:"Message"`
		Details []string `json:"Details"`
	} `json:"Fault"`
}

// faultMessage extracts "Code: Message" from a PUG REST error body, or ""
func faultMessage(body []byte) string {
	var f fault
	if err := json.Unmarshal(body, &f); err != nil || f.Fault.Code == "" {
		return ""
	}
	msg := f.Fault.Code
	if f.Fault.Message != "" {
		msg += ": " + f.Fault.Message
	}
	return msg
}
