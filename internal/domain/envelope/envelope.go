package envelope

import "time"

// Metadata describes where a payload came from and whether it was served
// from cache.
type Metadata struct {
	Provider  string    `json:"provider,omitempty"`
	Cached    bool      `json:"cached"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// ErrorInfo is the consumer-facing error shape. Code is one of the taxonomy
// codes (TEAM_NOT_FOUND, STATS_NOT_FOUND, NETWORK_ERROR, HTTP_<code>, ...).
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform result wrapper crossing the library boundary.
// It is always structurally complete: absence of data is success=false plus
// an ErrorInfo, never a panic or a half-built value.
type Envelope[T any] struct {
	Success  bool       `json:"success"`
	Data     T          `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Metadata Metadata   `json:"metadata"`
}

func OK[T any](data T, meta Metadata) Envelope[T] {
	if meta.FetchedAt.IsZero() {
		meta.FetchedAt = time.Now().UTC()
	}
	return Envelope[T]{Success: true, Data: data, Metadata: meta}
}

func Fail[T any](code, message string, meta Metadata) Envelope[T] {
	if meta.FetchedAt.IsZero() {
		meta.FetchedAt = time.Now().UTC()
	}
	return Envelope[T]{
		Success:  false,
		Error:    &ErrorInfo{Code: code, Message: message},
		Metadata: meta,
	}
}
