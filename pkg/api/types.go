package api

import (
	"github.com/segmentio/ksuid"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/library"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DecodeResponse carries one decoded record
type DecodeResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Class    string         `json:"class,omitempty"`
	Snapshot codec.Snapshot `json:"snapshot"`
}

// DecodeFailure describes why a record could not be decoded
type DecodeFailure struct {
	Outcome codec.Outcome `json:"outcome"`
	Offset  *int          `json:"offset,omitempty"`
	Field   string        `json:"field,omitempty"`
	ClassID string        `json:"class_id,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port           int
	Bind           string
	APIKey         string
	MaxDepth       int
	DefaultVersion int
	// Strict rejects records with bytes after the root object.
	Strict bool
	// MaxBodyBytes bounds uploaded record sizes. Zero selects DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is the upload limit when none is configured.
const DefaultMaxBodyBytes = 16 << 20

// RecordLibrary is the record store the server exposes.
type RecordLibrary interface {
	Put(name string, data []byte) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) (*library.Entry, error)
	Delete(id ksuid.KSUID) error
	List() ([]library.EntryInfo, error)
	DecodeAll() (*library.Report, error)
}
