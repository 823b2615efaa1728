package hoststore

import "encoding/json"

// ReadRequest asks for a record. The record is implied by the service name.
type ReadRequest struct{}

// ReadResponse carries the stored document. Data is an empty object and
// Found is false when nothing is stored.
type ReadResponse struct {
	Data  json.RawMessage `json:"data"`
	Found bool            `json:"found"`
	Error string          `json:"error,omitempty"`
}

// WriteRequest replaces a record with Data.
type WriteRequest struct {
	Data json.RawMessage `json:"data"`
}

// WriteResponse reports the outcome of a write.
type WriteResponse struct {
	Success bool   `json:"success"`
	WriteID string `json:"write_id,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Digest  string `json:"digest,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DeleteRequest removes a record.
type DeleteRequest struct{}

// DeleteResponse reports the outcome of a delete.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
