package models

import "encoding/json"

// Record is a single row from the tabular service: an opaque identifier plus
// the raw field mapping. Fields stay raw until a table-specific decoder
// gives them a concrete shape.
type Record struct {
	ID     string          `json:"id"`
	Fields json.RawMessage `json:"fields"`
}
