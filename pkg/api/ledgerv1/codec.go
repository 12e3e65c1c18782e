// Package ledgerv1 defines the wire messages of the splitledger.v1 API.
//
// Messages are plain structs carried as JSON by Codec; monetary fields are
// decimal strings ("12.50") so no precision is lost in transit.
package ledgerv1

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec marshals messages as JSON. Its name replaces Connect's built-in "json"
// codec, so both the Connect protocol and plain curl requests with
// Content-Type application/json are served by it.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal rejects unknown fields so typos in requests fail loudly.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
