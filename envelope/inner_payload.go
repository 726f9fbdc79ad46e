package envelope

import (
	"encoding/json"

	"github.com/waterscape-project/waterscape/waterscapeerr"
)

// InnerPayload is the structure encrypted inside an envelope's
// ciphertext: the secret content, the Unix-seconds timestamp it was
// built at, and free-form metadata (used by group mode to carry the
// group name).
type InnerPayload struct {
	Content   string            `json:"content"`
	Timestamp int64             `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Serialize renders the inner payload to its canonical JSON encoding.
func (p InnerPayload) Serialize() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, waterscapeerr.Serialization(err.Error())
	}
	return data, nil
}

// ParseInnerPayload reverses Serialize.
func ParseInnerPayload(data []byte) (InnerPayload, error) {
	var p InnerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return InnerPayload{}, waterscapeerr.Serialization("invalid inner payload json: " + err.Error())
	}
	return p, nil
}
