package n8n

import (
	"encoding/json"
	"maps"
	"reflect"
	"slices"
)

// Workflow is the summary the API returns from list, create and update.
type Workflow struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Active    bool   `json:"active" yaml:"active"`
	UpdatedAt string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Document is a complete workflow as the server represents it. Values are
// kept raw so unknown fields round-trip byte-for-byte.
type Document map[string]json.RawMessage

// String returns the string value stored under key. The second result is
// false when the key is missing or does not hold a JSON string.
func (d Document) String(key string) (string, bool) {
	raw, ok := d[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Keys returns the document's top-level keys in sorted order.
func (d Document) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// MarshalIndent renders the document the way it is stored on disk.
func (d Document) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ParseDocument decodes data, which must hold a JSON object.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		// "null" decodes without error.
		return nil, &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf(doc)}
	}
	return doc, nil
}

type workflowList struct {
	Data       []Workflow `json:"data"`
	NextCursor *string    `json:"nextCursor"`
}

type createRequest struct {
	Name        string         `json:"name"`
	Nodes       []any          `json:"nodes"`
	Connections map[string]any `json:"connections"`
	Settings    map[string]any `json:"settings"`
}

type apiErrorBody struct {
	Message string `json:"message"`
}
