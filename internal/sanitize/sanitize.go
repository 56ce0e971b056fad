// Package sanitize reduces workflow documents to the fields the n8n update
// endpoint accepts. The server rejects read-only fields such as id,
// createdAt or versionId, so every upload goes through ForUpdate.
package sanitize

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/PolarWolf314/flowsync/internal/n8n"
)

// UpdateFields lists the keys PUT /workflows/{id} accepts.
var UpdateFields = []string{
	"name",
	"nodes",
	"connections",
	"settings",
	"staticData",
	"tags",
	"active",
}

// ForUpdate returns a new document holding only the allowed keys present
// in doc. Values are copied byte-for-byte. The result is never nil.
func ForUpdate(doc n8n.Document) n8n.Document {
	out := make(n8n.Document, len(UpdateFields))
	for _, key := range UpdateFields {
		if v, ok := doc[key]; ok {
			out[key] = bytes.Clone(v)
		}
	}
	return out
}

// FromJSON parses data and sanitizes it. Input that is not a JSON object
// produces an empty document.
func FromJSON(data []byte) n8n.Document {
	var doc n8n.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return n8n.Document{}
	}
	return ForUpdate(doc)
}

// Dropped returns the keys of doc that ForUpdate removes, in sorted order.
func Dropped(doc n8n.Document) []string {
	var dropped []string
	for _, key := range doc.Keys() {
		if !slices.Contains(UpdateFields, key) {
			dropped = append(dropped, key)
		}
	}
	return dropped
}
