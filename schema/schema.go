package schema

import (
	"bytes"
	"encoding/json"
)

// Schema is the JSON-Schema-like description of tool parameters declared by the backend.
type Schema struct {
	Type                 Types              `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Format               string             `json:"format,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Enum                 []interface{}      `json:"enum,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties interface{}        `json:"additionalProperties,omitempty"`
}

// Types holds a schema type; the backend may declare either a single type or an alternation list.
type Types []string

// First returns the leading declared type or an empty string
func (t Types) First() string {
	if len(t) == 0 {
		return ""
	}
	return t[0]
}

// Nullable returns true if "null" is one of the declared types
func (t Types) Nullable() bool {
	for _, candidate := range t {
		if candidate == "null" {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts "string" as well as ["string","null"], anything else leaves the type empty
func (t *Types) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	switch data[0] {
	case '"':
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*t = Types{single}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			*t = nil
			return nil
		}
		*t = list
		return nil
	}
	// unsupported declaration, treated as untyped
	*t = nil
	return nil
}

// MarshalJSON writes a single type as a string
func (t Types) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// IsRequired returns true if property is listed as required
func (s *Schema) IsRequired(property string) bool {
	for _, candidate := range s.Required {
		if candidate == property {
			return true
		}
	}
	return false
}
