// Package validator translates backend tool parameter schemas into per-property
// validation rules enforced by the local endpoint before a tool handler runs.
//
// Translation never fails: a type the translator does not know becomes a
// permissive rule, so a quirky backend schema can not block tool registration.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/viant/mcp-lambda/schema"
)

// Kind is the primitive kind a property is checked against
type Kind int

const (
	Any Kind = iota
	String
	Enum
	Number
	Boolean
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Enum:
		return "enum"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "any"
	}
}

// Rule is a single property rule
type Rule struct {
	Kind     Kind
	Enum     []interface{}
	Required bool
	// Nullable is set when the declared type list includes "null"
	Nullable bool
}

// Spec maps property name to its rule; a nil Spec accepts anything
type Spec map[string]*Rule

// ValidationError reports the first violated property
type ValidationError struct {
	Property string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Property == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Property, e.Reason)
}

// Translate derives a Spec from a schema, nil schema yields nil Spec
func Translate(s *schema.Schema) Spec {
	if s == nil {
		return nil
	}
	ret := make(Spec, len(s.Properties))
	for name, property := range s.Properties {
		rule := translateProperty(property)
		rule.Required = s.IsRequired(name)
		if property != nil {
			rule.Nullable = property.Type.Nullable()
		}
		ret[name] = rule
	}
	return ret
}

func translateProperty(property *schema.Schema) *Rule {
	if property == nil {
		return &Rule{Kind: Any}
	}
	switch property.Type.First() {
	case "string":
		if len(property.Enum) > 0 {
			return &Rule{Kind: Enum, Enum: property.Enum}
		}
		return &Rule{Kind: String}
	case "number", "integer":
		return &Rule{Kind: Number}
	case "boolean":
		return &Rule{Kind: Boolean}
	case "array":
		return &Rule{Kind: Array}
	case "object":
		return &Rule{Kind: Object}
	default:
		// unknown or missing type: accept anything
		return &Rule{Kind: Any}
	}
}

// Names returns sorted property names
func (s Spec) Names() []string {
	ret := make([]string, 0, len(s))
	for name := range s {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Validate checks raw JSON arguments; absent or null arguments are treated as an empty object
func (s Spec) Validate(arguments json.RawMessage) error {
	if s == nil {
		return nil
	}
	values := map[string]json.RawMessage{}
	trimmed := bytes.TrimSpace(arguments)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if trimmed[0] != '{' {
			return &ValidationError{Reason: "arguments must be an object"}
		}
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return &ValidationError{Reason: fmt.Sprintf("invalid arguments: %v", err)}
		}
	}
	for _, name := range s.Names() {
		rule := s[name]
		value, ok := values[name]
		if !ok {
			if rule.Required {
				return &ValidationError{Property: name, Reason: "is required"}
			}
			continue
		}
		if err := rule.check(value); err != nil {
			return &ValidationError{Property: name, Reason: err.Error()}
		}
	}
	return nil
}

func (r *Rule) check(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("expected %v", r.Kind)
	}
	if bytes.Equal(trimmed, []byte("null")) {
		if r.Kind == Any || r.Nullable {
			return nil
		}
		return fmt.Errorf("expected %v, got null", r.Kind)
	}
	first := trimmed[0]
	switch r.Kind {
	case String:
		if first != '"' {
			return fmt.Errorf("expected string")
		}
	case Enum:
		var value interface{}
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		for _, candidate := range r.Enum {
			if reflect.DeepEqual(candidate, value) {
				return nil
			}
		}
		return fmt.Errorf("expected one of %v", r.Enum)
	case Number:
		if first != '-' && (first < '0' || first > '9') {
			return fmt.Errorf("expected number")
		}
	case Boolean:
		if !bytes.Equal(trimmed, []byte("true")) && !bytes.Equal(trimmed, []byte("false")) {
			return fmt.Errorf("expected boolean")
		}
	case Array:
		if first != '[' {
			return fmt.Errorf("expected array")
		}
	case Object:
		if first != '{' {
			return fmt.Errorf("expected object")
		}
	}
	return nil
}
