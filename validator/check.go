package validator

import (
	"bytes"
	"encoding/json"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const checkResource = "mem://input-schema.json"

// Check compiles raw JSON schema and returns an error only if the schema itself is invalid.
// It is a diagnostic: callers log the outcome but still register the tool.
func Check(raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(checkResource, doc); err != nil {
		return err
	}
	_, err = compiler.Compile(checkResource)
	return err
}
