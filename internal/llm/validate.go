package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var compiledSchemas sync.Map // schema name -> *jsonschema.Schema

// validateResponse strips markdown fences from raw, checks it parses as
// JSON and validates it against schema. It returns the cleaned JSON.
func validateResponse(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	cleaned := StripCodeFences(raw)

	var doc any
	if err := json.Unmarshal(cleaned, &doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return cleaned, nil
}

// StripCodeFences removes a surrounding ```json ... ``` block that some
// models add even when asked for bare JSON.
func StripCodeFences(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = s[3:]
	if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = bytes.TrimPrefix(s, []byte("json"))
	}
	s = bytes.TrimSpace(s)
	s = bytes.TrimSuffix(s, []byte("```"))
	return bytes.TrimSpace(s)
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
