package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas keyed by Schema.Name.
type schemaCache struct {
	mu     sync.Mutex
	byName map[string]*jsonschema.Schema
}

var compiled = &schemaCache{byName: map[string]*jsonschema.Schema{}}

func (c *schemaCache) get(s *Schema) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sch, ok := c.byName[s.Name]; ok {
		return sch, nil
	}

	def, err := jsonValue(s.Definition)
	if err != nil {
		return nil, err
	}
	comp := jsonschema.NewCompiler()
	loc := "mem://schemas/" + s.Name + ".json"
	if err := comp.AddResource(loc, def); err != nil {
		return nil, err
	}
	sch, err := comp.Compile(loc)
	if err != nil {
		return nil, err
	}
	c.byName[s.Name] = sch
	return sch, nil
}

// jsonValue converts a Go value into the generic form the compiler and
// validator work on.
func jsonValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

// checkSchema validates raw against s and returns the JSON without any
// Markdown fence the model wrapped it in.
func checkSchema(s *Schema, raw json.RawMessage) (json.RawMessage, error) {
	body := trimFence(raw)

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, malformed(raw, fmt.Errorf("parse JSON: %w", err))
	}

	sch, err := compiled.get(s)
	if err != nil {
		return nil, &Error{Kind: KindRejected, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}
	if err := sch.Validate(doc); err != nil {
		return nil, malformed(raw, fmt.Errorf("schema %q: %w", s.Name, err))
	}
	return body, nil
}

// DecodeJSON unmarshals the content of a structured response into T.
func DecodeJSON[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, malformed(nil, errors.New("no response"))
	}
	if err := json.Unmarshal(trimFence(resp.Content), &out); err != nil {
		return out, malformed(resp.Content, err)
	}
	return out, nil
}

func malformed(raw json.RawMessage, err error) *Error {
	return &Error{Kind: KindMalformed, Content: raw, Err: err}
}

var fence = []byte("```")

// trimFence removes a ```lang ... ``` wrapper.
func trimFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, fence) || !bytes.HasSuffix(s, fence) || len(s) < 2*len(fence) {
		return s
	}
	s = s[len(fence) : len(s)-len(fence)]
	if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return bytes.TrimSpace(s)
}
