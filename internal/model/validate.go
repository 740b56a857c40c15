package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/cv.schema.json
var schemaJSON []byte

// Payload selects which definition of cv.schema.json a request body is checked against.
type Payload string

const (
	PayloadCreate   Payload = "createPayload"
	PayloadUpdate   Payload = "updatePayload"
	PayloadExport   Payload = "exportPayload"
	PayloadDocument Payload = "document"
)

var (
	schemaMu sync.Mutex
	schemas  = map[Payload]*gojsonschema.Schema{}
)

func compiled(p Payload) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if s, ok := schemas[p]; ok {
		return s, nil
	}
	var root map[string]interface{}
	if err := json.Unmarshal(schemaJSON, &root); err != nil {
		return nil, err
	}
	defs, ok := root["definitions"].(map[string]interface{})
	if !ok || defs[string(p)] == nil {
		return nil, fmt.Errorf("schema has no definition %q", p)
	}
	root["$ref"] = "#/definitions/" + string(p)
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(root))
	if err != nil {
		return nil, err
	}
	schemas[p] = s
	return s, nil
}

// ValidatePayload validates a raw JSON body against the definition named by p.
// The returned error lists every violation; callers wrap it as a validation failure.
func ValidatePayload(p Payload, body []byte) error {
	s, err := compiled(p)
	if err != nil {
		return err
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// DecodeDocument validates body as a bare Document and decodes it in normalized form.
func DecodeDocument(body []byte) (Document, error) {
	if err := ValidatePayload(PayloadDocument, body); err != nil {
		return Document{}, err
	}
	var d Document
	if err := json.Unmarshal(body, &d); err != nil {
		return Document{}, err
	}
	return d.Normalize(), nil
}
