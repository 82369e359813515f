package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// documentSchemaJSON describes the JSON/YAML bank document layout:
//
//	{"version": "v1", "questions": [{"id": 1, "subject": "GK", ...}]}
//
// Field names inside a question accept the same synonyms as CSV headers.
// Options may be given as an "options" array or as option_a..option_d keys.
const documentSchemaJSON = `{
	"type": "object",
	"properties": {
		"version": {"type": ["string", "number"]},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"options": {
						"type": "array",
						"maxItems": 4,
						"items": {"type": ["string", "number", "boolean", "null"]}
					}
				}
			}
		}
	},
	"required": ["questions"]
}`

const documentSchemaURL = "schema://question-bank.json"

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchemaJSON))
		if err != nil {
			documentSchemaErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, def); err != nil {
			documentSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		documentSchema, documentSchemaErr = c.Compile(documentSchemaURL)
	})
	return documentSchema, documentSchemaErr
}

// ParseJSON reads a JSON bank document.
func ParseJSON(r io.Reader, source string) ([]Question, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
		}
		return nil, fmt.Errorf("%s: invalid JSON: %w", source, err)
	}
	return decodeDocument(doc, source)
}

// ParseYAML reads a YAML bank document. The document is re-encoded as JSON so
// both formats share one validation path.
func ParseYAML(r io.Reader, source string) ([]Question, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptySource)
		}
		return nil, fmt.Errorf("%s: invalid YAML: %w", source, err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: re-encode YAML: %w", source, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: re-encode YAML: %w", source, err)
	}
	return decodeDocument(doc, source)
}

func decodeDocument(doc any, source string) ([]Question, error) {
	sch, err := compiledDocumentSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s: schema validation failed: %w", source, err)
	}

	root := doc.(map[string]any)
	if v, ok := root["version"]; ok {
		if err := checkVersion(scalarString(v)); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}

	items, _ := root["questions"].([]any)
	records := make([]record, 0, len(items))
	keySet := make(map[string]bool)
	for _, item := range items {
		rec := flattenItem(item.(map[string]any))
		for k := range rec {
			keySet[k] = true
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	if _, err := resolveColumns(keys); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	// Objects name their own fields, so columns are resolved per question.
	out := make([]Question, 0, len(records))
	for i, rec := range records {
		out = append(out, pickColumns(rec.keys()).question(rec, source, i+1))
	}
	return out, nil
}

// flattenItem turns a decoded question object into a record, expanding an
// "options" array into option_a..option_d.
func flattenItem(item map[string]any) record {
	rec := make(record, len(item)+len(Labels))
	for k, v := range item {
		key := normalizeKey(k)
		if key == "options" {
			opts, _ := v.([]any)
			for i, opt := range opts {
				if i < len(optionColumns) {
					rec[optionColumns[i][0]] = scalarString(opt)
				}
			}
			continue
		}
		rec[key] = scalarString(v)
	}
	return rec
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
