// Package schema validates issue files against the importer's JSON Schema
// contract before any issue is created.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceURL = "issue.schema.json"

// Build returns the validation schema for issue files. When skipLabels is
// false the fetched label set is injected as the enum for label items, so an
// unknown label fails validation. The base schema is never mutated; every
// call produces a fresh document.
func Build(labels []string, skipLabels bool) map[string]interface{} {
	labelItems := map[string]interface{}{"type": "string"}
	labelsSchema := map[string]interface{}{
		"type":  "array",
		"items": labelItems,
	}
	if !skipLabels {
		if len(labels) == 0 {
			// draft-07 forbids an empty enum, so a label-less repository
			// instead caps the array: an empty labels list passes and any
			// supplied label is rejected under /labels
			labelsSchema["maxItems"] = 0
		} else {
			enum := make([]interface{}, len(labels))
			for i, l := range labels {
				enum[i] = l
			}
			labelItems["enum"] = enum
		}
	}

	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"required": []interface{}{
			"url", "browser", "os", "body", "title", "labels", "comments",
		},
		"properties": map[string]interface{}{
			"url":     map[string]interface{}{"type": "string"},
			"browser": map[string]interface{}{"type": "string"},
			"os":      map[string]interface{}{"type": "string"},
			"body":    map[string]interface{}{"type": "string"},
			"title":   map[string]interface{}{"type": "string"},
			"labels": labelsSchema,
			"comments": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "string",
				},
			},
		},
	}
}

// ValidationError is a schema violation found in an issue file.
type ValidationError struct {
	// Field is the top-level property the violation was found under, empty
	// for violations of the document itself (e.g. a missing property).
	Field  string
	Detail string
	cause  *jsonschema.ValidationError
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Detail)
	}
	return fmt.Sprintf("schema violation: %s", e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// LabelViolation reports whether the violation is about the labels field,
// which gets dedicated guidance in the UI.
func (e *ValidationError) LabelViolation() bool {
	return e.Field == "labels"
}

// Validate checks a raw issue document against the schema built for the
// given label set. A malformed document returns the decoding error as-is; a
// shape violation returns a *ValidationError.
func Validate(data []byte, labels []string, skipLabels bool) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("could not parse the issue file: %w", err)
	}

	sch, err := compile(Build(labels, skipLabels))
	if err != nil {
		return err
	}

	if err := sch.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fromCause(verr)
		}
		return err
	}
	return nil
}

func compile(doc map[string]interface{}) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not encode the schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("could not register the schema: %w", err)
	}
	return compiler.Compile(resourceURL)
}

// fromCause walks the validator's cause tree and picks the most specific
// violation, preferring one under /labels so the label guidance fires even
// when other causes are present.
func fromCause(err *jsonschema.ValidationError) *ValidationError {
	leaves := collectLeaves(err)

	chosen := leaves[0]
	for _, leaf := range leaves {
		if fieldOf(leaf) == "labels" {
			chosen = leaf
			break
		}
	}

	return &ValidationError{
		Field:  fieldOf(chosen),
		Detail: detailOf(chosen),
		cause:  err,
	}
}

func collectLeaves(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, collectLeaves(cause)...)
	}
	return leaves
}

func fieldOf(err *jsonschema.ValidationError) string {
	loc := strings.TrimPrefix(err.InstanceLocation, "/")
	if loc == "" {
		// a missing required property reports at the document root; recover
		// the field name from the message when possible
		for _, field := range []string{"url", "browser", "os", "body", "title", "labels", "comments"} {
			if strings.Contains(err.Message, "'"+field+"'") || strings.Contains(err.Message, `"`+field+`"`) {
				return field
			}
		}
		return ""
	}
	return strings.SplitN(loc, "/", 2)[0]
}

func detailOf(err *jsonschema.ValidationError) string {
	if err.InstanceLocation == "" {
		return err.Message
	}
	return fmt.Sprintf("%s: %s", err.InstanceLocation, err.Message)
}
