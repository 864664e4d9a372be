// Package source loads report rows from the REST backend or from JSON dumps.
package source

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"assetdesk/internal/core/record"
)

// EnvelopeKeys are tried in order when a payload is an object and no envelope path is configured.
var EnvelopeKeys = []string{"data", "results", "items", "records"}

// ErrShape is returned when a payload holds no row array.
var ErrShape = errors.New("payload is not an array of records")

// Decode parses a JSON payload into records. The row array is located by the
// JSONPath envelope when given, else it is the payload itself or the first
// known envelope key.
func Decode(data []byte, envelope string) ([]record.Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload: %w", ErrShape)
	}

	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	rows, err := locate(doc, envelope)
	if err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d is %T: %w", i, row, ErrShape)
		}
		out = append(out, record.FromMap(obj))
	}
	return out, nil
}

func locate(doc any, envelope string) ([]any, error) {
	if envelope != "" {
		path, err := jp.ParseString(envelope)
		if err != nil {
			return nil, fmt.Errorf("envelope %q: %w", envelope, err)
		}
		results := path.Get(doc)
		if len(results) == 0 {
			return nil, fmt.Errorf("envelope %q matched nothing: %w", envelope, ErrShape)
		}
		if rows, ok := results[0].([]any); ok {
			return rows, nil
		}
		return nil, fmt.Errorf("envelope %q: %w", envelope, ErrShape)
	}

	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range EnvelopeKeys {
			if rows, ok := v[key].([]any); ok {
				return rows, nil
			}
		}
	}
	return nil, ErrShape
}
