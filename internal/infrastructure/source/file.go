package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"assetdesk/internal/core/apperror"
	"assetdesk/internal/core/record"
	"assetdesk/internal/metadata"
)

// Dir serves each report from "{dir}/{report name}.json".
type Dir struct {
	dir string
}

// NewDir creates a directory-backed source.
func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

// Fetch implements reports.Source.
func (s *Dir) Fetch(_ context.Context, def metadata.ReportDef) ([]record.Record, error) {
	path := filepath.Join(s.dir, def.Name+".json")
	rows, err := ReadFile(path, def.Envelope)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.NewNotFound("report data", def.Name)
		}
		return nil, apperror.NewUpstream("read report data", err).WithDetail("path", path)
	}
	return rows, nil
}

// ReadFile decodes the JSON dump at path.
func ReadFile(path, envelope string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := Decode(data, envelope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Static serves the same rows for every report.
type Static []record.Record

// Fetch implements reports.Source.
func (s Static) Fetch(context.Context, metadata.ReportDef) ([]record.Record, error) {
	return record.CloneAll(s), nil
}
