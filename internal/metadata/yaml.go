package metadata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// definitionsFile is the on-disk layout of operator-supplied report definitions.
type definitionsFile struct {
	Reports []ReportDef `yaml:"reports"`
}

// LoadYAML decodes report definitions from r.
func LoadYAML(r io.Reader) ([]ReportDef, error) {
	var file definitionsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode report definitions: %w", err)
	}
	for _, def := range file.Reports {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Reports, nil
}

// LoadFile registers every definition found in the YAML file at path,
// replacing built-ins with the same name. It returns the number loaded.
func (r *Registry) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open report definitions: %w", err)
	}
	defer f.Close()

	defs, err := LoadYAML(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return 0, err
		}
	}
	return len(defs), nil
}
