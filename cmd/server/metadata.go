package main

import (
	"assetdesk/internal/domain/assets"
	"assetdesk/internal/metadata"
)

// setupRegistry registers the built-in reports, then any operator definitions
// from definitionsFile, which replace built-ins of the same name.
func setupRegistry(definitionsFile string) (*metadata.Registry, error) {
	reg := metadata.NewRegistry()

	if err := assets.Register(reg); err != nil {
		return nil, err
	}

	if definitionsFile != "" {
		if _, err := reg.LoadFile(definitionsFile); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
