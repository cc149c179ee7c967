// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper-hub/pkg/types"
)

// Load reads the catalog JSON file. A missing file is not an error: it
// returns an empty catalog so a first run bootstraps cleanly. An
// unreadable or malformed file is an error, since overwriting the only
// copy blind would lose the catalog.
func Load(path string) (types.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Catalog{Papers: []types.Paper{}}, nil
		}
		return types.Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var c types.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return types.Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if c.Papers == nil {
		c.Papers = []types.Paper{}
	}
	return c, nil
}

// Save writes the catalog with whole-file overwrite semantics. The write
// goes to a temp file in the same directory which is then renamed over
// the target, so an interrupted run cannot leave a half-written catalog.
func Save(path string, c types.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp catalog file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp catalog file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing catalog %s: %w", path, err)
	}
	return nil
}
