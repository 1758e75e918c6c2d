package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML table file from the given path.
func LoadFile(path string) (*TableFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file %s: %w", path, err)
	}

	tf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tf, nil
}

// Parse parses YAML data into a TableFile.
func Parse(data []byte) (*TableFile, error) {
	var tf TableFile

	err := yaml.Unmarshal(data, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table YAML: %w", err)
	}

	applyDefaults(&tf)

	return &tf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(tf *TableFile) {
	if tf.Version == "" {
		tf.Version = "1"
	}

	for i := range tf.Tables {
		td := &tf.Tables[i]
		if td.PruneUnmapped == nil {
			prune := true
			td.PruneUnmapped = &prune
		}
	}
}

// TableFiles lists the *.yaml and *.yml files of dir, sorted by name.
func TableFiles(dir string) ([]string, error) {
	var files []string

	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list table files in %s: %w", dir, err)
		}

		files = append(files, matches...)
	}

	sort.Strings(files)

	return files, nil
}

// LoadDir loads every table file in dir and builds one catalog from them.
func LoadDir(dir string, reg *FormatterRegistry) (*Catalog, error) {
	files, err := TableFiles(dir)
	if err != nil {
		return nil, err
	}

	var tables []*Table

	for _, f := range files {
		tf, err := LoadFile(f)
		if err != nil {
			return nil, err
		}

		c, err := Build(tf, reg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}

		tables = append(tables, c.Tables()...)
	}

	return NewCatalog(tables...)
}
