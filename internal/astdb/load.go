package astdb

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonDecl is the on-disk shape of one declaration record, the interim
// input format for internal/query's CLI surface until the external
// parser populates a DB directly.
type jsonDecl struct {
	Kind   string         `json:"kind"`
	Name   string         `json:"name"`
	File   string         `json:"file"`
	Line   int            `json:"line"`
	Column int            `json:"column"`
	Attrs  map[string]any `json:"attrs"`
}

// LoadJSON reads a declaration set from a JSON file: an array of
// {kind, name, file, line, column, attrs} records.
func LoadJSON(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []jsonDecl
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("astdb: parsing %s: %w", path, err)
	}

	db := New()
	for _, r := range raw {
		kind, ok := ParseKind(r.Kind)
		if !ok {
			return nil, fmt.Errorf("astdb: %s: unknown kind %q for declaration %q", path, r.Kind, r.Name)
		}
		db.Add(Decl{
			Kind:   kind,
			Name:   r.Name,
			File:   r.File,
			Line:   r.Line,
			Column: r.Column,
			Attrs:  r.Attrs,
		})
	}
	return db, nil
}
