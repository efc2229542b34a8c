package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/roster/internal/model"
	"gopkg.in/yaml.v3"
)

// EditFile is the editable part of an employee, stored as YAML
// frontmatter when a record is opened in $EDITOR.
type EditFile struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Role   string  `yaml:"role"`
	Salary float64 `yaml:"salary"`
}

const editHint = "Edit name, role and salary above. The id is informational; changing it has no effect."

// MarshalEmployee renders e as an edit file.
func MarshalEmployee(e model.Employee) ([]byte, error) {
	meta := EditFile{ID: e.ID, Name: e.Name, Role: e.Role, Salary: e.Salary}
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(editHint)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// ParseEmployee reads an edit file back. Anything after the frontmatter
// is ignored.
func ParseEmployee(r io.Reader) (EditFile, error) {
	var meta EditFile
	rest, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return meta, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if meta.Name == "" && meta.Role == "" && strings.TrimSpace(string(rest)) != "" {
		return meta, fmt.Errorf("no frontmatter found")
	}
	return meta, nil
}
