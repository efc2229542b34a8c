// Package flatfile reads and writes the employee roster as a comma
// delimited text file:
//
//	ID,Nom,Poste,Salaire,Actif
//	1,Alice,Engineer,50000.00,1
//
// Fields are neither quoted nor escaped, so a comma inside a name or role
// splits the row when the file is read back.
package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rogersnm/roster/internal/model"
)

const (
	Header      = "ID,Nom,Poste,Salaire,Actif"
	DefaultPath = "employes.csv"
)

// Codec persists a full roster to a single file.
type Codec struct {
	path     string
	capacity int
	strict   bool
}

type Option func(*Codec)

// WithCapacity caps the number of rows read by Load.
func WithCapacity(n int) Option {
	return func(c *Codec) { c.capacity = n }
}

// WithStrictRows makes Load fail on the first row that does not hold all
// five fields instead of keeping whatever prefix of it could be read.
func WithStrictRows() Option {
	return func(c *Codec) { c.strict = true }
}

func New(path string, opts ...Option) *Codec {
	if path == "" {
		path = DefaultPath
	}
	c := &Codec{path: path, capacity: model.Capacity}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Codec) Path() string {
	return c.path
}

// Save overwrites the file with the header and one row per record,
// inactive records included.
func (c *Codec) Save(records []model.Employee) error {
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", c.path, err)
	}
	werr := Write(f, records)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("writing %s: %w", c.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("closing %s: %w", c.path, cerr)
	}
	return nil
}

// Load reads the file back. A missing file is an empty roster.
func (c *Codec) Load() ([]model.Employee, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", c.path, err)
	}
	defer f.Close()

	records, err := Read(f, c.capacity, c.strict)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	return records, nil
}

// Write encodes records to w.
func Write(w io.Writer, records []model.Employee) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, r := range records {
		active := 0
		if r.Active {
			active = 1
		}
		if _, err := fmt.Fprintf(bw, "%d,%s,%s,%s,%d\n",
			r.ID, r.Name, r.Role, model.FormatSalary(r.Salary), active); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes at most capacity rows from r. The first line is always
// discarded, whatever it holds.
func Read(r io.Reader, capacity int, strict bool) ([]model.Employee, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	if !sc.Scan() {
		return nil, sc.Err()
	}

	var records []model.Employee
	lineNo := 1
	for len(records) < capacity && sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		e, complete := parseRow(line)
		if strict && !complete {
			return nil, &RowError{Line: lineNo, Text: line}
		}
		records = append(records, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// RowError reports a row that could not be read in full.
type RowError struct {
	Line int
	Text string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: malformed row %q", e.Line, e.Text)
}
