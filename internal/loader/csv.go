package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"career-insights/internal/domain/posting"

	goerrors "github.com/go-errors/errors"
)

const (
	ColumnJobTitle      = "Job Title"
	ColumnState         = "State"
	ColumnCity          = "City"
	ColumnAverageSalary = "Average Salary"
	ColumnSkill         = "Skill"
)

var requiredColumns = []string{ColumnJobTitle, ColumnState, ColumnCity, ColumnAverageSalary, ColumnSkill}

var ErrMissingColumn = errors.New("missing required column")

// RowError reports the data row (1-based, header excluded) that failed
// to load.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e == nil {
		return ""
	}
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// ReadCSV parses the cleaned postings file. Any bad row aborts the load.
func ReadCSV(r io.Reader) ([]posting.Record, error) {
	cr := csv.NewReader(r)

	headers, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, goerrors.Wrap(fmt.Errorf("%w: empty file", ErrMissingColumn), 1)
		}
		return nil, goerrors.Wrap(fmt.Errorf("read csv header: %w", err), 1)
	}

	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	idx := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		i, ok := pos[normalizeHeader(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, goerrors.Wrap(fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")), 1)
	}

	out := make([]posting.Record, 0)
	row := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, goerrors.Wrap(&RowError{Row: row, Err: err}, 1)
		}

		rec, err := parseRow(fields, idx)
		if err != nil {
			var re *RowError
			if errors.As(err, &re) {
				re.Row = row
			}
			return nil, goerrors.Wrap(err, 1)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(fields []string, idx map[string]int) (posting.Record, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	salary, err := ParseSalary(get(ColumnAverageSalary))
	if err != nil {
		return posting.Record{}, &RowError{Column: ColumnAverageSalary, Err: err}
	}
	skills, err := ParseSkills(get(ColumnSkill))
	if err != nil {
		return posting.Record{}, &RowError{Column: ColumnSkill, Err: err}
	}

	return posting.Record{
		JobTitle:      get(ColumnJobTitle),
		State:         get(ColumnState),
		City:          get(ColumnCity),
		AverageSalary: salary,
		Skills:        skills,
	}, nil
}

// ParseSalary returns nil for the null spellings pandas writes.
func ParseSalary(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na", "n/a":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("invalid salary %q", s)
	}
	return &v, nil
}
