package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"career-insights/internal/domain/posting"
)

// CSVSource loads postings from the cleaned CSV on disk.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load(ctx context.Context) ([]posting.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// Fingerprint changes whenever the file is replaced or rewritten.
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", s.Path, err)
	}
	return fmt.Sprintf("csv:%s:%d:%d", abs, st.Size(), st.ModTime().UnixNano()), nil
}
