package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported question bank format")
	ErrNoSource          = errors.New("no question bank files given")
)

// LoadFile reads the questions of one file. The format is chosen by
// extension: .csv, .json, .yaml or .yml.
func LoadFile(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()

	source := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f, source)
	case ".json":
		return ParseJSON(f, source)
	case ".yaml", ".yml":
		return ParseYAML(f, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFiles reads all files concurrently and merges them, in argument order,
// into one Bank. Ids must be unique across files.
func LoadFiles(ctx context.Context, paths ...string) (*Bank, error) {
	if len(paths) == 0 {
		return nil, ErrNoSource
	}

	results := make([][]Question, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			qs, err := LoadFile(p)
			if err != nil {
				return fmt.Errorf("load %s: %w", p, err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Question
	for _, qs := range results {
		all = append(all, qs...)
	}
	return New(all)
}
