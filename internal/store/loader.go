package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/periodica-labs/periodica/pkg/chem"
)

// loadConcurrency bounds the parallel file reads during Open.
const loadConcurrency = 8

type loadedElement struct {
	path    string
	element chem.Element
}

type loadedReaction struct {
	path     string
	reaction chem.Reaction
}

func errDuplicate(kind, value string) error {
	return fmt.Errorf("duplicate %s %q", kind, value)
}

// listJSON returns the sorted .json files directly under dir. A missing
// directory is an error when required, otherwise an empty list.
func listJSON(dir string, required bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, &chem.LoadError{Path: dir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func loadElements(ctx context.Context, dataRoot string) ([]loadedElement, error) {
	paths, err := listJSON(filepath.Join(dataRoot, "elements"), true)
	if err != nil {
		return nil, err
	}

	loaded := make([]loadedElement, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return &chem.LoadError{Path: path, Err: err}
			}
			var e chem.Element
			if err := json.Unmarshal(data, &e); err != nil {
				return &chem.LoadError{Path: path, Err: err}
			}
			if e.AtomicNumber < 1 || e.Symbol == "" {
				return &chem.LoadError{Path: path, Err: fmt.Errorf("missing atomic_number or symbol")}
			}
			loaded[i] = loadedElement{path: path, element: e}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadReactions(ctx context.Context, dataRoot string) ([]loadedReaction, error) {
	all, err := listJSON(filepath.Join(dataRoot, "reactions"), false)
	if err != nil {
		return nil, err
	}

	// index.json is a derived summary written next to the source files;
	// it is not a reaction record.
	paths := all[:0]
	for _, path := range all {
		if filepath.Base(path) == "index.json" {
			continue
		}
		paths = append(paths, path)
	}

	perFile := make([][]chem.Reaction, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return &chem.LoadError{Path: path, Err: err}
			}
			rxns, err := chem.DecodeReactions(data)
			if err != nil {
				return &chem.LoadError{Path: path, Err: err}
			}
			perFile[i] = rxns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var loaded []loadedReaction
	for i, rxns := range perFile {
		for _, r := range rxns {
			if r.ID == "" {
				return nil, &chem.LoadError{Path: paths[i], Err: fmt.Errorf("reaction with empty id")}
			}
			loaded = append(loaded, loadedReaction{path: paths[i], reaction: r})
		}
	}
	return loaded, nil
}
