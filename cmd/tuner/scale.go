package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-tuner/library"
	"github.com/cwbudde/algo-tuner/tuner"
	"github.com/cwbudde/algo-tuner/tuning/scala"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// scaleRef is a loaded scale and where it came from.
type scaleRef struct {
	def   *scale.Definition
	store *library.Store
	path  string
}

// loadScale reads name as a file path first and falls back to a library
// entry, with or without the .scl extension.
func loadScale(name, libraryDir string) (*scaleRef, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		def, err := scala.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &scaleRef{def: def, path: name}, nil
	}

	store, err := openLibrary(libraryDir)
	if err != nil {
		return nil, err
	}
	file := name
	if filepath.Ext(file) != library.Ext {
		file += library.Ext
	}
	def, err := store.Load(file)
	if err != nil {
		return nil, err
	}
	return &scaleRef{def: def, store: store, path: filepath.Join(store.Dir(), file)}, nil
}

func openLibrary(dir string) (*library.Store, error) {
	if dir == "" {
		d, err := library.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return library.Open(dir, library.WithLogger(logger))
}

// follow reloads the scale into engine whenever its library file changes.
// Scales loaded from outside the library cannot be followed.
func (r *scaleRef) follow(ctx context.Context, engine *tuner.Engine) error {
	if r.store == nil {
		return errors.New("-follow needs a library scale")
	}
	return r.store.Watch(ctx, func(records []library.Record) {
		for _, rec := range records {
			if rec.Path != r.path {
				continue
			}
			def, err := r.store.Load(rec.Path)
			if err != nil {
				logger.Warn("reload scale", "path", rec.Path, "err", err)
				return
			}
			if def.Equal(r.def, scale.Epsilon) {
				return
			}
			r.def = def
			if err := engine.LoadScale(def); err != nil {
				logger.Warn("reload scale", "path", rec.Path, "err", err)
				return
			}
			logger.Info("scale reloaded", "description", def.Description, "steps", def.Count())
			return
		}
	})
}
