package library

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cwbudde/algo-tuner/tuning/scala"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

const (
	// Ext is the file extension of library entries.
	Ext = ".scl"

	appDirName = "algo-tuner"
	tmpPattern = ".tmp-*"
	scalesDir  = "scales"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Record describes one library file.
type Record struct {
	Path        string
	Description string
	// StepCount includes the unison.
	StepCount int
	ModTime   time.Time
}

// Name returns the file name without extension.
func (r Record) Name() string {
	base := filepath.Base(r.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for non-fatal failures. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithParseOptions passes options to the Scala parser, e.g. a fallback
// encoding for legacy files.
func WithParseOptions(opts ...scala.Option) Option {
	return func(s *Store) {
		s.parseOpts = append(s.parseOpts, opts...)
	}
}

// Store is a directory of .scl files. It holds no cached state, so several
// Stores or external programs may share the directory.
type Store struct {
	dir       string
	log       *slog.Logger
	parseOpts []scala.Option
}

// DefaultDir returns the per-user library directory,
// <UserConfigDir>/algo-tuner/scales.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("library: locate config dir: %w", err)
	}
	return filepath.Join(base, appDirName, scalesDir), nil
}

// Open returns a Store rooted at dir, creating the directory if needed.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("library: empty directory")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("library: create %s: %w", abs, err)
	}

	s := &Store{
		dir: abs,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Dir returns the absolute library directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns every parseable .scl file, newest first; equal modification
// times are ordered by description, case-insensitively. An unreadable
// directory yields no records.
func (s *Store) List() []Record {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("list scale library", "dir", s.dir, "err", err)
		return nil
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !hasSCLExt(e.Name()) {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		info, err := e.Info()
		if err != nil {
			s.log.Debug("skip scale file", "path", path, "err", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		def, err := s.parseFile(path)
		if err != nil {
			s.log.Debug("skip scale file", "path", path, "err", err)
			continue
		}

		records = append(records, Record{
			Path:        path,
			Description: def.Description,
			StepCount:   def.Count(),
			ModTime:     info.ModTime(),
		})
	}

	slices.SortFunc(records, func(a, b Record) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		if c := cmp.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description)); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})

	return records
}

// Load parses the library file at path. path may be absolute or relative to
// the library directory.
func (s *Store) Load(path string) (*scale.Definition, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	def, err := s.parseFile(full)
	if err != nil {
		return nil, fmt.Errorf("library: load %s: %w", full, err)
	}
	return def, nil
}

// Save writes def to Slug(def.Description)+".scl" and returns the path. An
// existing file is only replaced when overwrite is set; otherwise a
// *ConflictError is returned.
func (s *Store) Save(def *scale.Definition, overwrite bool) (string, error) {
	desc := ""
	if def != nil {
		desc = def.Description
	}
	return s.SaveAs(def, desc, overwrite)
}

// SaveAs is Save with an explicit file name; name is slugged and the .scl
// extension added when missing.
func (s *Store) SaveAs(def *scale.Definition, name string, overwrite bool) (string, error) {
	if def == nil {
		return "", errors.New("library: nil definition")
	}

	stem := name
	if hasSCLExt(stem) {
		stem = stem[:len(stem)-len(Ext)]
	}
	path := filepath.Join(s.dir, Slug(stem)+Ext)

	if !overwrite {
		if _, err := os.Lstat(path); err == nil {
			return "", &ConflictError{Path: path}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("library: stat %s: %w", path, err)
		}
	}

	if err := s.writeAtomic(path, def); err != nil {
		return "", fmt.Errorf("library: save %s: %w", path, err)
	}

	s.log.Info("saved scale", "path", path, "steps", def.Count())
	return path, nil
}

// Delete removes the library file at path. Failures are logged and
// returned.
func (s *Store) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		s.log.Warn("delete scale", "path", path, "err", err)
		return err
	}
	if err := os.Remove(full); err != nil {
		s.log.Warn("delete scale", "path", full, "err", err)
		return fmt.Errorf("library: delete %s: %w", full, err)
	}
	s.log.Info("deleted scale", "path", full)
	return nil
}

func (s *Store) parseFile(path string) (*scale.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scala.Parse(f, s.parseOpts...)
}

// writeAtomic writes to a temporary file in the library directory, syncs it
// and renames it over path.
func (s *Store) writeAtomic(path string, def *scale.Definition) error {
	tmp, err := os.CreateTemp(s.dir, tmpPattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, filePerm)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriter(tmp)
	if err := scala.Write(bw, def); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := syncDir(s.dir); err != nil {
		s.log.Debug("sync library dir", "dir", s.dir, "err", err)
	}
	return nil
}

// resolve maps path to a file directly inside the library directory.
func (s *Store) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrOutsideLibrary)
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(s.dir, full)
	}
	full = filepath.Clean(full)
	if filepath.Dir(full) != s.dir {
		return "", fmt.Errorf("%w: %s", ErrOutsideLibrary, path)
	}
	return full, nil
}

func hasSCLExt(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}
