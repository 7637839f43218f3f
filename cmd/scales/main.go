// Command scales manages the tuner's Scala scale library.
//
// Usage:
//
//	scales [flags] <command> [args]
//
// Commands:
//
//	list                       list library scales, newest first
//	show [-root N] <name>      print a scale and its anchored steps
//	import [-name N] [-force|-rename] <file.scl>...
//	create -desc D [-force|-rename] <steps>
//	delete <name>...
//
// Examples:
//
//	scales list
//	scales import ~/Downloads/meantone.scl
//	scales create -desc "Just major" "9/8 5/4 4/3 3/2 5/3 15/8"
//	scales show -root E just-major
//	scales delete just-major
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-tuner/library"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
	"github.com/cwbudde/algo-tuner/tuning/scala"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

// maxRenameAttempts bounds the "-2", "-3", ... suffix search of -rename.
const maxRenameAttempts = 100

func main() {
	dir := flag.String("library", "", "library directory (default: user config dir)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	store, err := openStore(*dir, logger)
	if err != nil {
		fail(err)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "list", "ls":
		err = cmdList(store)
	case "show", "cat":
		err = cmdShow(store, args)
	case "import":
		err = cmdImport(store, args)
	case "create", "new":
		err = cmdCreate(store, args)
	case "delete", "rm":
		err = cmdDelete(store, args)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: scales [flags] <command> [args]\n\n")
	fmt.Fprintf(os.Stderr, "Manages the Scala (.scl) scale library used by the tuner.\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  list                                  list scales, newest first\n")
	fmt.Fprintf(os.Stderr, "  show [-root N] <name>                 print a scale\n")
	fmt.Fprintf(os.Stderr, "  import [-name N] [-force|-rename] <file.scl>...\n")
	fmt.Fprintf(os.Stderr, "  create -desc D [-force|-rename] <steps>\n")
	fmt.Fprintf(os.Stderr, "  delete <name>...\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func openStore(dir string, logger *slog.Logger) (*library.Store, error) {
	if dir == "" {
		d, err := library.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return library.Open(dir, library.WithLogger(logger))
}

func cmdList(store *library.Store) error {
	records := store.List()
	if len(records) == 0 {
		fmt.Printf("no scales in %s\n", store.Dir())
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tSteps\tModified\tDescription\n")
	fmt.Fprintf(tw, "----\t-----\t--------\t-----------\n")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Name(), r.StepCount, r.ModTime.Format("2006-01-02 15:04"), r.Description)
	}
	return tw.Flush()
}

func cmdShow(store *library.Store, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	rootName := fs.String("root", "A", "root note name or index 0-11")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("show needs exactly one scale name")
	}

	root, err := pitch.ParseRoot(*rootName)
	if err != nil {
		return err
	}
	def, err := store.Load(fileName(fs.Arg(0)))
	if err != nil {
		return err
	}

	fmt.Print(scala.Format(def))
	fmt.Println()

	anchored := scale.Anchor(def.Steps, root)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index\tFrom %s\tLabel\n", pitch.NoteName(root))
	fmt.Fprintf(tw, "-----\t------\t-----\n")
	for i, c := range anchored {
		fmt.Fprintf(tw, "%d\t%.3f\t%s\n", i, c, pitch.Label(i, c, root))
	}
	return tw.Flush()
}

func cmdImport(store *library.Store, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	name := fs.String("name", "", "library file name (default: from the description)")
	force := fs.Bool("force", false, "overwrite existing scales")
	rename := fs.Bool("rename", false, "pick a free name when the scale exists")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("import needs at least one .scl file")
	}
	if *name != "" && fs.NArg() > 1 {
		return errors.New("-name applies to a single file")
	}

	for _, path := range fs.Args() {
		def, err := parseFile(path)
		if err != nil {
			return err
		}
		stem := *name
		if stem == "" {
			stem = def.Description
		}
		saved, err := save(store, def, stem, *force, *rename)
		if err != nil {
			return err
		}
		fmt.Printf("imported %s -> %s (%d steps)\n", path, saved, def.Count())
	}
	return nil
}

func cmdCreate(store *library.Store, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	desc := fs.String("desc", "", "scale description")
	force := fs.Bool("force", false, "overwrite an existing scale")
	rename := fs.Bool("rename", false, "pick a free name when the scale exists")
	_ = fs.Parse(args)

	steps, err := scala.ParseSteps(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	def := scale.NewDefinition(*desc, steps)

	saved, err := save(store, def, def.Description, *force, *rename)
	if err != nil {
		return err
	}
	fmt.Printf("created %s (%d steps)\n", saved, def.Count())
	return nil
}

func cmdDelete(store *library.Store, args []string) error {
	if len(args) == 0 {
		return errors.New("delete needs at least one scale name")
	}
	for _, name := range args {
		if err := store.Delete(fileName(name)); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", name)
	}
	return nil
}

// save writes def under stem. On a name conflict it overwrites with force,
// tries numbered stems with rename and otherwise reports the conflict.
func save(store *library.Store, def *scale.Definition, stem string, force, rename bool) (string, error) {
	path, err := store.SaveAs(def, stem, force)
	if err == nil || !errors.Is(err, library.ErrExists) || !rename {
		if errors.Is(err, library.ErrExists) {
			err = fmt.Errorf("%w (use -force or -rename)", err)
		}
		return path, err
	}

	base := library.Slug(strings.TrimSuffix(stem, library.Ext))
	for i := 2; i <= maxRenameAttempts; i++ {
		path, err = store.SaveAs(def, fmt.Sprintf("%s-%d", base, i), false)
		if !errors.Is(err, library.ErrExists) {
			return path, err
		}
	}
	return "", err
}

func parseFile(path string) (*scale.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := scala.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

func fileName(name string) string {
	if filepath.Ext(name) == library.Ext {
		return name
	}
	return name + library.Ext
}
