// Package main implements the dbf2sql command.
// It converts dBase tables into SQL scripts, one script next to every source file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/Valentin-Kaiser/go-dbf2sql/dbase"
	"github.com/Valentin-Kaiser/go-dbf2sql/export"
	"github.com/Valentin-Kaiser/go-dbf2sql/internal/config"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// ErrUsage is returned for invalid command lines.
var ErrUsage = errors.New("usage error")

type options struct {
	configFile string
	encoding   string
	outputDir  string
	parallel   int
	timeZone   string
	inspect    bool
	debug      bool
	sources    []string
	set        map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "[dbf2sql] ", log.LstdFlags)

	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Printf("Failed to load configuration: %v", err)
		return exitUsage
	}
	if cfg.Debug {
		dbase.Debug(true, stderr)
		defer dbase.Debug(false, nil)
	}

	if opts.inspect {
		return inspect(opts.sources, cfg, stdout, logger)
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Printf("Failed to load configuration: %v", err)
		return exitUsage
	}
	exporter := export.NewExporter(export.Options{
		Encoding:  cfg.Encoding,
		OutputDir: cfg.OutputDir,
		Location:  loc,
		Progress:  &syncWriter{w: stdout},
	})

	var failed atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(cfg.Parallel)
	for _, source := range opts.sources {
		source := source
		g.Go(func() error {
			if _, err := exporter.Convert(ctx, source); err != nil {
				failed.Add(1)
				logger.Printf("Converting %s failed: %v", source, err)
				if cfg.Debug {
					logger.Printf("Trace: %v", dbase.GetErrorTrace(err))
				}
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		logger.Printf("Conversion interrupted: %v", err)
		return exitFailure
	}

	if n := failed.Load(); n > 0 {
		logger.Printf("%d of %d files failed", n, len(opts.sources))
		return exitFailure
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("dbf2sql", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.encoding, "e", "UTF-8", "Encoding of character columns (shorthand)")
	fs.StringVar(&opts.encoding, "encoding", "UTF-8", "Encoding of character columns, e.g. CP1250, windows-1251 or auto")
	fs.StringVar(&opts.outputDir, "o", "", "Directory for the SQL files (shorthand)")
	fs.StringVar(&opts.outputDir, "output-dir", "", "Directory for the SQL files, next to the source if empty")
	fs.IntVar(&opts.parallel, "p", 1, "Number of files converted in parallel (shorthand)")
	fs.IntVar(&opts.parallel, "parallel", 1, "Number of files converted in parallel")
	fs.StringVar(&opts.timeZone, "tz", "Local", "Time zone DateTime values are written in")
	fs.StringVar(&opts.configFile, "config", "", "Path to a YAML configuration file")
	fs.BoolVar(&opts.inspect, "inspect", false, "Dump header and columns instead of converting")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: dbf2sql [-e encoding] [-o dir] [-p n] source_file [another_source_file [...]]\n\n")
		fmt.Fprintf(stderr, "Default encoding is UTF-8, often used encodings in dbf files are CP1250 or CP1251.\n")
		fmt.Fprintf(stderr, "The encoding auto reads the code page mark of each file.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(stderr, "  DBF2SQL_ENCODING     Encoding of character columns\n")
		fmt.Fprintf(stderr, "  DBF2SQL_OUTPUT_DIR   Directory for the SQL files\n")
		fmt.Fprintf(stderr, "  DBF2SQL_PARALLEL     Number of files converted in parallel\n")
		fmt.Fprintf(stderr, "  DBF2SQL_TIME_ZONE    Time zone DateTime values are written in\n")
		fmt.Fprintf(stderr, "  DBF2SQL_DEBUG        Enable debug output\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	opts.sources = fs.Args()
	if len(opts.sources) == 0 {
		usage(stderr, fs, "Missing parameters")
		return nil, fmt.Errorf("%w: missing parameters", ErrUsage)
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

func usage(w io.Writer, fs *flag.FlagSet, message string) {
	fmt.Fprintf(w, "\n%s\n\n", message)
	fs.Usage()
}

// loadConfig resolves the configuration, flags set on the command line win.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.set["e"] || opts.set["encoding"] {
		cfg.Encoding = opts.encoding
	}
	if opts.set["o"] || opts.set["output-dir"] {
		cfg.OutputDir = opts.outputDir
	}
	if opts.set["p"] || opts.set["parallel"] {
		cfg.Parallel = opts.parallel
	}
	if opts.set["tz"] {
		cfg.TimeZone = opts.timeZone
	}
	if opts.set["debug"] {
		cfg.Debug = opts.debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func inspect(sources []string, cfg *config.Config, stdout io.Writer, logger *log.Logger) int {
	code := exitOK
	for _, source := range sources {
		file, err := dbase.Open(source, cfg.Encoding)
		if err != nil {
			logger.Printf("Inspecting %s failed: %v", source, err)
			code = exitFailure
			continue
		}
		fmt.Fprintf(stdout, "Table %s: %v, %d records, %d columns\n", source, file.Header().Version(), file.RowsCount(), file.ColumnsCount())
		spew.Fdump(stdout, file.Header(), file.Columns())
		if err := file.Close(); err != nil {
			logger.Printf("Closing %s failed: %v", source, err)
		}
	}
	return code
}

// syncWriter serializes writes of parallel conversions.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
