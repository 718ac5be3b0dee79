// Command engrave renders an image as pen-and-ink style hatching.
//
// Usage:
//
//	engrave [flags] [input [output]]
//
// Settings come from a JSON file (-config, or data/input.json when neither
// -config nor an input path is given); flags and positional arguments
// override the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/engrave"
	"github.com/gogpu/engrave/internal/config"
	"github.com/gogpu/engrave/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("engrave", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "JSON run description")
		shades     = fs.Int("shades", config.DefaultShades, "number of shade levels (2-256)")
		directions = fs.Int("directions", config.DefaultDirections, "number of candidate stripe directions")
		stroke     = fs.Int("stroke", config.DefaultStrokeWidth, "stripe period in pixels")
		polarity   = fs.String("polarity", "paper", "what fills the stripe band: paper or ink")
		workers    = fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		maxSize    = fs.Int("max-size", 0, "downscale inputs whose longer side exceeds this (0 = off)")
		reportPath = fs.String("report", "", "write diagnostic plots to this file (.png, .svg, .pdf)")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: engrave [flags] [input [output]]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 2 {
		fs.Usage()
		return 2
	}

	log := newLogger(stderr, *verbose)
	engrave.SetLogger(log)
	defer engrave.SetLogger(nil)

	cfg := &config.Config{}
	path := *configPath
	if path == "" && fs.NArg() == 0 {
		path = config.DefaultPath
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Error("load config", "path", path, "err", err)
			return 1
		}
		cfg = loaded
	}

	// Explicit flags and arguments win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shades":
			cfg.Shades = shades
		case "directions":
			cfg.Directions = directions
		case "stroke":
			cfg.StrokeWidth = stroke
		case "polarity":
			cfg.Polarity = *polarity
		case "workers":
			cfg.Workers = workers
		case "max-size":
			cfg.MaxSize = maxSize
		case "report":
			cfg.ReportPath = *reportPath
		}
	})
	if fs.NArg() > 0 {
		cfg.ImagePath = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		cfg.OutFileName = fs.Arg(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid settings", "err", err)
		return 2
	}
	if cfg.ImagePath == "" {
		log.Error("no input image: pass a path or set img_path")
		return 2
	}

	if err := engraveFile(cfg, stdout); err != nil {
		log.Error("engrave failed", "input", cfg.ImagePath, "err", err)
		return 1
	}
	return 0
}

func engraveFile(cfg *config.Config, stdout io.Writer) error {
	start := time.Now()

	src, err := engrave.LoadImage(cfg.ImagePath, cfg.GetMaxSize())
	if err != nil {
		return err
	}

	p := engrave.Params{
		Shades:      cfg.GetShades(),
		Directions:  cfg.GetDirections(),
		StrokeWidth: cfg.GetStrokeWidth(),
	}
	res, err := engrave.Run(src, p,
		engrave.WithWorkers(cfg.GetWorkers()),
		engrave.WithPolarity(cfg.GetPolarity()))
	if err != nil {
		return err
	}

	out := cfg.GetOutFileName()
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := res.Image.Save(out); err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		s := report.Summarize(res.Regions, res.Field, p.Shades, p.Directions)
		if err := s.Write(cfg.ReportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	w, h := res.Image.Bounds()
	pr := message.NewPrinter(language.English)
	pr.Fprintf(stdout, "%s: %d×%d pixels, %d regions, %v -> %s\n",
		cfg.ImagePath, w, h, len(res.Regions), time.Since(start).Round(time.Millisecond), out)
	return nil
}

// newLogger logs text to terminals and JSON otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
