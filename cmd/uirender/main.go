package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/normalizer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/pipeline"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/registry"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/domain/renderer"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
	"github.com/GriffinCanCode/AgentOS/uirender/internal/widgets"
)

const (
	exitOK    = 0
	exitRead  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("uirender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "Write the page to this file instead of stdout")
	manifest := fs.String("manifest", "", "Catalog manifest file")
	level := fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	discover := fs.Bool("discover", false, "Search each file for embedded specs")
	title := fs.String("title", "uirender", "Page title")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: uirender [flags] <glob|dir>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	logger, err := logging.NewWriter(logging.Config{Level: *level}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid log level %q: %v\n", *level, err)
		return exitUsage
	}
	defer logger.Sync()

	catalog := registry.New(logger.Component(logging.Registry))
	seeder := registry.NewSeeder(catalog, logger.Component(logging.Registry))
	seeder.SeedModules(widgets.Modules()...)
	if *manifest != "" {
		if _, err := seeder.SeedManifestFile(*manifest); err != nil {
			fmt.Fprintf(stderr, "manifest: %v\n", err)
			return exitRead
		}
	}
	catalog.Freeze()

	norm := normalizer.New(normalizer.WithLogger(logger.Component(logging.Normalizer)))
	rend := renderer.New(catalog, renderer.WithLogger(logger.Component(logging.Renderer)))
	p := pipeline.New(norm, rend, nil, logger.Component(logging.Pipeline))

	files, err := collectInputs(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	status := exitOK
	var specs []*types.Spec
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "read %s: %v\n", path, err)
			status = exitRead
			continue
		}

		raw, err := decode(data, norm.DecodeRaw)
		switch {
		case err != nil:
			logger.Warn("Rendering fallback for undecodable file", zap.String("file", path), zap.Error(err))
			specs = append(specs, norm.Fallback(err))
		case *discover:
			specs = append(specs, p.ResolveDiscovered(raw)...)
		default:
			specs = append(specs, p.Resolve(raw))
		}
	}

	results := p.RenderSpecs(specs)
	outputs := make([]types.Output, len(results))
	for i, res := range results {
		if res.Fallback {
			logger.Warn("Spec rendered as fallback", zap.Int("index", i))
		}
		outputs[i] = res.Output
	}

	page := string(rend.Page(*title, outputs...))
	if *out == "" {
		fmt.Fprint(stdout, page)
		return status
	}
	if err := os.WriteFile(*out, []byte(page), 0o644); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", *out, err)
		return exitRead
	}
	return status
}
