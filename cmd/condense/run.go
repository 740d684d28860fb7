package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JaimeStill/condense/internal/config"
	"github.com/JaimeStill/condense/internal/intake"
	"github.com/JaimeStill/condense/internal/search"
	"github.com/JaimeStill/condense/pkg/artifact"
	"github.com/JaimeStill/condense/pkg/codec"
	"github.com/JaimeStill/condense/pkg/formatting"
)

type searchFunc func(*search.Controller, string, search.TargetSpec) (*search.Result, error)

// run wires config, codec, intake, and workspace together and drives one
// search invocation.
func run(mode string, fn searchFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := newLogger()
	logger.Info(
		"condense starting",
		"version", cfg.Version,
		"mode", mode,
		"env", cfg.Env(),
	)

	target, err := resolveTarget()
	if err != nil {
		return err
	}

	doc, err := intake.First(cfg.InputDir)
	if err != nil {
		return err
	}

	engine, err := codec.New(&cfg.Codec, logger)
	if err != nil {
		return fmt.Errorf("codec init failed: %w", err)
	}
	defer engine.Close()

	if pages, err := engine.PageCount(doc.Path); err == nil {
		printInfo(fmt.Sprintf("Processing %s (%s, %d pages)", doc.Name, formatting.FormatBytes(doc.Size, 2), pages))
	} else {
		printInfo(fmt.Sprintf("Processing %s (%s)", doc.Name, formatting.FormatBytes(doc.Size, 2)))
	}

	ws, err := artifact.NewWorkspace(cfg.OutputDir, logger)
	if err != nil {
		return err
	}

	// an interrupt must not leave stray candidates behind
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("interrupted, discarding candidates")
		ws.DiscardAll()
		engine.Close()
		os.Exit(1)
	}()

	res, err := fn(search.New(engine, ws, logger), doc.Path, target)
	if err != nil {
		return err
	}

	report(res, target)
	return nil
}

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{}
	if quiet {
		opts.Level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// resolveTarget parses the --target flag, prompting interactively when the
// flag was omitted.
func resolveTarget() (search.TargetSpec, error) {
	raw := targetFlag
	if raw == "" {
		fmt.Print("Enter target size (e.g. 5MB): ")

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return search.TargetSpec{}, fmt.Errorf("read target size: %w", err)
		}
		raw = strings.TrimSpace(line)
	}

	n, err := formatting.ParseBytes(raw)
	if err != nil {
		return search.TargetSpec{}, err
	}
	return search.NewTarget(n)
}

func report(res *search.Result, target search.TargetSpec) {
	if res.NoOp {
		printSuccess(fmt.Sprintf(
			"File is already within target (%s <= %s)",
			formatting.FormatMegabytes(res.FinalSize),
			formatting.FormatMegabytes(target.Bytes),
		))
		return
	}

	printInfo(fmt.Sprintf("Original size:  %s", formatting.FormatMegabytes(res.OriginalSize)))
	printInfo(fmt.Sprintf("Final size:     %s (%s)", formatting.FormatMegabytes(res.FinalSize), res.Winner))
	printInfo(fmt.Sprintf("Size reduction: %.1f%%", formatting.Reduction(res.OriginalSize, res.FinalSize)))
	printInfo(fmt.Sprintf("Trials run:     %d", res.Trials))

	if res.TargetMet {
		printSuccess(fmt.Sprintf("Saved %s", res.Path))
	} else {
		printWarning(fmt.Sprintf(
			"Could not reach target. Closest: %s (target %s), saved %s",
			formatting.FormatMegabytes(res.FinalSize),
			formatting.FormatMegabytes(target.Bytes),
			res.Path,
		))
	}
}
