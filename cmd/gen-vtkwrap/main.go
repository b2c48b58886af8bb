package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/seitarof/gen-vtkwrap/internal/cli"
	"github.com/seitarof/gen-vtkwrap/internal/generator"
	"github.com/seitarof/gen-vtkwrap/internal/parser"
	"github.com/seitarof/gen-vtkwrap/internal/rules"
	"github.com/seitarof/gen-vtkwrap/internal/source"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Print(cli.Usage())
			return
		}
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(os.Stderr, "error: %v\n\n%s", usage, cli.Usage())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Quiet {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	table, err := rules.Default()
	if err != nil {
		log.Fatal("load built-in rules", zap.Error(err))
	}

	client := &http.Client{Timeout: cfg.Timeout}
	p := parser.New(log, !cfg.Quiet)
	c := source.NewCollector(source.NewLoader(client), p, log)
	g := generator.New(generator.NewClangFormatter(cfg.ClangFormat), generator.NewFileWriter(), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := cli.NewRunner(c, g, table, os.Stdout, log)
	if err := runner.Run(ctx, cfg); err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}
}
