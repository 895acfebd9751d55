package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/ab0utbla-k/envresolver/internal/config"
	"github.com/ab0utbla-k/envresolver/internal/telemetry"
	"github.com/ab0utbla-k/envresolver/resolver"
)

type options struct {
	File           string  `long:"file" short:"f" description:"YAML file declaring variables"`
	Separator      *string `long:"separator" short:"s" description:"List separator" default-mask:","`
	DateTimeFormat *string `long:"datetime-format" description:"Go time layout for datetime variables" default-mask:"2006-01-02 15:04:05"`
	Silent         bool    `long:"silent" short:"q" description:"Do not report invalid environment values"`
	Trace          bool    `long:"trace" description:"Write the resolve span to stderr"`
	Get            string  `long:"get" description:"Print only the named variable"`
	Args           struct {
		Declarations []string `positional-arg-name:"NAME[:TYPE][=DEFAULT]"`
	} `positional-args:"yes"`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewJSONHandler(stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("cannot load config", slog.String("error", err.Error()))
		return err
	}
	if cfg.LogFormat == config.LogFormatText {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[options] NAME[:TYPE][=DEFAULT]..."
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(stdout, err)
			return nil
		}
		logger.Error("cannot parse arguments", slog.String("error", err.Error()))
		return err
	}

	separator, dateTimeFormat, silent := cfg.ListSeparator, cfg.DateTimeFormat, cfg.Silent

	var file *declarationFile
	if opts.File != "" {
		file, err = loadDeclarationFile(opts.File)
		if err != nil {
			logger.Error("cannot load declarations", slog.String("error", err.Error()))
			return err
		}
		if file.Separator != "" {
			separator = file.Separator
		}
		if file.DateTimeFormat != "" {
			dateTimeFormat = file.DateTimeFormat
		}
		silent = silent || file.Silent
	}

	if opts.Separator != nil {
		separator = *opts.Separator
	}
	if opts.DateTimeFormat != nil {
		dateTimeFormat = *opts.DateTimeFormat
	}
	silent = silent || opts.Silent

	var decls []declaration
	if file != nil {
		decls = append(decls, file.declarations(separator)...)
	}
	for _, arg := range opts.Args.Declarations {
		d, err := parseDeclaration(arg)
		if err != nil {
			logger.Error("invalid declaration", slog.String("error", err.Error()))
			return err
		}
		decls = append(decls, d)
	}

	resolverOpts := []resolver.Option{
		resolver.WithSeparator(separator),
		resolver.WithDateTimeFormat(dateTimeFormat),
		resolver.WithSilent(silent),
		resolver.WithLogger(logger),
	}

	if opts.Trace || cfg.Trace {
		tp, err := telemetry.NewTracerProvider(ctx, stderr)
		if err != nil {
			logger.Error("cannot initialize tracer provider", slog.String("error", err.Error()))
			return err
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("cannot shutdown tracer provider", slog.String("error", err.Error()))
			}
		}()

		resolverOpts = append(resolverOpts, resolver.WithTracerProvider(tp))
	}

	r := resolver.New(resolverOpts...)
	if err := declareAll(r, decls); err != nil {
		logger.Error("cannot declare variables", slog.String("error", err.Error()))
		return err
	}

	vals := r.Resolve(ctx)

	if opts.Get != "" {
		v, err := r.Get(opts.Get)
		if err != nil {
			logger.Error("cannot get variable", slog.String("error", err.Error()))
			return err
		}
		return writeValue(stdout, v)
	}

	return writeValues(stdout, vals)
}
