package bridge

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcp-lambda/errs"
	"github.com/viant/mcp-lambda/tracing"
)

const logPrefix = "[mcp-lambda] "

// Run parses args, starts the bridge and blocks until stdin ends or a termination signal arrives
func Run(args []string) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] <url>"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
			return nil
		}
		parser.WriteHelp(os.Stderr)
		return errs.NewConfiguration("invalid arguments", err)
	}

	logger := newLogger(os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	config, err := NewConfig(ctx, options)
	if err != nil {
		parser.WriteHelp(os.Stderr)
		logger.Printf("error: %v", err)
		return err
	}
	return run(ctx, config, logger)
}

func run(ctx context.Context, config *Config, logger *log.Logger) error {
	logger.Printf("starting %v %v for %v", config.Info.Name, config.Info.Version, config.URL)
	shutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    config.Info.Name,
		ServiceVersion: config.Info.Version,
		Writer:         os.Stderr,
		Enabled:        config.Trace,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Printf("error during tracing shutdown: %v", err)
		}
	}()

	service, err := New(ctx, config, WithLogger(logger))
	if err != nil {
		return err
	}
	if err = service.Initialize(ctx); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- service.Serve(ctx)
	}()
	logger.Printf("bridge started successfully")
	select {
	case err = <-done:
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		logger.Printf("input stream closed, shutting down...")
		return nil
	case <-ctx.Done():
		logger.Printf("shutting down...")
		return nil
	}
}

func newLogger(writer io.Writer) *log.Logger {
	log.SetOutput(writer)
	log.SetPrefix(logPrefix)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return log.Default()
}
