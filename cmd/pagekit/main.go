package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-pagekit/internal/di"
	"github.com/goliatone/go-pagekit/internal/runtimeconfig"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("pagekit: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	command := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}
	switch command {
	case "serve":
		return runServe(ctx, args, stdout)
	case "import":
		return runImport(ctx, args, stdout)
	default:
		return fmt.Errorf("unknown command %q (expected serve or import)", command)
	}
}

// loadConfig reads .env when present and overlays PAGEKIT_* variables.
func loadConfig(envFile string) (runtimeconfig.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return runtimeconfig.Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return runtimeconfig.FromEnv(runtimeconfig.DefaultConfig())
}

func runServe(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	envFile := fs.String("env", ".env", "Path to an optional .env file")
	addr := fs.String("addr", "", "Listen address (overrides PAGEKIT_HTTP_ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()

	if err := container.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	handler, err := container.API().Handler()
	if err != nil {
		return fmt.Errorf("build api: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	fmt.Fprintf(stdout, "pagekit listening on %s\n", cfg.HTTP.Addr)

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runImport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	envFile := fs.String("env", ".env", "Path to an optional .env file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return errors.New("import: at least one markdown file or directory is required")
	}

	cfg, err := loadConfig(*envFile)
	if err != nil {
		return err
	}
	cfg.Features.Commands = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer container.Close()

	if err := container.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return err
		}

		if info.IsDir() {
			result, err := container.Importer(os.DirFS(abs)).ImportDirectory(ctx, ".")
			if err != nil {
				return fmt.Errorf("import %s: %w", path, err)
			}
			fmt.Fprintf(stdout, "%s: %d created, %d updated\n", path, len(result.Created), len(result.Updated))
			continue
		}

		result, err := container.Importer(os.DirFS(filepath.Dir(abs))).ImportFile(ctx, filepath.Base(abs))
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "%s: %d created, %d updated\n", path, len(result.Created), len(result.Updated))
	}
	return nil
}
