package internal

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ghaniswara/workmatch/internal/api"
	"github.com/ghaniswara/workmatch/internal/backend"
	"github.com/ghaniswara/workmatch/internal/cli"
	"github.com/ghaniswara/workmatch/internal/config"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/internal/tokenstore"
	"github.com/ghaniswara/workmatch/internal/usecase/session"
)

const shutdownTimeout = 5 * time.Second

// Run is the program entry point. args[0] is the program name, followed by
// flags, a command and its arguments.
func Run(ctx context.Context, w io.Writer, args []string) error {
	return RunWithInput(ctx, os.Stdin, w, args)
}

func RunWithInput(ctx context.Context, in io.Reader, w io.Writer, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := "workmatch"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	env := fs.String("env", os.Getenv("WORKMATCH_ENV"), "config environment prefix, e.g. DEV or TEST")
	apiURL := fs.String("api", "", "backend base URL (overrides API_BASE_URL)")
	profile := fs.String("profile", "", "token profile name (overrides TOKEN_PROFILE)")
	port := fs.String("port", "", "listen port for serve (overrides PORT)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.NewConfig(*env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for key, value := range map[string]string{"API_BASE_URL": *apiURL, "TOKEN_PROFILE": *profile, "PORT": *port} {
		if value != "" {
			cfg.Set(key, value)
		}
	}

	command := fs.Arg(0)
	var rest []string
	if fs.NArg() > 1 {
		rest = fs.Args()[1:]
	}

	if command == "serve" {
		logger.InitFromConfig(cfg, "backend")
		return serve(ctx, w, cfg)
	}

	logger.InitFromConfig(cfg, "client")

	store, err := tokenstore.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}

	client := api.NewFromConfig(cfg, store)
	sess := session.New(client.Auth, client.Users, store)
	if err := sess.Initialize(ctx); err != nil {
		return err
	}

	return cli.New(cfg, client, sess, in, w).Run(ctx, command, rest)
}

func serve(ctx context.Context, w io.Writer, cfg *config.Config) error {
	server, err := backend.NewServer(ctx, w, cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.StartServer() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
