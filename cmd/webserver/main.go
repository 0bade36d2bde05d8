// Command webserver serves the files of a directory over HTTP/1.1, one
// connection at a time.
//
//	webserver <port> <dir>
//
// It exits 0 when interrupted and 1 on any other failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/shravanasati/webfetch/internal/logging"
	"github.com/shravanasati/webfetch/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("webserver")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "webserver <port> <dir>",
		Short:         "Serve a directory over HTTP/1.1",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := strconv.Atoi(args[0])
			if err != nil || port < 0 || port > 65535 {
				return fmt.Errorf("invalid port %q", args[0])
			}

			log, err := logging.New(v.GetString("log-level"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Sync()

			s := server.New(
				server.Config{
					Host:        v.GetString("host"),
					Port:        port,
					Root:        args[1],
					ReadTimeout: v.GetDuration("read-timeout"),
				},
				server.WithLogger(log),
				server.WithColor(!v.GetBool("no-color")),
			)

			if err := s.Run(cmd.Context()); err != nil {
				log.Error("server failed", zap.Error(err))
				return loggedError{err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("host", server.DefaultHost, "interface to bind to")
	flags.Duration("read-timeout", 0, "limit for reading a request head, 0 for none")
	flags.Bool("no-color", false, "disable colored access logs")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	v.BindPFlags(flags)

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// loggedError marks an error the logger has already reported.
type loggedError struct{ error }

func (e loggedError) Unwrap() error { return e.error }

// report prints errors that never reached the logger, such as bad arguments.
func report(w io.Writer, err error) {
	var logged loggedError
	if errors.As(err, &logged) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
