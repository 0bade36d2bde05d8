// Command webclient sends a single HTTP/1.1 request over a raw TCP socket and
// prints the response.
//
//	webclient <address> [http_verb]
//
// address has the form host[:port][/path]. Nothing is printed when no
// response arrives before the timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/shravanasati/webfetch/internal/client"
	"github.com/shravanasati/webfetch/internal/logging"
	"github.com/shravanasati/webfetch/internal/request"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("webclient")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "webclient <address> [http_verb]",
		Short:         "Send one HTTP/1.1 request over a raw TCP socket",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			verb := request.MethodGet
			if len(args) == 2 {
				verb = args[1]
			}

			log, err := logging.New(v.GetString("log-level"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Sync()

			c := client.New(
				client.WithTimeout(v.GetDuration("timeout")),
				client.WithBufferSize(v.GetInt("buffer-size")),
				client.WithSingleRead(v.GetBool("single-read")),
				client.WithLogger(log),
			)

			text, ok, err := c.MakeRequest(cmd.Context(), args[0], verb)
			if err != nil {
				log.Error("request failed", zap.Error(err))
				return loggedError{err}
			}
			if !ok {
				log.Debug("no response")
				return nil
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Duration("timeout", client.DefaultTimeout, "connect and read timeout")
	flags.Int("buffer-size", client.DefaultBufferSize, "maximum number of response bytes kept")
	flags.Bool("single-read", false, "return what the first read yields instead of collecting the whole response")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	v.BindPFlags(flags)

	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
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
