package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"consultorio/client"
	"consultorio/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	serverURL string
	token     string
	timezone  string
	output    string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "consultorioctl",
	Short:         "Command-line client for the consultorio API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("CONSULTORIO_URL", "http://localhost:8080/api"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("CONSULTORIO_TOKEN"), "session token from `consultorioctl login`")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", envOr("CONSULTORIO_TZ", "America/Argentina/Buenos_Aires"), "clinic time zone")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	rootCmd.AddCommand(loginCmd, calendarCmd, slotsCmd, reserveCmd, availabilityCmd, payCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newStore builds a store bound to the configured server and token.
func newStore() *store.Store {
	api := client.New(serverURL, nil)
	api.HTTPClient.Timeout = timeout
	s := store.New(api)
	if token != "" {
		s.RestoreSession(token, "")
	}
	return s
}

func location() (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", timezone, err)
	}
	return loc, nil
}

// emit writes v as json or yaml when requested; it reports false for text output.
func emit(w io.Writer, v interface{}) (bool, error) {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	case "", "text":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q", output)
	}
}

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNoToken):
		return "not logged in: run `consultorioctl login` and pass --token"
	case errors.As(err, &apiErr):
		if apiErr.Details != "" {
			return apiErr.Message + " (" + apiErr.Details + ")"
		}
		return apiErr.Message
	default:
		return err.Error()
	}
}
