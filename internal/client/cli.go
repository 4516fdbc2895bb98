// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/config"
	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// Factory builds the [Client] for one command run from the flag overrides.
// The returned release func closes whatever the client opened.
type Factory func(ctx context.Context, overrides *config.StructuredConfig, out io.Writer) (Client, func(), error)

// NewRootCommand builds the oifv command tree. Every subcommand except
// version gets its Client from factory.
func NewRootCommand(build models.AppBuildInfo, factory Factory) *cobra.Command {
	overrides := &config.StructuredConfig{}

	s := &session{}

	root := &cobra.Command{
		Use:           "oifv",
		Short:         "Credits, follows and likes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["offline"] == "true" {
				return nil
			}
			var err error
			s.client, s.release, err = factory(cmd.Context(), overrides, cmd.OutOrStdout())
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&overrides.Adapter.HTTPAddress, "server", "", "Data Backend address")
	flags.StringVar(&overrides.Session.AuthToken, "token", "", "bearer token; guest session when empty")
	flags.StringVar(&overrides.Session.AuthTokenFile, "token-file", "", "file holding the bearer token")
	flags.BoolVar(&overrides.Session.TestMode, "test-mode", false, "keep ledger reads and writes local")
	flags.StringVar(&overrides.Storage.Local.Driver, "local-driver", "", "local store driver (sqlite|pebble)")
	flags.StringVar(&overrides.Storage.Local.Path, "local-path", "", "local store file or directory")
	flags.StringVar(&overrides.Realtime.Broker, "broker", "", "MQTT broker URL for push updates")
	flags.StringVarP(&overrides.JSONFilePath, "config", "c", "", "JSON config file path")
	flags.StringVar(&overrides.App.LogLevel, "log-level", "", "log level")

	root.AddCommand(
		newVersionCommand(build),
		newWhoAmICommand(s),
		newBalanceCommand(s),
		newCreditCommand(s),
		newFollowCommand(s),
		newLikeCommand(s),
		newGuestCommand(s),
		newMediaCommand(s),
		newWatchCommand(s),
		newTrialCommand(s),
	)

	return root
}

// Execute runs the command tree until it finishes or the process is
// interrupted, and returns the exit code.
func Execute(root *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// session holds the Client built for the running command.
type session struct {
	client  Client
	release func()
}

// do runs fn and releases the client whether or not fn fails.
func (s *session) do(fn func(c Client) error) error {
	if s.release != nil {
		defer s.release()
	}
	return fn(s.client)
}

func newVersionCommand(build models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Annotations: map[string]string{"offline": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return build.Print(cmd.OutOrStdout())
		},
	}
}

func newWhoAmICommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the acting identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.WhoAmI(cmd.Context()) })
		},
	}
}

func newBalanceCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the credit balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.Balance(cmd.Context()) })
		},
	}
}

func newCreditCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Add or spend credits",
	}

	add := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Add credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return s.do(func(c Client) error { return c.AddCredits(cmd.Context(), amount) })
		},
	}

	var reason string
	spend := &cobra.Command{
		Use:   "spend AMOUNT",
		Short: "Spend credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return s.do(func(c Client) error { return c.Spend(cmd.Context(), amount, reason) })
		},
	}
	spend.Flags().StringVar(&reason, "reason", "cli", "what the credits are spent on")

	cmd.AddCommand(add, spend)
	return cmd
}

func newFollowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "follow CREATOR_ID",
		Short: "Follow a creator, or unfollow when already following",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.ToggleFollow(cmd.Context(), args[0]) })
		},
	}
}

func newLikeCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "like MEDIA_ID",
		Short: "Like a media item, or remove the like",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.ToggleLike(cmd.Context(), args[0]) })
		},
	}
}

func newGuestCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Manage the local guest session",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-name NAME",
		Short: "Set the display name shown to creators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.SetGuestName(cmd.Context(), args[0]) })
		},
	})
	return cmd
}

func newMediaCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage your media library",
	}

	var req UploadRequest
	upload := &cobra.Command{
		Use:   "upload FILE",
		Short: "Register an image or video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Path = args[0]
			return s.do(func(c Client) error { return c.Upload(cmd.Context(), req) })
		},
	}
	upload.Flags().StringVar(&req.Title, "title", "", "title")
	upload.Flags().StringVar(&req.Description, "description", "", "description")
	upload.Flags().StringVar(&req.PosterPath, "poster", "", "poster frame storage path (videos)")
	upload.Flags().IntVar(&req.Duration, "duration", 0, "duration in seconds (videos)")

	cmd.AddCommand(upload, &cobra.Command{
		Use:   "set-main MEDIA_ID",
		Short: "Make an item your main media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.SetMain(cmd.Context(), args[0]) })
		},
	})
	return cmd
}

func newWatchCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a collection live until interrupted",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "media OWNER_ID",
			Short: "Watch a creator's media library",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.do(func(c Client) error { return c.WatchMedia(cmd.Context(), args[0]) })
			},
		},
		&cobra.Command{
			Use:   "followers CREATOR_ID",
			Short: "Watch a creator's followers and counters",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.do(func(c Client) error { return c.WatchFollowers(cmd.Context(), args[0]) })
			},
		},
	)
	return cmd
}

func newTrialCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "trial",
		Short: "Run the guest trial countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.do(func(c Client) error { return c.RunTrial(cmd.Context()) })
		},
	}
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// NewAppFactory is the production [Factory]: it loads the client config,
// opens the local store and wires the client services over the REST backend.
func NewAppFactory(role string) Factory {
	return func(ctx context.Context, overrides *config.StructuredConfig, out io.Writer) (Client, func(), error) {
		cfg, err := config.GetClientConfig(overrides)
		if err != nil {
			return nil, nil, fmt.Errorf("error getting configs: %w", err)
		}

		log := logger.NewClientLogger(role, "")
		logger.SetLevel(cfg.App.LogLevel)

		storages, err := store.NewClientStorages(ctx, cfg.Local, log)
		if err != nil {
			return nil, nil, fmt.Errorf("create local storage: %w", err)
		}

		backend, err := adapter.NewHTTPDataBackend(cfg.Adapter, log)
		if err != nil {
			storages.Close()
			return nil, nil, fmt.Errorf("create data backend: %w", err)
		}

		services := service.NewClientServices(cfg, storages.KV, backend, log)

		app, err := NewApp(services, out, cfg.Sync, log)
		if err != nil {
			storages.Close()
			return nil, nil, fmt.Errorf("init client app error: %w", err)
		}

		release := func() {
			if err := storages.Close(); err != nil {
				log.Err(err).Msg("close local storage")
			}
		}
		return app, release, nil
	}
}
