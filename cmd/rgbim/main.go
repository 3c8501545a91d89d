// Command rgbim is a terminal client for the RGBim account service: log in,
// inspect and refresh the session, validate a signup code, manage the
// subscription, and list plugin downloads. Session state persists in a local
// Badger database, so a login survives across invocations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	rgbim "github.com/rgbim/rgbim-go"
	"github.com/rgbim/rgbim-go/backend"
	"github.com/rgbim/rgbim-go/internal/cliconfig"
	"github.com/rgbim/rgbim-go/session"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "rgbim",
		Usage:   "RGBim account and download client",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
				EnvVars: []string{"RGBIM_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "backend base URL",
				EnvVars: []string{"RGBIM_SERVER"},
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			refreshCommand(),
			registerCommand(),
			validateCommand(),
			subscribeCommand(),
			unsubscribeCommand(),
			downloadsCommand(),
		},
	}
}

// runtime bundles everything a command needs, torn down in reverse order.
type runtime struct {
	cfg     cliconfig.Config
	manager *rgbim.Manager
	store   *session.BadgerStore
	logger  *slog.Logger
}

func newRuntime(c *cli.Context) (*runtime, error) {
	cfg, err := cliconfig.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if server := c.String("server"); server != "" {
		cfg.Backend.BaseURL = server
	}

	logger := newLogger(cfg.Log.Level)

	store, err := session.OpenBadger(session.BadgerOptions{
		Dir:        cfg.Storage.Dir,
		SyncWrites: true,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Backend.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	manager, err := rgbim.New().
		WithConfig(rgbim.Config{
			Backend: rgbim.BackendConfig{
				BaseURL: cfg.Backend.BaseURL,
				Timeout: timeout,
			},
			Audit:   rgbim.AuditConfig{Enabled: true},
			Metrics: rgbim.MetricsConfig{Enabled: true},
		}).
		WithStore(store).
		WithLogger(logger).
		WithAuditSink(rgbim.NewSlogSink(logger)).
		Build()
	if err != nil {
		store.Close()
		return nil, err
	}

	if err := manager.WaitReady(c.Context); err != nil {
		manager.Close()
		store.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, manager: manager, store: store, logger: logger}, nil
}

func (rt *runtime) close() {
	rt.manager.Close()
	if err := rt.store.Close(); err != nil {
		rt.logger.Error("closing session store", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func withRuntime(fn func(c *cli.Context, rt *runtime) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := newRuntime(c)
		if err != nil {
			return err
		}
		defer rt.close()
		return fn(c, rt)
	}
}

// requireToken fetches the current credential or fails with a uniform
// message telling the user to log in.
func requireToken(rt *runtime) (string, error) {
	token := rt.manager.AccessToken()
	if token == "" {
		return "", fmt.Errorf("%w (run: rgbim login)", rgbim.ErrNotAuthenticated)
	}
	return token, nil
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "log in and persist the session locally",
		ArgsUsage: "EMAIL PASSWORD",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			email := c.Args().Get(0)
			password := c.Args().Get(1)
			if !rt.manager.Login(c.Context, email, password) {
				return rgbim.ErrInvalidCredentials
			}
			info := rt.manager.Snapshot()
			fmt.Printf("logged in as %s (%s plan)\n", info.User.Email, info.User.Plan)
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "invalidate the session and clear local state",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			rt.manager.Logout(c.Context)
			fmt.Println("logged out")
			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			info := rt.manager.Snapshot()
			if info.User == nil {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Printf("user:  %s <%s>\n", info.User.Name, info.User.Email)
			fmt.Printf("plan:  %s\n", info.User.Plan)
			if !info.AccessExpiresAt.IsZero() {
				fmt.Printf("token: expires %s\n", info.AccessExpiresAt.Format(time.RFC3339))
			}
			return nil
		}),
	}
}

func refreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "re-fetch the profile with the stored token",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			rt.manager.RefreshProfile(c.Context)
			info := rt.manager.Snapshot()
			if info.User == nil {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Printf("profile refreshed: %s (%s plan)\n", info.User.Email, info.User.Plan)
			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "create an account",
		ArgsUsage: "NAME EMAIL PASSWORD PASSWORD_CONFIRM",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			msg, err := rt.manager.Backend().Register(c.Context,
				c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Args().Get(3))
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "account created; check your e-mail for the validation code"
			}
			fmt.Println(msg)
			return nil
		}),
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "confirm the e-mail verification code",
		ArgsUsage: "EMAIL CODE",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			if !rt.manager.ValidateAccount(c.Context, c.Args().Get(0), c.Args().Get(1)) {
				return fmt.Errorf("validation failed")
			}
			fmt.Println("account validated")
			return nil
		}),
	}
}

func subscribeCommand() *cli.Command {
	return &cli.Command{
		Name:  "subscribe",
		Usage: "start a premium subscription (prints the checkout URL)",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			token, err := requireToken(rt)
			if err != nil {
				return err
			}
			url, err := rt.manager.Backend().StartSubscription(c.Context, token)
			if err != nil {
				return err
			}
			fmt.Println("complete the payment in your browser:")
			fmt.Println(url)
			return nil
		}),
	}
}

func unsubscribeCommand() *cli.Command {
	return &cli.Command{
		Name:  "unsubscribe",
		Usage: "cancel the active subscription",
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			token, err := requireToken(rt)
			if err != nil {
				return err
			}
			if err := rt.manager.Backend().CancelSubscription(c.Context, token); err != nil {
				return err
			}
			fmt.Println("subscription canceled")
			// The plan changes server-side; pick it up now.
			rt.manager.RefreshProfile(c.Context)
			return nil
		}),
	}
}

func downloadsCommand() *cli.Command {
	return &cli.Command{
		Name:  "downloads",
		Usage: "list plugin downloads",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "public",
				Usage: "list the public catalog without authenticating",
			},
		},
		Action: withRuntime(func(c *cli.Context, rt *runtime) error {
			if c.Bool("public") {
				for _, plugin := range backend.PublicPluginList(rt.cfg.Backend.BaseURL) {
					fmt.Printf("%-12s %s\n", plugin.Label, plugin.URL)
				}
				return nil
			}

			token, err := requireToken(rt)
			if err != nil {
				return err
			}
			links, err := rt.manager.Backend().PluginDownloadLinks(c.Context, token)
			if err != nil {
				return err
			}
			if len(links) == 0 {
				fmt.Println("no downloads available for this account")
				return nil
			}
			for key, url := range links {
				fmt.Printf("%-12s %s\n", key, url)
			}
			return nil
		}),
	}
}
