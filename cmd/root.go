// Package cmd wires the CLI: configuration, logging, and the commands that
// drive the fetch/report pipeline.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/avrillon/steamworth/internal/cachestore"
	"github.com/avrillon/steamworth/internal/config"
	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/fx"
	"github.com/avrillon/steamworth/internal/library"
	"github.com/avrillon/steamworth/internal/steam"
)

// CLI represents the complete command structure for the steamworth application
type CLI struct {
	// Global flags
	Account string `help:"Display name of the cached account to operate on"`
	Country string `help:"Store country code for price lookups (overrides config)"`

	Interactive InteractiveCmd `cmd:"" default:"1" help:"Run the interactive menu (default)"`
	Fetch       FetchCmd       `cmd:"" help:"Fetch the full library, write the snapshot and the report"`
	Report      ReportCmd      `cmd:"" help:"Rebuild the report from the cached snapshot"`
	Game        GameCmd        `cmd:"" help:"Refresh one cached game and show its stats"`
	Stats       StatsCmd       `cmd:"" help:"Show the summary lines of the cached report"`
	Accounts    AccountsCmd    `cmd:"" help:"List cached accounts"`
}

// InteractiveCmd runs the menu loop.
type InteractiveCmd struct{}

// FetchCmd fetches and enriches the whole library.
type FetchCmd struct{}

// ReportCmd rebuilds the report from the snapshot.
type ReportCmd struct{}

// GameCmd refreshes a single game by name.
type GameCmd struct {
	Name string `arg:"" help:"Exact name of the cached game to refresh"`
}

// StatsCmd prints the report tail.
type StatsCmd struct {
	Lines int `short:"n" default:"5" help:"Number of summary lines to show"`
}

// AccountsCmd lists the accounts found in the cache directory.
type AccountsCmd struct{}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("steamworth"),
		kong.Description("Ranks your Steam library by playtime per euro spent."),
		kong.UsageOnError(),
	)

	if cli.Country != "" {
		viper.Set("steam.country", cli.Country)
	}

	err := ctx.Run(&cli)
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	viper.AutomaticEnv()
	if err := viper.BindEnv("steam.apikey", "STEAM_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}

// resolveAccount picks the account named by --account, or the only cached
// account when the flag is absent.
func resolveAccount(store *cachestore.Store, name string) (library.Account, error) {
	accounts, err := store.Accounts()
	if err != nil {
		return library.Account{}, err
	}
	if len(accounts) == 0 {
		return library.Account{}, fmt.Errorf("no cached accounts, run the interactive mode once to register one")
	}

	if name == "" {
		if len(accounts) == 1 {
			return accounts[0], nil
		}
		names := make([]string, len(accounts))
		for i, a := range accounts {
			names[i] = a.DisplayName
		}
		return library.Account{}, fmt.Errorf("multiple cached accounts %v, pick one with --account", names)
	}

	for _, a := range accounts {
		if a.DisplayName == name {
			return a, nil
		}
	}
	return library.Account{}, fmt.Errorf("no cached account named %q", name)
}

// newSession builds the pipeline session for an account from the loaded
// configuration. Fails when no API key is configured.
func newSession(account library.Account) (*library.Session, error) {
	apiKey := config.APIKey()
	if err := config.ValidateAPIKey(apiKey); err != nil {
		return nil, fmt.Errorf("steam.apikey not usable (set it in config.yaml or STEAM_API_KEY): %w", err)
	}

	client := steam.NewClient(apiKey)
	converter := fx.NewConverter(config.RatesURL(), config.TargetCurrency())
	return library.NewSession(account, client, converter), nil
}

// Run executes the non-interactive full fetch.
func (f *FetchCmd) Run(cli *CLI) error {
	store := cachestore.New(config.CacheDir())
	account, err := resolveAccount(store, cli.Account)
	if err != nil {
		return err
	}
	session, err := newSession(account)
	if err != nil {
		return err
	}

	return fetchAndReport(session, store, func(current, total int, name string) {
		slog.Info("Fetching game details", "progress", fmt.Sprintf("%d/%d", current+1, total), "game", name)
	})
}

// Run rebuilds the report from the cached snapshot.
func (r *ReportCmd) Run(cli *CLI) error {
	store := cachestore.New(config.CacheDir())
	account, err := resolveAccount(store, cli.Account)
	if err != nil {
		return err
	}

	return rebuildReport(store, account)
}

// Run refreshes one game and prints its stats.
func (g *GameCmd) Run(cli *CLI) error {
	store := cachestore.New(config.CacheDir())
	account, err := resolveAccount(store, cli.Account)
	if err != nil {
		return err
	}
	session, err := newSession(account)
	if err != nil {
		return err
	}

	text, err := refreshOneGame(session, store, g.Name)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// Run prints the last lines of the cached report.
func (s *StatsCmd) Run(cli *CLI) error {
	store := cachestore.New(config.CacheDir())
	account, err := resolveAccount(store, cli.Account)
	if err != nil {
		return err
	}

	lines, err := store.ReadReportTail(account, s.Lines)
	if err != nil {
		if errors.IsSnapshotNotFoundError(err) {
			return fmt.Errorf("no cached report for %q, run a fetch first", account.DisplayName)
		}
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// Run lists the cached accounts.
func (a *AccountsCmd) Run(cli *CLI) error {
	store := cachestore.New(config.CacheDir())
	accounts, err := store.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No cached accounts.")
		return nil
	}
	for _, account := range accounts {
		fmt.Printf("%s : %s\n", account.DisplayName, account.SteamID)
	}
	return nil
}
