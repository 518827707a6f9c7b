package cmd

import (
	"fmt"
	"log/slog"

	"github.com/avrillon/steamworth/internal/cachestore"
	"github.com/avrillon/steamworth/internal/config"
	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/library"
	"github.com/avrillon/steamworth/internal/tui"
)

const addAccountOption = "Add account"

var menuOptions = []string{"One Game", "All Games", "Cached Games", "Global Stats", "Quit"}

// Run starts the interactive menu loop.
func (i *InteractiveCmd) Run(cli *CLI) error {
	if err := ensureAPIKey(); err != nil {
		return err
	}

	store := cachestore.New(config.CacheDir())
	account, err := chooseAccount(store)
	if err != nil {
		return err
	}

	session, err := newSession(account)
	if err != nil {
		return err
	}

	for {
		choice, err := tui.Menu("Select Mode", menuOptions)
		if err != nil {
			return err
		}
		if choice < 0 || menuOptions[choice] == "Quit" {
			return nil
		}

		if err := runAction(menuOptions[choice], session, store); err != nil {
			if errors.IsStopProcessingError(err) {
				continue
			}
			// Action failures end the action, not the program.
			slog.Error("Action failed", "action", menuOptions[choice], "error", err)
			fmt.Println(err.Error())
		}
	}
}

func runAction(action string, session *library.Session, store *cachestore.Store) error {
	switch action {
	case "One Game":
		return oneGameAction(session, store)
	case "All Games":
		return allGamesAction(session, store)
	case "Cached Games":
		return cachedGamesAction(session, store)
	case "Global Stats":
		return globalStatsAction(session, store)
	}
	return nil
}

func oneGameAction(session *library.Session, store *cachestore.Store) error {
	games, err := store.ReadSnapshot(session.Account)
	if err != nil {
		if errors.IsSnapshotNotFoundError(err) {
			fmt.Println(`No cached data for this account. Please run "All Games" mode first.`)
			return nil
		}
		return err
	}

	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}

	name, picked, err := tui.PickGame("Pick a game", names)
	if err != nil {
		return err
	}
	if !picked {
		return nil
	}

	text, err := refreshOneGame(session, store, name)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func allGamesAction(session *library.Session, store *cachestore.Store) error {
	err := tui.RunProgress("Fetching library", func(progress tui.ProgressFunc) error {
		return fetchAndReport(session, store, library.ProgressFunc(progress))
	})
	if err != nil {
		return err
	}

	fmt.Printf("You will find the formated stats in : %s\n", store.ReportPath(session.Account))
	return nil
}

func cachedGamesAction(session *library.Session, store *cachestore.Store) error {
	if !store.HasSnapshot(session.Account) {
		fmt.Println(`No cached data for this account. Please run "All Games" mode first.`)
		return nil
	}

	if err := rebuildReport(store, session.Account); err != nil {
		return err
	}

	fmt.Printf("You will find the formated stats in : %s\n", store.ReportPath(session.Account))
	return nil
}

func globalStatsAction(session *library.Session, store *cachestore.Store) error {
	lines, err := store.ReadReportTail(session.Account, 5)
	if err != nil {
		if errors.IsSnapshotNotFoundError(err) {
			fmt.Println(`No cached data for this account. Please run "All Games" mode first.`)
			return nil
		}
		return err
	}

	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// ensureAPIKey loads the API key from config or the environment, prompting
// for one and persisting it on first run.
func ensureAPIKey() error {
	if config.APIKey() != "" {
		return nil
	}

	key, err := tui.PromptValidated(
		"Enter your Steam API key (https://steamcommunity.com/dev/apikey)",
		config.ValidateAPIKey,
	)
	if err != nil {
		return err
	}
	return config.SetAPIKey(key)
}

// chooseAccount lets the user pick a cached account or register a new one.
func chooseAccount(store *cachestore.Store) (library.Account, error) {
	accounts, err := store.Accounts()
	if err != nil {
		return library.Account{}, err
	}

	options := make([]string, 0, len(accounts)+1)
	for _, a := range accounts {
		options = append(options, fmt.Sprintf("%s : %s", a.DisplayName, a.SteamID))
	}
	options = append(options, addAccountOption)

	choice, err := tui.Menu("Select account", options)
	if err != nil {
		return library.Account{}, err
	}
	if choice < 0 {
		return library.Account{}, errors.NewStopProcessingError("no account selected")
	}

	if options[choice] != addAccountOption {
		return accounts[choice], nil
	}

	return addAccount(store)
}

func addAccount(store *cachestore.Store) (library.Account, error) {
	name, err := tui.Prompt("Enter a name for the account (just for clarity, you can put whatever)")
	if err != nil {
		return library.Account{}, err
	}

	steamID, err := tui.PromptValidated("Enter the SteamID (17 digits)", func(s string) error {
		if !library.ValidSteamID(s) {
			return fmt.Errorf("a SteamID is 17 decimal digits")
		}
		return nil
	})
	if err != nil {
		return library.Account{}, err
	}

	account := library.Account{DisplayName: name, SteamID: steamID}
	if err := store.Register(account); err != nil {
		return library.Account{}, err
	}
	return account, nil
}
