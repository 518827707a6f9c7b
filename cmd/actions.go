package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avrillon/steamworth/internal/cachestore"
	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/library"
	"github.com/avrillon/steamworth/internal/report"
)

// fetchAndReport runs the full pipeline: fetch and enrich every owned game,
// overwrite the snapshot, rebuild the report. Nothing is persisted when the
// fetch aborts.
func fetchAndReport(session *library.Session, store *cachestore.Store, progress library.ProgressFunc) error {
	games, err := session.FetchLibrary(context.Background(), progress)
	if err != nil {
		return err
	}

	if err := store.WriteSnapshot(session.Account, games); err != nil {
		return err
	}
	if err := report.NewBuilder().Write(store, session.Account, games); err != nil {
		return err
	}

	slog.Info("Library fetched", "games", len(games), "report", store.ReportPath(session.Account))
	return nil
}

// rebuildReport re-renders the report from the cached snapshot.
func rebuildReport(store *cachestore.Store, account library.Account) error {
	games, err := store.ReadSnapshot(account)
	if err != nil {
		if errors.IsSnapshotNotFoundError(err) {
			return fmt.Errorf("no cached data for %q, run a full fetch first", account.DisplayName)
		}
		return err
	}

	if err := report.NewBuilder().Write(store, account, games); err != nil {
		return err
	}

	slog.Info("Report rebuilt", "report", store.ReportPath(account))
	return nil
}

// refreshOneGame re-enriches one cached game and returns its rendered stats.
func refreshOneGame(session *library.Session, store *cachestore.Store, name string) (string, error) {
	refreshed, err := session.RefreshGame(store, name)
	if err != nil {
		if errors.IsSnapshotNotFoundError(err) {
			return "", fmt.Errorf("no cached data for %q, run a full fetch first", session.Account.DisplayName)
		}
		return "", err
	}

	return report.NewBuilder().RenderGame(refreshed), nil
}
