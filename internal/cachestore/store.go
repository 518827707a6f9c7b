// Package cachestore persists per-account library snapshots and rendered
// reports under a flat cache directory.
//
// Layout:
//
//	<root>/<display_name>_<steam_id>/account.json       account manifest
//	<root>/<display_name>_<steam_id>/games_stats.json   enriched game list
//	<root>/<display_name>_<steam_id>/formated_stats.txt rendered report
//
// The directory name doubles as the legacy account key. The manifest is the
// authoritative identity for accounts registered by this version; directory
// name splitting remains as a fallback for caches written before it existed.
package cachestore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/library"
)

const (
	manifestFile = "account.json"
	snapshotFile = "games_stats.json"
	reportFile   = "formated_stats.txt"
)

// Store reads and writes the cache directory tree for all accounts.
type Store struct {
	root string
}

// New creates a Store rooted at the given cache directory. The directory is
// created lazily on the first write.
func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) accountDir(account library.Account) string {
	return filepath.Join(s.root, account.Key())
}

// Register creates the per-account cache directory and its manifest.
// Idempotent: re-registering an existing account rewrites the same manifest.
func (s *Store) Register(account library.Account) error {
	dir := s.accountDir(account)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create account cache directory: %w", err)
	}

	data, err := json.MarshalIndent(account, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal account manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write account manifest: %w", err)
	}
	return nil
}

// Accounts scans the cache root and returns all registered accounts.
// Identity comes from the manifest when present; older directories fall back
// to splitting the directory name on the last underscore, which requires the
// trailing segment to be a SteamID64. Entries matching neither are skipped
// with a warning.
func (s *Store) Accounts() ([]library.Account, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan cache directory: %w", err)
	}

	var accounts []library.Account
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if account, ok := s.readManifest(entry.Name()); ok {
			accounts = append(accounts, account)
			continue
		}

		account, ok := splitDirName(entry.Name())
		if !ok {
			slog.Warn("Skipping malformed cache directory", "dir", entry.Name())
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *Store) readManifest(dirName string) (library.Account, bool) {
	data, err := os.ReadFile(filepath.Join(s.root, dirName, manifestFile))
	if err != nil {
		return library.Account{}, false
	}
	var account library.Account
	if err := json.Unmarshal(data, &account); err != nil || !library.ValidSteamID(account.SteamID) {
		slog.Warn("Ignoring unreadable account manifest", "dir", dirName, "error", err)
		return library.Account{}, false
	}
	return account, true
}

// splitDirName recovers an account from a legacy directory name. Splitting
// happens on the last underscore so display names containing underscores
// survive as long as the ID segment is well formed.
func splitDirName(name string) (library.Account, bool) {
	sep := strings.LastIndex(name, "_")
	if sep <= 0 {
		return library.Account{}, false
	}
	displayName, steamID := name[:sep], name[sep+1:]
	if !library.ValidSteamID(steamID) {
		return library.Account{}, false
	}
	return library.Account{DisplayName: displayName, SteamID: steamID}, true
}

// WriteSnapshot serializes the enriched game list, fully overwriting any
// previous snapshot for the account.
func (s *Store) WriteSnapshot(account library.Account, games []library.Game) error {
	if err := os.MkdirAll(s.accountDir(account), 0755); err != nil {
		return fmt.Errorf("failed to create account cache directory: %w", err)
	}

	if games == nil {
		games = []library.Game{}
	}
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.accountDir(account), snapshotFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads the enriched game list for the account.
func (s *Store) ReadSnapshot(account library.Account) ([]library.Game, error) {
	data, err := os.ReadFile(filepath.Join(s.accountDir(account), snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSnapshotNotFoundError(account.Key())
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var games []library.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return games, nil
}

// HasSnapshot reports whether a snapshot was ever written for the account.
func (s *Store) HasSnapshot(account library.Account) bool {
	info, err := os.Stat(filepath.Join(s.accountDir(account), snapshotFile))
	return err == nil && !info.IsDir()
}

// WriteReport stores the rendered report text for the account.
func (s *Store) WriteReport(account library.Account, text string) error {
	if err := os.MkdirAll(s.accountDir(account), 0755); err != nil {
		return fmt.Errorf("failed to create account cache directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.accountDir(account), reportFile), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReportPath returns where the rendered report lives for the account.
func (s *Store) ReportPath(account library.Account) string {
	return filepath.Join(s.accountDir(account), reportFile)
}

// ReadReportTail returns the last n lines of the rendered report.
func (s *Store) ReadReportTail(account library.Account, n int) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.accountDir(account), reportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSnapshotNotFoundError(account.Key())
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
