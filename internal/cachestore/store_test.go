package cachestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avrillon/steamworth/internal/errors"
	"github.com/avrillon/steamworth/internal/library"
	"github.com/avrillon/steamworth/internal/steam"
	"github.com/avrillon/steamworth/internal/testutil"
)

var testAccount = library.Account{DisplayName: "alice", SteamID: "76561198000000001"}

func price(v float64) *float64 { return &v }

func sampleGames() []library.Game {
	return []library.Game{
		{OwnedGame: steam.OwnedGame{AppID: 220, Name: "Half-Life 2", PlaytimeForever: 1234}, Price: price(8.19)},
		{OwnedGame: steam.OwnedGame{AppID: 570, Name: "Dota 2", PlaytimeForever: 0}, Price: price(0)},
		{OwnedGame: steam.OwnedGame{AppID: 99999, Name: "Delisted Game", PlaytimeForever: 45}, Error: library.ErrNoStorePage},
	}
}

func TestRegister_Idempotent(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.Register(testAccount))
	require.NoError(t, store.Register(testAccount))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, testAccount, accounts[0])
}

func TestAccounts_EmptyRoot(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccounts_LegacyDirWithoutManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bob_76561198000000002"), 0755))

	store := New(root)
	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, library.Account{DisplayName: "bob", SteamID: "76561198000000002"}, accounts[0])
}

func TestAccounts_UnderscoreInDisplayName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "the_gamer_76561198000000003"), 0755))

	store := New(root)
	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "the_gamer", accounts[0].DisplayName)
	assert.Equal(t, "76561198000000003", accounts[0].SteamID)
}

func TestAccounts_SkipsMalformedEntries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "no-separator"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bad_id"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray-file"), []byte("x"), 0644))

	store := New(root)
	require.NoError(t, store.Register(testAccount))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, testAccount, accounts[0])
}

func TestAccounts_ManifestWinsOverDirName(t *testing.T) {
	root := t.TempDir()
	store := New(root)

	// A display name containing the separator: the directory name alone is
	// ambiguous, the manifest is not.
	account := library.Account{DisplayName: "under_score", SteamID: "76561198000000004"}
	require.NoError(t, store.Register(account))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "under_score", accounts[0].DisplayName)
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	games := sampleGames()

	require.NoError(t, store.WriteSnapshot(testAccount, games))

	got, err := store.ReadSnapshot(testAccount)
	require.NoError(t, err)
	assert.Equal(t, games, got)
}

func TestSnapshotRoundTrip_Empty(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.WriteSnapshot(testAccount, nil))

	got, err := store.ReadSnapshot(testAccount)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteSnapshot_Overwrites(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.WriteSnapshot(testAccount, sampleGames()))
	require.NoError(t, store.WriteSnapshot(testAccount, sampleGames()[:1]))

	got, err := store.ReadSnapshot(testAccount)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Half-Life 2", got[0].Name)
}

func TestReadSnapshot_NotFound(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.ReadSnapshot(testAccount)
	require.Error(t, err)
	assert.True(t, errors.IsSnapshotNotFoundError(err))
}

func TestHasSnapshot(t *testing.T) {
	store := New(t.TempDir())

	assert.False(t, store.HasSnapshot(testAccount))
	require.NoError(t, store.WriteSnapshot(testAccount, sampleGames()))
	assert.True(t, store.HasSnapshot(testAccount))
}

func TestSnapshotJSONSchema(t *testing.T) {
	root := t.TempDir()
	store := New(root)
	require.NoError(t, store.WriteSnapshot(testAccount, sampleGames()))

	data, err := os.ReadFile(filepath.Join(root, "alice_76561198000000001", "games_stats.json"))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"appid": 220`)
	assert.Contains(t, text, `"playtime_forever": 1234`)
	assert.Contains(t, text, `"price": 8.19`)
	assert.Contains(t, text, `"error": "No store page"`)
	assert.NotContains(t, text, `"price": null`, "absent price must be omitted, not null")
}

func TestSnapshotGolden(t *testing.T) {
	root := t.TempDir()
	store := New(root)
	require.NoError(t, store.WriteSnapshot(testAccount, sampleGames()))

	golden := testutil.NewGolden(t, "testdata")
	golden.AssertFile(
		filepath.Join(root, "alice_76561198000000001", "games_stats.json"),
		"snapshot.golden.json")
}

func TestReportWriteAndTail(t *testing.T) {
	store := New(t.TempDir())

	report := "line1\nline2\nline3\nline4\nline5\nline6\nline7\n"
	require.NoError(t, store.WriteReport(testAccount, report))

	tail, err := store.ReadReportTail(testAccount, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"line3", "line4", "line5", "line6", "line7"}, tail)
}

func TestReadReportTail_ShorterThanN(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.WriteReport(testAccount, "only\ntwo\n"))

	tail, err := store.ReadReportTail(testAccount, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"only", "two"}, tail)
}

func TestReadReportTail_Missing(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.ReadReportTail(testAccount, 5)
	require.Error(t, err)
	assert.True(t, errors.IsSnapshotNotFoundError(err))
}

func TestReportPath(t *testing.T) {
	store := New("cache")
	assert.Equal(t,
		filepath.Join("cache", "alice_76561198000000001", "formated_stats.txt"),
		store.ReportPath(testAccount))
}
