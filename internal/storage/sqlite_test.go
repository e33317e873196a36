package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveMatchAndMatchByID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(MatchResult{
		GameID:        "arena2",
		Players:       2,
		Rounds:        4,
		Winner:        1,
		DurationTicks: 7200,
		Scores:        []int{1, 3},
	})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated match ID %q is not a UUID: %v", id, err)
	}

	got, err := store.MatchByID(id)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}
	if got.GameID != "arena2" || got.Players != 2 || got.Rounds != 4 || got.Winner != 1 {
		t.Errorf("unexpected match %+v", got)
	}
	if got.EndReason != EndCompleted {
		t.Errorf("EndReason = %q, want %q", got.EndReason, EndCompleted)
	}
	if got.DurationTicks != 7200 {
		t.Errorf("DurationTicks = %d, want 7200", got.DurationTicks)
	}
	if len(got.Scores) != 2 || got.Scores[0] != 1 || got.Scores[1] != 3 {
		t.Errorf("Scores = %v, want [1 3]", got.Scores)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSaveMatchDuplicateID(t *testing.T) {
	store := openTestStore(t)

	r := MatchResult{MatchID: "fixed-id", GameID: "arena", Players: 1, Rounds: 1, Winner: NoWinner}
	if _, err := store.SaveMatch(r); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if _, err := store.SaveMatch(r); err == nil {
		t.Error("expected an error for a duplicate match ID")
	}
}

func TestDrawStoresNoWinner(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveMatch(MatchResult{GameID: "arena", Players: 3, Rounds: 4, Winner: NoWinner, Scores: []int{2, 2, 0}})
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	got, err := store.MatchByID(id)
	if err != nil || got == nil {
		t.Fatalf("MatchByID() = %v, %v", got, err)
	}
	if got.Winner != NoWinner {
		t.Errorf("Winner = %d, want NoWinner", got.Winner)
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"arena", "arena2", "arena", "arena"} {
		if _, err := store.SaveMatch(MatchResult{GameID: game, Players: 1, Rounds: i + 1, Winner: 0, Scores: []int{i}}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		gameID string
		limit  int
		rounds []int
	}{
		{"all games", "", 0, []int{4, 3, 2, 1}},
		{"one game", "arena", 0, []int{4, 3, 1}},
		{"limited", "arena", 2, []int{4, 3}},
		{"unknown game", "pong", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.RecentMatches(tt.gameID, tt.limit)
			if err != nil {
				t.Fatalf("RecentMatches() failed: %v", err)
			}
			if len(got) != len(tt.rounds) {
				t.Fatalf("got %d matches, want %d", len(got), len(tt.rounds))
			}
			for i, r := range got {
				if r.Rounds != tt.rounds[i] {
					t.Errorf("match %d has %d rounds, want %d", i, r.Rounds, tt.rounds[i])
				}
				if len(r.Scores) != 1 || r.Scores[0] != r.Rounds-1 {
					t.Errorf("match %d scores = %v", i, r.Scores)
				}
			}
		})
	}
}

func TestWins(t *testing.T) {
	store := openTestStore(t)

	winners := []int{2, 0, 2, NoWinner, 1, 2, 0}
	for _, w := range winners {
		if _, err := store.SaveMatch(MatchResult{GameID: "arena3", Players: 3, Rounds: 4, Winner: w}); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}
	if _, err := store.SaveMatch(MatchResult{GameID: "arena", Players: 1, Rounds: 4, Winner: 0}); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	got, err := store.Wins("arena3")
	if err != nil {
		t.Fatalf("Wins() failed: %v", err)
	}
	want := []SlotWins{{Slot: 2, Wins: 3}, {Slot: 0, Wins: 2}, {Slot: 1, Wins: 1}}
	if len(got) != len(want) {
		t.Fatalf("Wins() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Wins()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("arena")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Matches != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, r := range []MatchResult{
		{GameID: "arena", Players: 2, Rounds: 4, Winner: 0},
		{GameID: "arena", Players: 2, Rounds: 2, Winner: NoWinner},
	} {
		if _, err := store.SaveMatch(r); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	stats, err := store.GetGameStats("arena")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Matches != 2 || stats.Draws != 1 || stats.AvgRounds != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
