package reset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/MyelinBots/journalbot-go/internal/db/repositories/daily_stat"
	"github.com/MyelinBots/journalbot-go/internal/services/journal"
)

// mockStatRepo is a simple in-memory daily stat repository for testing
type mockStatRepo struct {
	mu     sync.Mutex
	stats  map[string]*daily_stat.DailyStat
	nextID uint
}

func newMockStatRepo() *mockStatRepo {
	return &mockStatRepo{stats: make(map[string]*daily_stat.DailyStat)}
}

func key(userID uint, date string) string {
	return fmt.Sprintf("%d|%s", userID, date)
}

func (m *mockStatRepo) seed(userID uint, platformUserID, date string, total int, hasAccess bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.stats[key(userID, date)] = &daily_stat.DailyStat{
		ID:             m.nextID,
		UserID:         userID,
		PlatformUserID: platformUserID,
		Date:           date,
		TotalWords:     total,
		HasAccess:      hasAccess,
	}
}

func (m *mockStatRepo) AddWords(ctx context.Context, userID uint, platformUserID, date string, words int) (int, error) {
	return 0, nil
}

func (m *mockStatRepo) Get(ctx context.Context, userID uint, date string) (*daily_stat.DailyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stats[key(userID, date)]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *mockStatRepo) CompareAndSetAccess(ctx context.Context, userID uint, date string, expected, desired bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[key(userID, date)]
	if !ok || s.HasAccess != expected {
		return false, nil
	}
	s.HasAccess = desired
	return true, nil
}

func (m *mockStatRepo) ListWithAccess(ctx context.Context) ([]*daily_stat.DailyStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*daily_stat.DailyStat
	for _, s := range m.stats {
		if s.HasAccess {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeController records revoke calls and mirrors the real controller's flag
// handling: clear the flag only when the external call succeeded
type fakeController struct {
	mu      sync.Mutex
	stats   *mockStatRepo
	revoked []string
	failFor map[string]error
}

func newFakeController(stats *mockStatRepo) *fakeController {
	return &fakeController{stats: stats, failFor: make(map[string]error)}
}

func (f *fakeController) HandleEntry(ctx context.Context, entry journal.Entry) error { return nil }

func (f *fakeController) HasAccessToday(ctx context.Context, platformUserID string) (bool, error) {
	return false, nil
}

func (f *fakeController) Today() string { return "" }

func (f *fakeController) RevokeAccess(ctx context.Context, stat *daily_stat.DailyStat) error {
	f.mu.Lock()
	err := f.failFor[stat.PlatformUserID]
	f.mu.Unlock()
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.revoked = append(f.revoked, stat.PlatformUserID)
	f.mu.Unlock()
	_, cerr := f.stats.CompareAndSetAccess(ctx, stat.UserID, stat.Date, true, false)
	return cerr
}

func (f *fakeController) revokeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.revoked)
}

func newTestReset(stats *mockStatRepo, controller journal.Controller) *DailyReset {
	r := NewDailyReset(stats, controller, time.UTC, zap.NewNop())
	r.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestRunResetRevokesAllHolders(t *testing.T) {
	stats := newMockStatRepo()
	stats.seed(1, "user-1", "2025-03-10", 600, true)
	stats.seed(2, "user-2", "2025-03-10", 550, true)
	stats.seed(3, "user-3", "2025-03-10", 100, false)

	controller := newFakeController(stats)
	r := newTestReset(stats, controller)

	r.RunReset(context.Background())

	if got := controller.revokeCount(); got != 2 {
		t.Fatalf("revoke calls = %d, want 2", got)
	}
	remaining, _ := stats.ListWithAccess(context.Background())
	if len(remaining) != 0 {
		t.Fatalf("%d access flags still set after reset", len(remaining))
	}
}

func TestRunResetIdempotent(t *testing.T) {
	stats := newMockStatRepo()
	stats.seed(1, "user-1", "2025-03-10", 600, true)

	controller := newFakeController(stats)
	r := newTestReset(stats, controller)
	ctx := context.Background()

	r.RunReset(ctx)
	r.RunReset(ctx)

	// Exactly one external revoke per previously-true user across both runs.
	if got := controller.revokeCount(); got != 1 {
		t.Fatalf("revoke calls across two runs = %d, want 1", got)
	}
	remaining, _ := stats.ListWithAccess(ctx)
	if len(remaining) != 0 {
		t.Fatal("access flags set after double reset")
	}
}

func TestRunResetContinuesPastFailures(t *testing.T) {
	stats := newMockStatRepo()
	stats.seed(1, "user-1", "2025-03-10", 600, true)
	stats.seed(2, "user-2", "2025-03-10", 550, true)
	stats.seed(3, "user-3", "2025-03-10", 700, true)

	controller := newFakeController(stats)
	controller.failFor["user-2"] = errors.New("discord unavailable")
	r := newTestReset(stats, controller)

	r.RunReset(context.Background())

	if got := controller.revokeCount(); got != 2 {
		t.Fatalf("revoke calls = %d, want 2 despite one failure", got)
	}
	remaining, _ := stats.ListWithAccess(context.Background())
	if len(remaining) != 1 || remaining[0].PlatformUserID != "user-2" {
		t.Fatalf("only the failed user should keep the flag, got %d rows", len(remaining))
	}
}

func TestRunResetPicksUpStaleDates(t *testing.T) {
	stats := newMockStatRepo()
	// Left over from a missed run two days ago.
	stats.seed(1, "user-1", "2025-03-08", 600, true)

	controller := newFakeController(stats)
	r := newTestReset(stats, controller)

	r.RunReset(context.Background())

	if got := controller.revokeCount(); got != 1 {
		t.Fatalf("revoke calls = %d, want 1 for stale-date holder", got)
	}
}

func TestCatchUpDue(t *testing.T) {
	ctx := context.Background()

	stats := newMockStatRepo()
	controller := newFakeController(stats)
	r := newTestReset(stats, controller)

	due, err := r.catchUpDue(ctx)
	if err != nil || due {
		t.Fatalf("empty store: due=%v err=%v, want false/nil", due, err)
	}

	// Today's holders are fine; no catch-up needed.
	stats.seed(1, "user-1", "2025-03-10", 600, true)
	due, _ = r.catchUpDue(ctx)
	if due {
		t.Fatal("catch-up reported due for a current-date holder")
	}

	// A holder from before today means a boundary fired without a run.
	stats.seed(2, "user-2", "2025-03-09", 600, true)
	due, _ = r.catchUpDue(ctx)
	if !due {
		t.Fatal("catch-up not reported for a stale holder")
	}
}
