package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/slowpitch-league/internal/domain/outbox"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
)

func testDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Workers:         2,
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		MaxInterval:     5 * time.Second,
	}
}

func queuedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(commissioner, draftedState(), nil)
	e.queue.Enqueue(outbox.Command{ID: "lineup-1", Kind: outbox.KindSaveLineup, SeasonID: "s1", Week: 1, TeamID: "t1", Night: stats.Monday, Players: []string{"p-a", "p-e"}})
	e.queue.Enqueue(outbox.Command{ID: "scores-1", Kind: outbox.KindSaveScores, SeasonID: "s1", Week: 1, Scores: []score.TeamScore{{TeamID: "t1", Score: 12}, {TeamID: "t2", Score: 9}}})
	e.queue.Enqueue(outbox.Command{ID: "advance-1", Kind: outbox.KindAdvanceWeek, SeasonID: "s1", Week: 1})
	return e
}

func TestDispatcher_FlushDeliversEveryLane(t *testing.T) {
	remote := newFakeRemote()
	e := queuedEngine(t)
	d := NewDispatcher(e, remote, testDispatchConfig(), logging.NewNop())

	report, err := d.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if report != (FlushReport{Delivered: 3}) {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(e.Pending()) != 0 {
		t.Fatalf("expected empty outbox, got %v", kinds(e.Pending()))
	}

	if len(remote.savedLines) != 1 {
		t.Fatalf("expected one lineup save, got %d", len(remote.savedLines))
	}
	saved := remote.savedLines[0]
	if saved.SeasonID != "s1" || saved.Week != 1 || saved.TeamID != "t1" || saved.Night != stats.Monday {
		t.Fatalf("unexpected lineup payload: %+v", saved)
	}
	if !reflect.DeepEqual(saved.PlayerIDs, []string{"p-a", "p-e"}) {
		t.Fatalf("unexpected lineup players: %v", saved.PlayerIDs)
	}
	if len(remote.savedScores) != 2 || remote.season.CurrentWeek != 2 {
		t.Fatalf("expected scores saved and week advanced, got %d scores week %d", len(remote.savedScores), remote.season.CurrentWeek)
	}
}

func TestDispatcher_FailureHoldsBackItsLaneOnly(t *testing.T) {
	remote := newFakeRemote()
	remote.failNext("SaveScores", ErrRemoteUnavailable)
	e := queuedEngine(t)
	d := NewDispatcher(e, remote, testDispatchConfig(), logging.NewNop())

	report, err := d.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if report != (FlushReport{Delivered: 1, Retrying: 1}) {
		t.Fatalf("unexpected report: %+v", report)
	}
	if remote.called("AdvanceWeek") != 0 {
		t.Fatalf("week must not advance before its scores are saved")
	}

	pending := e.Pending()
	if got := kinds(pending); !reflect.DeepEqual(got, []outbox.Kind{outbox.KindSaveScores, outbox.KindAdvanceWeek}) {
		t.Fatalf("unexpected remaining commands: %v", got)
	}
	scores := pending[0]
	if scores.Status != outbox.StatusPending || scores.Attempts != 1 || scores.LastError == "" {
		t.Fatalf("unexpected retry bookkeeping: %+v", scores)
	}
	if !scores.NextAttemptAt.Equal(testNow.Add(2 * time.Second)) {
		t.Fatalf("expected next attempt after initial interval, got %v", scores.NextAttemptAt)
	}

	again, err := d.Flush(context.Background())
	if err != nil {
		t.Fatalf("second Flush error: %v", err)
	}
	if again != (FlushReport{}) {
		t.Fatalf("command must wait for its next attempt, got %+v", again)
	}
}

func TestDispatcher_RejectedCommandFailsImmediately(t *testing.T) {
	remote := newFakeRemote()
	remote.failNext("SaveLineup", ErrRemoteRejected)
	e := queuedEngine(t)
	d := NewDispatcher(e, remote, testDispatchConfig(), logging.NewNop())

	report, err := d.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if report.Failed != 1 || report.Delivered != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	failed := e.queue.Failed()
	if len(failed) != 1 || failed[0].Kind != outbox.KindSaveLineup || failed[0].Status != outbox.StatusFailed {
		t.Fatalf("expected lineup save marked failed, got %+v", failed)
	}
}

func TestDispatcher_GivesUpAfterMaxAttempts(t *testing.T) {
	remote := newFakeRemote()
	remote.failNext("SaveLineup", ErrRemoteUnavailable, ErrRemoteUnavailable, ErrRemoteUnavailable)

	clock := testNow
	e := newTestEngine(commissioner, draftedState(), nil)
	e.now = func() time.Time { return clock }
	e.queue.Enqueue(outbox.Command{ID: "lineup-1", Kind: outbox.KindSaveLineup, SeasonID: "s1", Week: 1, TeamID: "t1", Night: stats.Friday})
	d := NewDispatcher(e, remote, testDispatchConfig(), logging.NewNop())

	var last FlushReport
	for i := 0; i < 3; i++ {
		report, err := d.Flush(context.Background())
		if err != nil {
			t.Fatalf("Flush %d error: %v", i, err)
		}
		last = report
		clock = clock.Add(time.Hour)
	}

	if last.Failed != 1 {
		t.Fatalf("expected terminal failure on the last attempt, got %+v", last)
	}
	if got := e.Pending(); len(got) != 1 || got[0].Status != outbox.StatusFailed || got[0].Attempts != 3 {
		t.Fatalf("unexpected command after giving up: %+v", got)
	}
}

func TestDispatcher_RetryDelay(t *testing.T) {
	d := NewDispatcher(newTestEngine(commissioner, draftedState(), nil), newFakeRemote(), testDispatchConfig(), logging.NewNop())

	testCases := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 1, want: 2 * time.Second},
		{attempts: 2, want: 4 * time.Second},
		{attempts: 3, want: 5 * time.Second},
		{attempts: 6, want: 5 * time.Second},
	}

	for _, tc := range testCases {
		if got := d.retryDelay(tc.attempts); got != tc.want {
			t.Fatalf("retryDelay(%d) = %v, want %v", tc.attempts, got, tc.want)
		}
	}
}

func TestDispatcher_CanceledContext(t *testing.T) {
	e := queuedEngine(t)
	d := NewDispatcher(e, newFakeRemote(), testDispatchConfig(), logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Flush(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled flush, got %v", err)
	}
	if len(e.Pending()) != 3 {
		t.Fatalf("canceled flush must not deliver anything")
	}
}

func TestDispatcher_SubmitFailureWaitsForAcceptedLanes(t *testing.T) {
	e := queuedEngine(t)
	d := NewDispatcher(e, newFakeRemote(), testDispatchConfig(), logging.NewNop())

	lanes := e.dueLanes(e.now())
	if len(lanes) < 2 {
		t.Fatalf("expected at least two lanes, got %d", len(lanes))
	}
	accepted := len(lanes[0])

	submitted := 0
	submit := func(task func()) error {
		submitted++
		if submitted > 1 {
			return ants.ErrPoolClosed
		}
		go func() {
			time.Sleep(20 * time.Millisecond)
			task()
		}()
		return nil
	}

	report, err := d.runLanes(context.Background(), lanes, submit)
	if !errors.Is(err, ants.ErrPoolClosed) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if report.Delivered != accepted {
		t.Fatalf("expected the accepted lane to finish before returning, got %+v", report)
	}
	if len(e.Pending()) != 3-accepted {
		t.Fatalf("expected %d pending, got %v", 3-accepted, kinds(e.Pending()))
	}
}
