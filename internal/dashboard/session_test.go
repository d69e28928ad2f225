package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/app/overview"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/testutil"
)

type stubLoader struct {
	mu             sync.Mutex
	calls          map[string]int
	filters        []disputes.Filter
	months         []string
	fail           map[string]error
	disputeGate    chan struct{}
	disputeStarted chan struct{}
}

func newStubLoader() *stubLoader {
	return &stubLoader{calls: map[string]int{}, fail: map[string]error{}}
}

func (l *stubLoader) hit(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[name]++
	return l.fail[name]
}

func (l *stubLoader) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

func (l *stubLoader) Overview(context.Context) (overview.Summary, error) {
	if err := l.hit("overview"); err != nil {
		return overview.Summary{}, err
	}
	return overview.Summary{TotalQuestions: 61, PendingDisputes: 2}, nil
}

func (l *stubLoader) Content(context.Context) (ContentData, error) {
	return ContentData{}, l.hit("content")
}

func (l *stubLoader) Month(_ context.Context, month string) (calendar.MonthView, error) {
	l.mu.Lock()
	l.months = append(l.months, month)
	l.mu.Unlock()
	return calendar.MonthView{}, l.hit("calendar")
}

func (l *stubLoader) IngestRuns(context.Context) ([]RunSummary, error) {
	return []RunSummary{{ID: "run-1", State: "idle"}}, l.hit("ingest")
}

func (l *stubLoader) Users(context.Context) (users.Page, error) {
	return users.Page{}, l.hit("users")
}

func (l *stubLoader) PlayerGames(context.Context) (playergames.Page, error) {
	return playergames.Page{}, l.hit("games")
}

func (l *stubLoader) Disputes(_ context.Context, f disputes.Filter) (disputes.Page, error) {
	if l.disputeStarted != nil {
		l.disputeStarted <- struct{}{}
	}
	if l.disputeGate != nil {
		<-l.disputeGate
	}
	l.mu.Lock()
	l.filters = append(l.filters, f)
	l.mu.Unlock()
	return disputes.Page{Pagination: disputes.Pagination{Page: f.Page}}, l.hit("disputes")
}

func (l *stubLoader) Cron(context.Context) (CronData, error) {
	return CronData{}, l.hit("cron")
}

func (l *stubLoader) GuestConfig(context.Context) (guests.Config, error) {
	return guests.Default(), l.hit("guests")
}

func newTestSession() *Session {
	return NewSession("s-1", "2025-01", testutil.NowAt(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)), nil)
}

func TestTabsLoadOnceUntilInvalidated(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	ctx := context.Background()

	view, err := s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabUsers})
	if err != nil {
		t.Fatalf("select users: %v", err)
	}
	if view.Users.Status != Loaded || view.Overview.Status != NotLoaded {
		t.Fatalf("expected only users loaded, got users=%s overview=%s", view.Users.Status, view.Overview.Status)
	}

	s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabOverview})
	s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabUsers})
	if got := loader.count("users"); got != 1 {
		t.Fatalf("expected users loaded once, got %d", got)
	}

	s.Dispatch(ctx, loader, Event{Type: EventInvalidate})
	if got := loader.count("users"); got != 2 {
		t.Fatalf("expected reload after invalidate, got %d", got)
	}
}

func TestLoadFailureBecomesInlineMessage(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	loader.fail["overview"] = errors.New("db down")

	view, err := s.Dispatch(context.Background(), loader, Event{Type: EventInvalidate, Tab: TabOverview})
	if err != nil {
		t.Fatalf("expected no dispatch error, got %v", err)
	}
	if view.Overview.Status != Failed || view.Overview.Error != "db down" {
		t.Fatalf("expected failed overview, got %+v", view.Overview)
	}
	if !strings.Contains(view.Message, "db down") {
		t.Fatalf("expected inline message, got %q", view.Message)
	}

	// A failed tab is not retried until selected again or invalidated.
	s.Dispatch(context.Background(), loader, Event{Type: EventCloseOverlay})
	if loader.count("overview") != 1 {
		t.Fatalf("expected no automatic retry, got %d calls", loader.count("overview"))
	}

	view, _ = s.Dispatch(context.Background(), loader, Event{Type: EventDismissMessage})
	if view.Message != "" {
		t.Fatalf("expected message dismissed, got %q", view.Message)
	}
}

func TestNewSessionStartsNotLoaded(t *testing.T) {
	view := newTestSession().View()
	statuses := map[string]LoadStatus{
		"overview": view.Overview.Status,
		"content":  view.Content.Status,
		"calendar": view.Calendar.Status,
		"ingest":   view.Ingest.Status,
		"users":    view.Users.Status,
		"games":    view.Games.Status,
		"disputes": view.Disputes.Status,
		"cron":     view.Cron.Status,
		"guests":   view.Guests.Status,
	}
	for tab, status := range statuses {
		if status != NotLoaded {
			t.Fatalf("expected %s to start not-loaded, got %q", tab, status)
		}
	}
}

func TestFailedTabReloadsWhenSelectedAgain(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	ctx := context.Background()
	loader.fail["users"] = errors.New("db down")

	view, _ := s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabUsers})
	if view.Users.Status != Failed {
		t.Fatalf("expected users failed, got %s", view.Users.Status)
	}

	loader.mu.Lock()
	delete(loader.fail, "users")
	loader.mu.Unlock()

	s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabOverview})
	view, _ = s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabUsers})
	if got := loader.count("users"); got != 2 {
		t.Fatalf("expected users reloaded on reselect, got %d calls", got)
	}
	if view.Users.Status != Loaded || view.Message != "" {
		t.Fatalf("expected users loaded without message, got %s %q", view.Users.Status, view.Message)
	}

	s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabUsers})
	if got := loader.count("users"); got != 2 {
		t.Fatalf("expected loaded tab not refetched, got %d calls", got)
	}
}

func TestOpenPendingDisputesSetsFilter(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()

	view, err := s.Dispatch(context.Background(), loader, Event{Type: EventOpenPendingDisputes})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if view.Active != TabDisputes || view.DisputeFilter.Status != disputes.StatusPending {
		t.Fatalf("expected pending disputes tab, got %+v", view)
	}
	if len(loader.filters) != 1 || loader.filters[0].Status != disputes.StatusPending {
		t.Fatalf("expected pending filter passed to loader, got %+v", loader.filters)
	}

	view, _ = s.Dispatch(context.Background(), loader, Event{Type: EventSetDisputeFilter, Page: 2})
	if view.DisputeFilter.Status != "" || view.Disputes.Data.Pagination.Page != 2 {
		t.Fatalf("expected page 2 of all disputes, got %+v", view.DisputeFilter)
	}
}

func TestDisputesLoadIsSingleFlight(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	loader.disputeGate = make(chan struct{})
	loader.disputeStarted = make(chan struct{}, 4)

	done := make(chan View)
	go func() {
		v, _ := s.Dispatch(context.Background(), loader, Event{Type: EventSelectTab, Tab: TabDisputes})
		done <- v
	}()
	<-loader.disputeStarted

	// Changing the filter mid-flight does not start a second request.
	view, err := s.Dispatch(context.Background(), loader, Event{Type: EventSetDisputeFilter, Status: disputes.StatusRejected})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if view.Disputes.Status != Loading {
		t.Fatalf("expected loading while in flight, got %s", view.Disputes.Status)
	}
	close(loader.disputeGate)
	<-done

	if got := loader.count("disputes"); got != 1 {
		t.Fatalf("expected one request in flight, got %d", got)
	}
	if s.View().Disputes.Status != NotLoaded {
		t.Fatalf("expected stale list marked for reload, got %s", s.View().Disputes.Status)
	}

	s.Dispatch(context.Background(), loader, Event{Type: EventCloseOverlay})
	if got := loader.count("disputes"); got != 2 {
		t.Fatalf("expected reload with new filter, got %d", got)
	}
	if last := loader.filters[len(loader.filters)-1]; last.Status != disputes.StatusRejected {
		t.Fatalf("expected rejected filter, got %+v", last)
	}
}

func TestOverlayIsExclusiveAndClosedOnTabChange(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	ctx := context.Background()

	s.Dispatch(ctx, loader, Event{Type: EventOpenOverlay, Overlay: Overlay{Kind: OverlayDeleteUser, TargetID: "user-1"}})
	view, _ := s.Dispatch(ctx, loader, Event{Type: EventOpenOverlay, Overlay: Overlay{Kind: OverlaySendEmail, TargetID: "user-2"}})
	if view.Overlay.Kind != OverlaySendEmail || view.Overlay.TargetID != "user-2" {
		t.Fatalf("expected email overlay to replace delete, got %+v", view.Overlay)
	}

	view, _ = s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabGames})
	if view.Overlay.Kind != OverlayNone {
		t.Fatalf("expected overlay closed on tab change, got %+v", view.Overlay)
	}
}

func TestSetMonthReloadsCalendar(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	ctx := context.Background()

	s.Dispatch(ctx, loader, Event{Type: EventSelectTab, Tab: TabCalendar})
	view, err := s.Dispatch(ctx, loader, Event{Type: EventSetMonth, Month: "2024-12"})
	if err != nil {
		t.Fatalf("set month: %v", err)
	}
	if view.Month != "2024-12" {
		t.Fatalf("expected month updated, got %s", view.Month)
	}
	if len(loader.months) != 2 || loader.months[0] != "2025-01" || loader.months[1] != "2024-12" {
		t.Fatalf("unexpected month loads %+v", loader.months)
	}
}

func TestMalformedEventsAreRejected(t *testing.T) {
	s := newTestSession()
	loader := newStubLoader()
	cases := []Event{
		{Type: "explode"},
		{Type: EventSelectTab, Tab: "settings"},
		{Type: EventSetMonth, Month: "2025-13"},
		{Type: EventOpenOverlay, Overlay: Overlay{Kind: "confetti"}},
		{Type: EventSetDisputeFilter, Status: "maybe"},
	}
	for _, e := range cases {
		view, err := s.Dispatch(context.Background(), loader, e)
		if _, ok := domain.AsValidation(err); !ok {
			t.Fatalf("%+v: expected validation error, got %v", e, err)
		}
		if view.Active != TabOverview {
			t.Fatalf("%+v: expected state unchanged, got %s", e, view.Active)
		}
	}
	if len(loader.calls) != 0 {
		t.Fatalf("expected no loads for rejected events, got %+v", loader.calls)
	}
}

func TestManagerSessions(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := NewManager(clock, testutil.TodayAt("2025-01"), nil)

	s := m.Create()
	if s.View().Month != "2025-01" {
		t.Fatalf("expected month from clock, got %q", s.View().Month)
	}
	if got, err := m.Get(s.ID()); err != nil || got != s {
		t.Fatalf("expected session lookup, got %v %v", got, err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	now = now.Add(2 * time.Hour)
	m.Create()
	if removed := m.Sweep(time.Hour); removed != 1 || m.Len() != 1 {
		t.Fatalf("expected one idle session swept, removed=%d len=%d", removed, m.Len())
	}
	if err := m.Close(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected swept session gone, got %v", err)
	}
}
