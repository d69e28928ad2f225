package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/preston-bernstein/trivia-admin-service/internal/app/content"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/overview"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/playergames"
	"github.com/preston-bernstein/trivia-admin-service/internal/app/users"
	"github.com/preston-bernstein/trivia-admin-service/internal/calendar"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/cronlogs"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/guests"
	"github.com/preston-bernstein/trivia-admin-service/internal/logging"
	"github.com/preston-bernstein/trivia-admin-service/internal/store"
)

// ContentData backs the content tab.
type ContentData struct {
	Questions  content.Page            `json:"questions"`
	Categories []store.CategorySummary `json:"categories"`
}

// RunSummary is one batch run as shown on the ingest tab.
type RunSummary struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	Candidates int    `json:"candidates"`
	Selected   int    `json:"selected"`
	Message    string `json:"message,omitempty"`
}

// CronJob is a registered scheduled job.
type CronJob struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// CronData backs the cron tab.
type CronData struct {
	Jobs []CronJob        `json:"jobs"`
	Runs []cronlogs.Entry `json:"runs"`
}

// Loader fetches the data behind each tab.
type Loader interface {
	Overview(ctx context.Context) (overview.Summary, error)
	Content(ctx context.Context) (ContentData, error)
	Month(ctx context.Context, month string) (calendar.MonthView, error)
	IngestRuns(ctx context.Context) ([]RunSummary, error)
	Users(ctx context.Context) (users.Page, error)
	PlayerGames(ctx context.Context) (playergames.Page, error)
	Disputes(ctx context.Context, f disputes.Filter) (disputes.Page, error)
	Cron(ctx context.Context) (CronData, error)
	GuestConfig(ctx context.Context) (guests.Config, error)
}

// View is a point-in-time copy of a session.
type View struct {
	ID            string                       `json:"id"`
	Active        Tab                          `json:"active"`
	Overlay       Overlay                      `json:"overlay"`
	Message       string                       `json:"message,omitempty"`
	Month         string                       `json:"month"`
	DisputeFilter DisputeFilterView            `json:"disputeFilter"`
	Overview      Resource[overview.Summary]   `json:"overview"`
	Content       Resource[ContentData]        `json:"content"`
	Calendar      Resource[calendar.MonthView] `json:"calendar"`
	Ingest        Resource[[]RunSummary]       `json:"ingest"`
	Users         Resource[users.Page]         `json:"users"`
	Games         Resource[playergames.Page]   `json:"games"`
	Disputes      Resource[disputes.Page]      `json:"disputes"`
	Cron          Resource[CronData]           `json:"cron"`
	Guests        Resource[guests.Config]      `json:"guests"`
}

// DisputeFilterView is the dispute filter as rendered.
type DisputeFilterView struct {
	Status disputes.Status `json:"status,omitempty"`
	Page   int             `json:"page"`
}

// Session is one admin's dashboard state. Each tab's data is fetched the
// first time the tab is shown and kept until invalidated.
type Session struct {
	mu     sync.Mutex
	id     string
	now    func() time.Time
	logger *slog.Logger

	active        Tab
	overlay       Overlay
	message       string
	month         string
	disputeFilter disputes.Filter

	overview Resource[overview.Summary]
	content  Resource[ContentData]
	calendar Resource[calendar.MonthView]
	ingest   Resource[[]RunSummary]
	users    Resource[users.Page]
	games    Resource[playergames.Page]
	disputes Resource[disputes.Page]
	cron     Resource[CronData]
	guests   Resource[guests.Config]

	disputesInFlight atomic.Bool
	touched          time.Time
}

// NewSession starts on the overview tab with the calendar on month.
func NewSession(id, month string, now func() time.Time, logger *slog.Logger) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		id:            id,
		now:           now,
		logger:        logger,
		active:        TabOverview,
		month:         month,
		disputeFilter: disputes.Filter{Page: 1},
		touched:       now(),
	}
	for _, tab := range Tabs {
		s.resource(tab).reset()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Dispatch applies e and loads the active tab when it has not been
// fetched yet. Load failures are reported on the view's Message and on the
// resource; only malformed events return an error.
func (s *Session) Dispatch(ctx context.Context, loader Loader, e Event) (View, error) {
	s.mu.Lock()
	s.touched = s.now()
	if err := s.reduce(e); err != nil {
		s.mu.Unlock()
		return s.View(), err
	}
	load := s.beginLoad()
	s.mu.Unlock()

	if load != nil {
		load(ctx, loader)
	}
	return s.View(), nil
}

// View returns a snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:      s.id,
		Active:  s.active,
		Overlay: s.overlay,
		Message: s.message,
		Month:   s.month,
		DisputeFilter: DisputeFilterView{
			Status: s.disputeFilter.Status,
			Page:   s.disputeFilter.Page,
		},
		Overview: s.overview,
		Content:  s.content,
		Calendar: s.calendar,
		Ingest:   s.ingest,
		Users:    s.users,
		Games:    s.games,
		Disputes: s.disputes,
		Cron:     s.cron,
		Guests:   s.guests,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *Session) invalidate(tab Tab) {
	if r := s.resource(tab); r != nil {
		r.invalidate()
	}
}

// resource returns the dataset owned by tab, or nil for an unknown tab.
func (s *Session) resource(tab Tab) resettable {
	switch tab {
	case TabOverview:
		return &s.overview
	case TabContent:
		return &s.content
	case TabCalendar:
		return &s.calendar
	case TabIngest:
		return &s.ingest
	case TabUsers:
		return &s.users
	case TabGames:
		return &s.games
	case TabDisputes:
		return &s.disputes
	case TabCron:
		return &s.cron
	case TabGuests:
		return &s.guests
	}
	return nil
}

type loadFunc func(ctx context.Context, loader Loader)

// beginLoad marks the active tab's resource as loading and returns the
// fetch to run outside the lock, or nil when nothing needs loading.
func (s *Session) beginLoad() loadFunc {
	switch s.active {
	case TabOverview:
		return startLoad(s, &s.overview, func(ctx context.Context, l Loader) (overview.Summary, error) {
			return l.Overview(ctx)
		})
	case TabContent:
		return startLoad(s, &s.content, func(ctx context.Context, l Loader) (ContentData, error) {
			return l.Content(ctx)
		})
	case TabCalendar:
		month := s.month
		return startLoad(s, &s.calendar, func(ctx context.Context, l Loader) (calendar.MonthView, error) {
			return l.Month(ctx, month)
		})
	case TabIngest:
		return startLoad(s, &s.ingest, func(ctx context.Context, l Loader) ([]RunSummary, error) {
			return l.IngestRuns(ctx)
		})
	case TabUsers:
		return startLoad(s, &s.users, func(ctx context.Context, l Loader) (users.Page, error) {
			return l.Users(ctx)
		})
	case TabGames:
		return startLoad(s, &s.games, func(ctx context.Context, l Loader) (playergames.Page, error) {
			return l.PlayerGames(ctx)
		})
	case TabDisputes:
		return s.beginDisputesLoad()
	case TabCron:
		return startLoad(s, &s.cron, func(ctx context.Context, l Loader) (CronData, error) {
			return l.Cron(ctx)
		})
	case TabGuests:
		return startLoad(s, &s.guests, func(ctx context.Context, l Loader) (guests.Config, error) {
			return l.GuestConfig(ctx)
		})
	}
	return nil
}

// startLoad must be called with s.mu held.
func startLoad[T any](s *Session, res *Resource[T], fetch func(context.Context, Loader) (T, error)) loadFunc {
	if !res.NeedsLoad() {
		return nil
	}
	res.start()
	tab := s.active
	return func(ctx context.Context, l Loader) {
		data, err := fetch(ctx, l)
		s.mu.Lock()
		defer s.mu.Unlock()
		finish(s, tab, res, data, err)
	}
}

// beginDisputesLoad guards the dispute list with a single in-flight flag.
// A filter change during a fetch marks the list stale once it lands.
func (s *Session) beginDisputesLoad() loadFunc {
	if !s.disputes.NeedsLoad() {
		return nil
	}
	if !s.disputesInFlight.CompareAndSwap(false, true) {
		return nil
	}
	s.disputes.start()
	filter := s.disputeFilter
	return func(ctx context.Context, l Loader) {
		defer s.disputesInFlight.Store(false)
		page, err := l.Disputes(ctx, filter)
		s.mu.Lock()
		defer s.mu.Unlock()
		finish(s, TabDisputes, &s.disputes, page, err)
		if s.disputeFilter.Status != filter.Status || s.disputeFilter.Page != filter.Page {
			s.disputes.Status = NotLoaded
		}
	}
}

// finish must be called with s.mu held.
func finish[T any](s *Session, tab Tab, res *Resource[T], data T, err error) {
	if err != nil {
		res.fail(err)
		s.message = fmt.Sprintf("Failed to load %s: %v", tab, err)
		logging.Warn(s.logger, "dashboard load failed", logging.FieldSessionID, s.id, "tab", string(tab), logging.FieldError, err)
		return
	}
	res.succeed(data, s.now())
}
