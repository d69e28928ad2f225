package dashboard

import (
	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
	"github.com/preston-bernstein/trivia-admin-service/internal/domain/disputes"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

// Tab is a dashboard section.
type Tab string

const (
	TabOverview Tab = "overview"
	TabContent  Tab = "content"
	TabCalendar Tab = "calendar"
	TabIngest   Tab = "ingest"
	TabUsers    Tab = "users"
	TabGames    Tab = "games"
	TabDisputes Tab = "disputes"
	TabCron     Tab = "cron"
	TabGuests   Tab = "guests"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabOverview, TabContent, TabCalendar, TabIngest, TabUsers, TabGames, TabDisputes, TabCron, TabGuests}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	for _, known := range Tabs {
		if t == known {
			return true
		}
	}
	return false
}

// OverlayKind names the modal currently open. At most one is open.
type OverlayKind string

const (
	OverlayNone                OverlayKind = ""
	OverlayEditGame            OverlayKind = "edit-game"
	OverlayDeleteGame          OverlayKind = "delete-game"
	OverlayDeleteUser          OverlayKind = "delete-user"
	OverlaySendEmail           OverlayKind = "send-email"
	OverlayDeleteQuestionRange OverlayKind = "delete-question-range"
	OverlayFetchDate           OverlayKind = "fetch-date"
	OverlayViewDate            OverlayKind = "view-date"
)

func (k OverlayKind) valid() bool {
	switch k {
	case OverlayEditGame, OverlayDeleteGame, OverlayDeleteUser, OverlaySendEmail,
		OverlayDeleteQuestionRange, OverlayFetchDate, OverlayViewDate:
		return true
	}
	return false
}

// Overlay is the open modal and what it acts on.
type Overlay struct {
	Kind     OverlayKind `json:"kind"`
	TargetID string      `json:"targetId,omitempty"`
}

// EventType names a session update.
type EventType string

const (
	EventSelectTab           EventType = "select-tab"
	EventOpenPendingDisputes EventType = "open-pending-disputes"
	EventSetDisputeFilter    EventType = "set-dispute-filter"
	EventOpenOverlay         EventType = "open-overlay"
	EventCloseOverlay        EventType = "close-overlay"
	EventInvalidate          EventType = "invalidate"
	EventSetMonth            EventType = "set-month"
	EventDismissMessage      EventType = "dismiss-message"
)

// Event is one update to a session.
type Event struct {
	Type    EventType       `json:"type" validate:"required"`
	Tab     Tab             `json:"tab,omitempty"`
	Status  disputes.Status `json:"status,omitempty"`
	Page    int             `json:"page,omitempty" validate:"min=0"`
	Overlay Overlay         `json:"overlay,omitempty"`
	Month   string          `json:"month,omitempty"`
}

// reduce applies e to the session state; callers hold the session lock.
// It never performs I/O.
func (s *Session) reduce(e Event) error {
	switch e.Type {
	case EventSelectTab:
		if !e.Tab.Valid() {
			return domain.Invalid("unknown tab %q", e.Tab)
		}
		s.active = e.Tab
		s.overlay = Overlay{}
		s.message = ""
		s.resource(e.Tab).retryFailed()
	case EventOpenPendingDisputes:
		s.active = TabDisputes
		s.overlay = Overlay{}
		s.message = ""
		s.disputeFilter = disputes.Filter{Status: disputes.StatusPending, Page: 1, PageSize: s.disputeFilter.PageSize}
		s.disputes.invalidate()
	case EventSetDisputeFilter:
		if e.Status != "" && !e.Status.Valid() {
			return domain.Invalid("unknown dispute status %q", e.Status)
		}
		page := e.Page
		if page < 1 {
			page = 1
		}
		s.disputeFilter.Status = e.Status
		s.disputeFilter.Page = page
		s.disputes.invalidate()
	case EventOpenOverlay:
		if !e.Overlay.Kind.valid() {
			return domain.Invalid("unknown overlay %q", e.Overlay.Kind)
		}
		s.overlay = e.Overlay
	case EventCloseOverlay:
		s.overlay = Overlay{}
	case EventInvalidate:
		tab := e.Tab
		if tab == "" {
			tab = s.active
		}
		if !tab.Valid() {
			return domain.Invalid("unknown tab %q", e.Tab)
		}
		s.invalidate(tab)
	case EventSetMonth:
		if _, _, err := timeutil.ParseYearMonth(e.Month); err != nil {
			return domain.Invalid("month must be YYYY-MM")
		}
		s.month = e.Month
		s.calendar.invalidate()
	case EventDismissMessage:
		s.message = ""
	default:
		return domain.Invalid("unknown event %q", e.Type)
	}
	return nil
}
