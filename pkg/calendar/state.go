package calendar

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ViewMode selects the rendered window shape.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

var ErrUnknownToken = errors.New("unknown undo token")

// UndoToken identifies a pending optimistic change.
type UndoToken string

type overlayOp int

const (
	opCreate overlayOp = iota
	opUpdate
	opDelete
)

type overlay struct {
	op   overlayOp
	uid  string
	item Item
}

// State owns everything the calendar view depends on: the anchor date, the
// view mode, the two cached item lists, and the optimistic overlays pending
// server confirmation. The overlays are non-destructive: they shadow the
// cached lists until committed or rolled back, so a rollback is simply
// dropping the overlay.
//
// Refreshes are tagged with a monotonically increasing id; a completed
// refresh older than the latest issued one is discarded, so a slow stale
// fetch can never overwrite newer data.
type State struct {
	mu      sync.Mutex
	anchor  time.Time
	view    ViewMode
	filter  Filter
	events  []Item
	tasks   []Item
	pending map[UndoToken]overlay

	issuedRefresh    uint64
	completedRefresh uint64
}

func NewState(anchor time.Time) *State {
	return &State{
		anchor:  anchor,
		view:    ViewWeek,
		filter:  Filter{ShowEvents: true, ShowTasks: true},
		pending: make(map[UndoToken]overlay),
	}
}

func (s *State) Anchor() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor
}

func (s *State) View() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *State) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *State) SetAnchor(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anchor = date
}

func (s *State) SetView(view ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

func (s *State) SetFilter(filter Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// Step moves the anchor by delta periods: weeks in week view, calendar
// months in month view.
func (s *State) Step(delta int) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == ViewMonth {
		s.anchor = s.anchor.AddDate(0, delta, 0)
	} else {
		s.anchor = s.anchor.AddDate(0, 0, delta*7)
	}
	return s.anchor
}

// BeginRefresh issues a new refresh id. The caller passes it back to
// CompleteRefresh together with the fetched lists.
func (s *State) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issuedRefresh++
	return s.issuedRefresh
}

// CompleteRefresh installs the fetched lists unless a newer refresh was
// issued or completed in the meantime. Returns whether the result was kept.
func (s *State) CompleteRefresh(id uint64, events []Item, tasks []Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < s.issuedRefresh || id <= s.completedRefresh {
		return false
	}
	s.completedRefresh = id
	s.events = events
	s.tasks = tasks
	return true
}

// Items returns the merged, filtered item list with all pending optimistic
// changes applied on top of the cached lists.
func (s *State) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := Merge(s.events, s.tasks, s.filter)
	for _, ov := range s.pending {
		merged = applyOverlay(merged, ov, s.filter)
	}
	return merged
}

// ApplyOptimisticCreate shows the item immediately, before the server
// confirmed it. Commit replaces it with the authoritative version; Rollback
// removes it again.
func (s *State) ApplyOptimisticCreate(item Item) UndoToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := UndoToken(uuid.New().String())
	s.pending[token] = overlay{op: opCreate, uid: item.UID, item: item}
	return token
}

// ApplyOptimisticUpdate shadows the cached item with the given uid.
func (s *State) ApplyOptimisticUpdate(item Item) UndoToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := UndoToken(uuid.New().String())
	s.pending[token] = overlay{op: opUpdate, uid: item.UID, item: item}
	return token
}

// ApplyOptimisticDelete hides the cached item with the given uid.
func (s *State) ApplyOptimisticDelete(uid string) UndoToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := UndoToken(uuid.New().String())
	s.pending[token] = overlay{op: opDelete, uid: uid}
	return token
}

// Commit resolves a pending optimistic change with the server's answer and
// folds it into the cached lists. For creates and updates, authoritative is
// the server's version of the item (it may carry a server-assigned uid); for
// deletes it is ignored.
func (s *State) Commit(token UndoToken, authoritative *Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ov, ok := s.pending[token]
	if !ok {
		return ErrUnknownToken
	}
	delete(s.pending, token)

	switch ov.op {
	case opCreate:
		item := ov.item
		if authoritative != nil {
			item = *authoritative
		}
		if item.Kind == KindTask {
			s.tasks = append(s.tasks, item)
		} else {
			s.events = append(s.events, item)
		}
	case opUpdate:
		item := ov.item
		if authoritative != nil {
			item = *authoritative
		}
		s.events = replaceByUID(s.events, ov.uid, item)
		s.tasks = replaceByUID(s.tasks, ov.uid, item)
	case opDelete:
		s.events = removeByUID(s.events, ov.uid)
		s.tasks = removeByUID(s.tasks, ov.uid)
	}
	return nil
}

// Rollback drops a pending optimistic change, restoring the previous
// visible state.
func (s *State) Rollback(token UndoToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[token]; !ok {
		return ErrUnknownToken
	}
	delete(s.pending, token)
	return nil
}

func applyOverlay(items []Item, ov overlay, filter Filter) []Item {
	switch ov.op {
	case opCreate:
		if ov.item.Kind == KindEvent && !filter.ShowEvents {
			return items
		}
		if ov.item.Kind == KindTask && !filter.ShowTasks {
			return items
		}
		return append(items, ov.item)
	case opUpdate:
		out := make([]Item, 0, len(items))
		for _, it := range items {
			if it.UID == ov.uid {
				out = append(out, ov.item)
			} else {
				out = append(out, it)
			}
		}
		return out
	case opDelete:
		return removeByUID(items, ov.uid)
	}
	return items
}

func replaceByUID(items []Item, uid string, replacement Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.UID == uid {
			out = append(out, replacement)
		} else {
			out = append(out, it)
		}
	}
	return out
}

func removeByUID(items []Item, uid string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.UID != uid {
			out = append(out, it)
		}
	}
	return out
}
