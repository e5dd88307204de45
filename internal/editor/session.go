package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	pkblocks "github.com/goliatone/go-pagekit/blocks"
	"github.com/goliatone/go-pagekit/internal/blocks"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/pages"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// RowState is the UI state of one editor row. The zero value is expanded
// with styles hidden.
type RowState struct {
	Collapsed   bool `json:"collapsed"`
	StylesShown bool `json:"stylesShown"`
}

// SessionState is a point in time copy of a session.
type SessionState struct {
	ID         string              `json:"id"`
	PageID     uuid.UUID           `json:"pageId"`
	Handle     string              `json:"handle"`
	Content    []blocks.Block      `json:"content"`
	Breakpoint blocks.Breakpoint   `json:"breakpoint"`
	Rows       map[string]RowState `json:"rows"`
	Dirty      bool                `json:"dirty"`
	OpenedAt   time.Time           `json:"openedAt"`
	SavedAt    *time.Time          `json:"savedAt,omitempty"`
}

// Session is a single-writer working copy of a page tree. Operations are
// applied in the order they arrive; nothing is persisted until Save.
type Session struct {
	mu         sync.Mutex
	id         string
	pageID     uuid.UUID
	handle     string
	tree       []blocks.Block
	breakpoint blocks.Breakpoint
	rows       map[string]RowState
	dirty      bool
	openedAt   time.Time
	savedAt    *time.Time
	editor     *Editor
}

func newSession(id string, page *pages.Page, editor *Editor, now time.Time) *Session {
	tree := pkblocks.CloneAll(page.Content)
	if tree == nil {
		tree = []blocks.Block{}
	}
	return &Session{
		id:         id,
		pageID:     page.ID,
		handle:     page.Handle,
		tree:       tree,
		breakpoint: blocks.BreakpointDesktop,
		rows:       map[string]RowState{},
		openedAt:   now,
		editor:     editor,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) PageID() uuid.UUID {
	return s.pageID
}

// State returns a copy of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make(map[string]RowState, len(s.rows))
	for id, row := range s.rows {
		rows[id] = row
	}
	content := pkblocks.CloneAll(s.tree)
	if content == nil {
		content = []blocks.Block{}
	}
	return SessionState{
		ID:         s.id,
		PageID:     s.pageID,
		Handle:     s.handle,
		Content:    content,
		Breakpoint: s.breakpoint,
		Rows:       rows,
		Dirty:      s.dirty,
		OpenedAt:   s.openedAt,
		SavedAt:    s.savedAt,
	}
}

// SetBreakpoint selects the breakpoint style edits are scoped to.
func (s *Session) SetBreakpoint(bp blocks.Breakpoint) error {
	parsed, ok := pkblocks.ParseBreakpoint(string(bp))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidBreakpoint, bp)
	}
	s.mu.Lock()
	s.breakpoint = parsed
	s.mu.Unlock()
	return nil
}

// Row returns the row state of blockID.
func (s *Session) Row(blockID string) RowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[blockID]
}

// ToggleCollapsed flips the collapsed flag of a row.
func (s *Session) ToggleCollapsed(blockID string) RowState {
	return s.updateRow(blockID, func(row *RowState) { row.Collapsed = !row.Collapsed })
}

// ToggleStyles flips the styles panel of a row.
func (s *Session) ToggleStyles(blockID string) RowState {
	return s.updateRow(blockID, func(row *RowState) { row.StylesShown = !row.StylesShown })
}

func (s *Session) updateRow(blockID string, fn func(*RowState)) RowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[blockID]
	fn(&row)
	if row == (RowState{}) {
		delete(s.rows, blockID)
	} else {
		s.rows[blockID] = row
	}
	return row
}

// Apply runs ops in order and stops at the first failure. Ops before the
// failing one stay applied; the count of applied ops is returned.
func (s *Session) Apply(ops ...Op) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, op := range ops {
		next, err := s.editor.Apply(s.tree, op, s.breakpoint)
		if err != nil {
			return i, fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
		s.tree = next
		s.dirty = true
	}
	return len(ops), nil
}

// ContentSaver persists the whole content tree of a page.
type ContentSaver func(ctx context.Context, pageID uuid.UUID, content []blocks.Block) error

// Save writes the whole tree to the page. With a nil saver the content goes
// straight to service.Update; otherwise saver writes it and the page is
// reloaded. On failure the working copy is kept so the caller can retry.
func (s *Session) Save(ctx context.Context, service pages.Service, saver ContentSaver, now time.Time) (*pages.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content := pkblocks.CloneAll(s.tree)
	if content == nil {
		content = []blocks.Block{}
	}

	var (
		page *pages.Page
		err  error
	)
	if saver == nil {
		page, err = service.Update(ctx, pages.UpdatePageRequest{ID: s.pageID, Content: &content})
	} else if err = saver(ctx, s.pageID, content); err == nil {
		page, err = service.Get(ctx, s.pageID)
	}
	if err != nil {
		return nil, err
	}
	s.handle = page.Handle
	s.dirty = false
	saved := now
	s.savedAt = &saved
	return page, nil
}

// StoreOption configures a SessionStore.
type StoreOption func(*SessionStore)

// WithStoreClock overrides the session clock.
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *SessionStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger interfaces.Logger) StoreOption {
	return func(s *SessionStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContentSaver routes Save through saver instead of the page service.
func WithContentSaver(saver ContentSaver) StoreOption {
	return func(s *SessionStore) {
		s.saver = saver
	}
}

// WithSessionIDs overrides how session ids are minted.
func WithSessionIDs(generator func() string) StoreOption {
	return func(s *SessionStore) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// SessionStore keeps open sessions in memory. Sessions idle for longer than
// the ttl are dropped together with their unsaved changes.
type SessionStore struct {
	sessions *gocache.Cache
	pages    pages.Service
	editor   *Editor
	saver    ContentSaver
	now      func() time.Time
	newID    func() string
	logger   interfaces.Logger
}

// NewSessionStore returns a store loading pages through service.
func NewSessionStore(service pages.Service, editor *Editor, ttl time.Duration, opts ...StoreOption) *SessionStore {
	if editor == nil {
		editor = New()
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &SessionStore{
		sessions: gocache.New(ttl, ttl),
		pages:    service,
		editor:   editor,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open loads the page and starts a session over its content. A load failure
// opens nothing.
func (s *SessionStore) Open(ctx context.Context, pageID uuid.UUID) (*Session, error) {
	if pageID == uuid.Nil {
		return nil, ErrSessionPageRequired
	}
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		s.logger.WithContext(ctx).Warn("editor.session.load_failed", "page_id", pageID.String(), "error", err)
		return nil, err
	}
	session := newSession(s.newID(), page, s.editor, s.now().UTC())
	s.sessions.SetDefault(session.id, session)
	logging.WithSessionContext(logging.WithPageContext(s.logger.WithContext(ctx), page.ID.String(), page.Handle), session.id).
		Info("editor.session.opened", "blocks", pkblocks.Count(page.Content))
	return session, nil
}

// Get returns an open session and extends its lifetime.
func (s *SessionStore) Get(id string) (*Session, error) {
	value, ok := s.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session := value.(*Session)
	s.sessions.SetDefault(id, session)
	return session, nil
}

// Save persists the session content through the page service.
func (s *SessionStore) Save(ctx context.Context, id string) (*pages.Page, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	logger := logging.WithSessionContext(s.logger.WithContext(ctx), id)
	page, err := session.Save(ctx, s.pages, s.saver, s.now().UTC())
	if err != nil {
		logger.Error("editor.session.save_failed", "page_id", session.pageID.String(), "error", err)
		return nil, err
	}
	logger.Info("editor.session.saved", "page_id", page.ID.String(), "blocks", pkblocks.Count(page.Content))
	return page, nil
}

// Close discards a session and any unsaved changes.
func (s *SessionStore) Close(id string) {
	s.sessions.Delete(id)
}

// Len reports how many sessions are open.
func (s *SessionStore) Len() int {
	return s.sessions.ItemCount()
}
