// Package groupchat manages the chat session of a case group: resolving the
// case to its group, polling for new messages and sending.
package groupchat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/linka-app/linka/internal/api"
)

var (
	// ErrEmptyMessage is returned when sending blank content.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight is returned when a send is issued before the
	// previous one settled.
	ErrSendInFlight = errors.New("send already in progress")

	// ErrNotResolved is returned for operations that need a group before
	// one has been resolved.
	ErrNotResolved = errors.New("group not resolved")
)

// GroupAPI is the slice of the gateway the session needs. Satisfied by
// *api.Client.
type GroupAPI interface {
	ListGroups(ctx context.Context) ([]api.Group, error)
	CreateGroup(ctx context.Context, req api.CreateGroupRequest) (api.Group, error)
	GroupMessages(ctx context.Context, groupID int) ([]api.Message, error)
	SendGroupMessage(ctx context.Context, groupID int, content string) (api.Message, error)
}

// CaseMarker is the substring that ties a group to its case. Group identity
// is inferred from the name containing this marker; there is no server-side
// uniqueness guarantee.
func CaseMarker(caseID int) string {
	return fmt.Sprintf("Case %d", caseID)
}

// GroupName is the deterministic name used when creating a case group.
func GroupName(caseID int) string {
	return fmt.Sprintf("Case %d Discussion", caseID)
}

// GroupDescription is the deterministic description of a case group.
func GroupDescription(caseID int) string {
	return fmt.Sprintf("Shared response room for case %d", caseID)
}

// Session is one mounted group chat session. Each poll replaces the message
// list wholesale; ordering is whatever the backend returns, assumed
// chronological ascending.
type Session struct {
	client   GroupAPI
	caseID   int
	interval time.Duration

	mu       sync.RWMutex
	group    *api.Group
	messages []api.Message
	sending  bool
	closed   bool

	feed    Feed
	updates chan []api.Message
	cancel  context.CancelFunc
}

// NewSession creates an unresolved session for the given case.
func NewSession(client GroupAPI, caseID int, pollInterval time.Duration) *Session {
	return &Session{
		client:   client,
		caseID:   caseID,
		interval: pollInterval,
		updates:  make(chan []api.Message, 1),
	}
}

// Resolve finds the group for this session's case, creating it when the scan
// finds none.
//
// This is a check-then-act sequence with no cross-client mutual exclusion:
// two concurrent sessions for the same case can both miss the scan and each
// create a group. The duplicate-group possibility is a known limitation of
// the backend surface, which offers no find-or-create endpoint.
func (s *Session) Resolve(ctx context.Context) (api.Group, error) {
	s.mu.RLock()
	if s.group != nil {
		g := *s.group
		s.mu.RUnlock()
		return g, nil
	}
	s.mu.RUnlock()

	marker := CaseMarker(s.caseID)

	groups, err := s.client.ListGroups(ctx)
	if err != nil {
		return api.Group{}, fmt.Errorf("list groups: %w", err)
	}
	for _, g := range groups {
		if strings.Contains(g.Name, marker) {
			s.adopt(g)
			return g, nil
		}
	}

	created, err := s.client.CreateGroup(ctx, api.CreateGroupRequest{
		Name:        GroupName(s.caseID),
		Description: GroupDescription(s.caseID),
		IconURL:     "",
	})
	if err != nil {
		return api.Group{}, fmt.Errorf("create group: %w", err)
	}
	slog.Info("Created case group", "case_id", s.caseID, "group_id", created.ID)
	s.adopt(created)
	return created, nil
}

func (s *Session) adopt(g api.Group) {
	s.mu.Lock()
	s.group = &g
	s.mu.Unlock()
}

// Start resolves the group if needed and begins polling. Snapshots are
// applied to the session state and forwarded on Updates until Close.
func (s *Session) Start(ctx context.Context) error {
	if _, err := s.Resolve(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.feed != nil {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	feed := NewPollingFeed(s.fetchMessages, s.interval)
	s.feed = feed
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	if err := feed.Start(ctx); err != nil {
		return err
	}

	go func() {
		defer func() {
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()
			close(s.updates)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-feed.Updates():
				if !ok {
					return
				}
				s.replaceMessages(snapshot)
				s.forward(snapshot)
			}
		}
	}()
	return nil
}

// Updates returns the snapshot channel for UI consumption. It is closed
// after Close.
func (s *Session) Updates() <-chan []api.Message {
	return s.updates
}

// Close stops polling. In-flight fetches are abandoned via context
// cancellation; no state is applied after Close.
func (s *Session) Close() {
	s.mu.Lock()
	feed := s.feed
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if feed != nil {
		_ = feed.Close()
	}
}

// Group returns the resolved group, or nil before resolution.
func (s *Session) Group() *api.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.group == nil {
		return nil
	}
	g := *s.group
	return &g
}

// Messages returns a copy of the current message snapshot.
func (s *Session) Messages() []api.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Message(nil), s.messages...)
}

// Send posts content to the group. On success the confirmed message is
// appended to the local snapshot immediately, without waiting for the next
// poll; on failure nothing changes and the caller keeps the input. Slash
// commands are sent as ordinary content; interpreting them is the backend's
// job.
func (s *Session) Send(ctx context.Context, content string) (api.Message, error) {
	if strings.TrimSpace(content) == "" {
		return api.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.group == nil {
		s.mu.Unlock()
		return api.Message{}, ErrNotResolved
	}
	if s.sending {
		s.mu.Unlock()
		return api.Message{}, ErrSendInFlight
	}
	s.sending = true
	groupID := s.group.ID
	s.mu.Unlock()

	msg, err := s.client.SendGroupMessage(ctx, groupID, content)

	s.mu.Lock()
	s.sending = false
	if err == nil {
		s.messages = append(s.messages, msg)
	}
	snapshot := append([]api.Message(nil), s.messages...)
	s.mu.Unlock()

	if err != nil {
		return api.Message{}, fmt.Errorf("send message: %w", err)
	}
	s.forward(snapshot)
	return msg, nil
}

func (s *Session) fetchMessages(ctx context.Context) ([]api.Message, error) {
	s.mu.RLock()
	group := s.group
	s.mu.RUnlock()
	if group == nil {
		return nil, ErrNotResolved
	}
	return s.client.GroupMessages(ctx, group.ID)
}

func (s *Session) replaceMessages(snapshot []api.Message) {
	s.mu.Lock()
	s.messages = snapshot
	s.mu.Unlock()
}

// forward hands a snapshot to the UI without blocking; an unconsumed older
// snapshot is replaced.
func (s *Session) forward(snapshot []api.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.updates <- snapshot:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
