// Package consult manages legal consultation threads: listing, opening one,
// and exchanging messages with either a human responder or the AI assistant.
package consult

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/linka-app/linka/internal/api"
)

var (
	// ErrEmptyMessage is returned when sending blank content.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight is returned when a send is issued before the
	// previous one settled.
	ErrSendInFlight = errors.New("send already in progress")

	// ErrNoSelection is returned for operations that need a selected
	// consultation.
	ErrNoSelection = errors.New("no consultation selected")
)

// ConsultAPI is the slice of the gateway the manager needs. Satisfied by
// *api.Client.
type ConsultAPI interface {
	ListConsultations(ctx context.Context) ([]api.Consultation, error)
	CreateConsultation(ctx context.Context, req api.CreateConsultationRequest) (api.Consultation, error)
	ConsultationMessages(ctx context.Context, consultationID int) ([]api.ConsultationMessage, error)
	SendConsultationMessage(ctx context.Context, consultationID int, content string) (api.ConsultationMessage, error)
	SendConsultationAIMessage(ctx context.Context, consultationID int, content string) (api.ConsultationMessage, error)
}

// Manager holds the consultation list and the currently selected thread.
// Unlike group chat there is no polling: history is fetched once on selection
// and extended locally as messages are sent.
type Manager struct {
	client ConsultAPI

	mu       sync.RWMutex
	threads  []api.Consultation
	selected *api.Consultation
	messages []api.ConsultationMessage
	aiMode   bool
	sending  bool
}

// NewManager creates a manager with nothing loaded and AI mode off.
func NewManager(client ConsultAPI) *Manager {
	return &Manager{client: client}
}

// Refresh re-fetches the consultation list.
func (m *Manager) Refresh(ctx context.Context) ([]api.Consultation, error) {
	threads, err := m.client.ListConsultations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}

	m.mu.Lock()
	m.threads = threads
	m.mu.Unlock()
	return append([]api.Consultation(nil), threads...), nil
}

// Threads returns the last fetched consultation list.
func (m *Manager) Threads() []api.Consultation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]api.Consultation(nil), m.threads...)
}

// Select makes the given consultation current and fetches its full history
// once. On fetch failure the previous selection is kept.
func (m *Manager) Select(ctx context.Context, consultation api.Consultation) ([]api.ConsultationMessage, error) {
	history, err := m.client.ConsultationMessages(ctx, consultation.ID)
	if err != nil {
		return nil, fmt.Errorf("load consultation %d: %w", consultation.ID, err)
	}

	m.mu.Lock()
	m.selected = &consultation
	m.messages = history
	m.mu.Unlock()
	return append([]api.ConsultationMessage(nil), history...), nil
}

// SelectID selects the consultation with the given id from the loaded list,
// refreshing the list first when it has not been fetched yet.
func (m *Manager) SelectID(ctx context.Context, id int) ([]api.ConsultationMessage, error) {
	m.mu.RLock()
	threads := m.threads
	m.mu.RUnlock()

	if len(threads) == 0 {
		var err error
		if threads, err = m.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	for _, t := range threads {
		if t.ID == id {
			return m.Select(ctx, t)
		}
	}
	return nil, fmt.Errorf("consultation %d not found", id)
}

// Selected returns the current consultation, or nil when none is selected.
func (m *Manager) Selected() *api.Consultation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selected == nil {
		return nil
	}
	c := *m.selected
	return &c
}

// Messages returns a copy of the loaded history of the current selection.
func (m *Manager) Messages() []api.ConsultationMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]api.ConsultationMessage(nil), m.messages...)
}

// AIMode reports whether sends are routed to the AI assistant.
func (m *Manager) AIMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.aiMode
}

// SetAIMode toggles routing of subsequent sends. It affects routing only;
// already loaded messages keep their authorship flags.
func (m *Manager) SetAIMode(on bool) {
	m.mu.Lock()
	m.aiMode = on
	m.mu.Unlock()
}

// Create opens a new consultation thread and selects it.
func (m *Manager) Create(ctx context.Context, caseID int, name string) (api.Consultation, error) {
	created, err := m.client.CreateConsultation(ctx, api.CreateConsultationRequest{
		CaseID: caseID,
		Name:   name,
	})
	if err != nil {
		return api.Consultation{}, fmt.Errorf("create consultation: %w", err)
	}

	m.mu.Lock()
	m.threads = append(m.threads, created)
	m.selected = &created
	m.messages = nil
	m.mu.Unlock()
	return created, nil
}

// Send posts content to the current consultation. The routing endpoint is
// chosen by the AI mode at call time. On success the reply is appended to the
// local history; on failure nothing changes and the caller keeps the input.
func (m *Manager) Send(ctx context.Context, content string) (api.ConsultationMessage, error) {
	if strings.TrimSpace(content) == "" {
		return api.ConsultationMessage{}, ErrEmptyMessage
	}

	m.mu.Lock()
	if m.selected == nil {
		m.mu.Unlock()
		return api.ConsultationMessage{}, ErrNoSelection
	}
	if m.sending {
		m.mu.Unlock()
		return api.ConsultationMessage{}, ErrSendInFlight
	}
	m.sending = true
	id := m.selected.ID
	ai := m.aiMode
	m.mu.Unlock()

	var msg api.ConsultationMessage
	var err error
	if ai {
		msg, err = m.client.SendConsultationAIMessage(ctx, id, content)
	} else {
		msg, err = m.client.SendConsultationMessage(ctx, id, content)
	}

	m.mu.Lock()
	m.sending = false
	if err == nil && m.selected != nil && m.selected.ID == id {
		m.messages = append(m.messages, msg)
	}
	m.mu.Unlock()

	if err != nil {
		return api.ConsultationMessage{}, fmt.Errorf("send consultation message: %w", err)
	}
	return msg, nil
}
