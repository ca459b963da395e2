package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/internal/storage"
	"github.com/jcel/gestion/pkg/domain"
)

// stubBackend records calls and returns canned data. err, when set, is
// returned by every call.
type stubBackend struct {
	mu    sync.Mutex
	calls []string

	err       error
	loginResp *domain.LoginResponse
	tecnicos  []domain.Tecnico
	clientes  []domain.Cliente
	tickets   []domain.Ticket

	lastTecnico domain.TecnicoInput
	lastTicket  domain.TicketInput
	lastID      string
}

func (s *stubBackend) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubBackend) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubBackend) Login(_ context.Context, _ domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := s.record("Login"); err != nil {
		return nil, err
	}
	return s.loginResp, nil
}

func (s *stubBackend) Register(_ context.Context, _ domain.RegisterRequest) error {
	return s.record("Register")
}

func (s *stubBackend) ListTecnicos(_ context.Context) ([]domain.Tecnico, error) {
	if err := s.record("ListTecnicos"); err != nil {
		return nil, err
	}
	return s.tecnicos, nil
}

func (s *stubBackend) CreateTecnico(_ context.Context, in domain.TecnicoInput) error {
	s.lastTecnico = in
	return s.record("CreateTecnico")
}

func (s *stubBackend) UpdateTecnico(_ context.Context, id string, in domain.TecnicoInput) error {
	s.lastTecnico, s.lastID = in, id
	return s.record("UpdateTecnico")
}

func (s *stubBackend) DeleteTecnico(_ context.Context, id string) error {
	s.lastID = id
	return s.record("DeleteTecnico")
}

func (s *stubBackend) ListClientes(_ context.Context) ([]domain.Cliente, error) {
	if err := s.record("ListClientes"); err != nil {
		return nil, err
	}
	return s.clientes, nil
}

func (s *stubBackend) CreateCliente(_ context.Context, _ domain.ClienteInput) error {
	return s.record("CreateCliente")
}

func (s *stubBackend) UpdateCliente(_ context.Context, id string, _ domain.ClienteInput) error {
	s.lastID = id
	return s.record("UpdateCliente")
}

func (s *stubBackend) DeleteCliente(_ context.Context, id string) error {
	s.lastID = id
	return s.record("DeleteCliente")
}

func (s *stubBackend) ListTickets(_ context.Context) ([]domain.Ticket, error) {
	if err := s.record("ListTickets"); err != nil {
		return nil, err
	}
	return s.tickets, nil
}

func (s *stubBackend) CreateTicket(_ context.Context, in domain.TicketInput) error {
	s.lastTicket = in
	return s.record("CreateTicket")
}

func (s *stubBackend) UpdateTicket(_ context.Context, id string, in domain.TicketInput) error {
	s.lastTicket, s.lastID = in, id
	return s.record("UpdateTicket")
}

func (s *stubBackend) DeleteTicket(_ context.Context, id string) error {
	s.lastID = id
	return s.record("DeleteTicket")
}

func newSessions(t *testing.T, authenticated bool) *session.Store {
	t.Helper()
	s := session.NewStore(storage.NewMemory())
	if authenticated {
		if err := s.Set(domain.Session{Token: "tok", Name: "Ana Paz", Email: "ana@demo.com"}); err != nil {
			t.Fatalf("set session: %v", err)
		}
	}
	return s
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends s one rune at a time.
func typeText[M interface {
	Update(tea.Msg) (M, tea.Cmd)
}](m M, s string) M {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}
