package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcel/gestion/internal/storage"
	"github.com/jcel/gestion/pkg/client"
	"github.com/jcel/gestion/pkg/domain"
)

// Storage keys for the demo lists.
const (
	KeyTecnicos = "tecnicos"
	KeyClientes = "clientes"
	KeyTickets  = "tickets"
	KeyUsuarios = "usuarios"
)

// Demo credentials seeded on first use.
const (
	DemoEmail    = "admin@demo.com"
	DemoPassword = "demo1234"
)

const msgBadCredentials = "Credenciales inválidas"

type usuario struct {
	ID           string `json:"_id"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// Local is the offline demo backend. Each entity is a JSON array under its
// own key, seeded when the key is absent.
type Local struct {
	kv       storage.KV
	sessions client.SessionSource
	now      func() time.Time
	hashCost int

	// Views run their loads as concurrent commands; writes are serialized here.
	mu sync.Mutex
}

// NewLocal returns a demo backend over kv. Protected calls require a session
// from sessions, mirroring the remote backend.
func NewLocal(kv storage.KV, sessions client.SessionSource) *Local {
	return &Local{
		kv:       kv,
		sessions: sessions,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
}

func (l *Local) requireSession() error {
	if l.sessions == nil {
		return client.NewUnauthenticatedError()
	}
	sess, err := l.sessions.Get()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !sess.Authenticated() {
		return client.NewUnauthenticatedError()
	}
	return nil
}

// loadList decodes the list under key, writing seed when the key is absent.
func loadList[T any](kv storage.KV, key string, seed func() ([]T, error)) ([]T, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		items, err := seed()
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", key, err)
		}
		if err := saveList(kv, key, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func saveList[T any](kv storage.KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, string(data))
}

// nextID returns max(existing numeric ids)+1, or 1 for an empty list.
func nextID[T any](items []T, idOf func(T) string) string {
	maxID := 0
	for _, it := range items {
		if n, err := strconv.Atoi(idOf(it)); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}

func indexOf[T any](items []T, idOf func(T) string, id string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func tecnicoID(t domain.Tecnico) string { return t.ID }
func clienteID(c domain.Cliente) string { return c.ID }
func ticketID(t domain.Ticket) string   { return t.ID }
func usuarioID(u usuario) string        { return u.ID }

// --- Auth ---

// Login checks the credentials against the demo users.
func (l *Local) Login(_ context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users, err := loadList(l.kv, KeyUsuarios, l.seedUsuarios)
	if err != nil {
		return nil, fmt.Errorf("data.Login: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			break
		}
		return &domain.LoginResponse{
			ID:       u.ID,
			Token:    uuid.NewString(),
			Nombre:   u.Nombre,
			Apellido: u.Apellido,
			Email:    u.Email,
		}, nil
	}
	return nil, client.NewHTTPError(400, msgBadCredentials)
}

// Register adds a demo user.
func (l *Local) Register(_ context.Context, req domain.RegisterRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return client.NewHTTPError(400, "Email y clave son obligatorios")
	}
	users, err := loadList(l.kv, KeyUsuarios, l.seedUsuarios)
	if err != nil {
		return fmt.Errorf("data.Register: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return client.NewHTTPError(400, "El email ya está registrado")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), l.hashCost)
	if err != nil {
		return fmt.Errorf("data.Register: hash password: %w", err)
	}
	users = append(users, usuario{
		ID:           nextID(users, usuarioID),
		Nombre:       strings.TrimSpace(req.Nombre),
		Apellido:     strings.TrimSpace(req.Apellido),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err := saveList(l.kv, KeyUsuarios, users); err != nil {
		return fmt.Errorf("data.Register: %w", err)
	}
	return nil
}

// --- Tecnicos ---

func (l *Local) ListTecnicos(_ context.Context) ([]domain.Tecnico, error) {
	if err := l.requireSession(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := loadList(l.kv, KeyTecnicos, seedTecnicos)
	if err != nil {
		return nil, fmt.Errorf("data.ListTecnicos: %w", err)
	}
	return items, nil
}

func (l *Local) CreateTecnico(_ context.Context, in domain.TecnicoInput) error {
	return l.mutateTecnicos(func(items []domain.Tecnico) ([]domain.Tecnico, error) {
		return append(items, in.Apply(domain.Tecnico{ID: nextID(items, tecnicoID)})), nil
	})
}

func (l *Local) UpdateTecnico(_ context.Context, id string, in domain.TecnicoInput) error {
	return l.mutateTecnicos(func(items []domain.Tecnico) ([]domain.Tecnico, error) {
		i := indexOf(items, tecnicoID, id)
		if i < 0 {
			return nil, client.NewHTTPError(404, "Técnico no encontrado")
		}
		items[i] = in.Apply(items[i])
		return items, nil
	})
}

func (l *Local) DeleteTecnico(_ context.Context, id string) error {
	return l.mutateTecnicos(func(items []domain.Tecnico) ([]domain.Tecnico, error) {
		i := indexOf(items, tecnicoID, id)
		if i < 0 {
			return nil, client.NewHTTPError(404, "Técnico no encontrado")
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

func (l *Local) mutateTecnicos(fn func([]domain.Tecnico) ([]domain.Tecnico, error)) error {
	if err := l.requireSession(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := loadList(l.kv, KeyTecnicos, seedTecnicos)
	if err != nil {
		return fmt.Errorf("data.tecnicos: %w", err)
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return saveList(l.kv, KeyTecnicos, items)
}

// --- Clientes ---

func (l *Local) ListClientes(_ context.Context) ([]domain.Cliente, error) {
	if err := l.requireSession(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := loadList(l.kv, KeyClientes, seedClientes)
	if err != nil {
		return nil, fmt.Errorf("data.ListClientes: %w", err)
	}
	return items, nil
}

func (l *Local) CreateCliente(_ context.Context, in domain.ClienteInput) error {
	return l.mutateClientes(func(items []domain.Cliente) ([]domain.Cliente, error) {
		return append(items, in.Apply(domain.Cliente{ID: nextID(items, clienteID)})), nil
	})
}

func (l *Local) UpdateCliente(_ context.Context, id string, in domain.ClienteInput) error {
	return l.mutateClientes(func(items []domain.Cliente) ([]domain.Cliente, error) {
		i := indexOf(items, clienteID, id)
		if i < 0 {
			return nil, client.NewHTTPError(404, "Cliente no encontrado")
		}
		items[i] = in.Apply(items[i])
		return items, nil
	})
}

func (l *Local) DeleteCliente(_ context.Context, id string) error {
	return l.mutateClientes(func(items []domain.Cliente) ([]domain.Cliente, error) {
		i := indexOf(items, clienteID, id)
		if i < 0 {
			return nil, client.NewHTTPError(404, "Cliente no encontrado")
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

func (l *Local) mutateClientes(fn func([]domain.Cliente) ([]domain.Cliente, error)) error {
	if err := l.requireSession(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := loadList(l.kv, KeyClientes, seedClientes)
	if err != nil {
		return fmt.Errorf("data.clientes: %w", err)
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return saveList(l.kv, KeyClientes, items)
}

// --- Tickets ---

// ListTickets returns tickets with cliente and tecnico populated, like the
// remote backend does.
func (l *Local) ListTickets(_ context.Context) ([]domain.Ticket, error) {
	if err := l.requireSession(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	tickets, err := loadList(l.kv, KeyTickets, seedTickets)
	if err != nil {
		return nil, fmt.Errorf("data.ListTickets: %w", err)
	}
	clientes, err := loadList(l.kv, KeyClientes, seedClientes)
	if err != nil {
		return nil, fmt.Errorf("data.ListTickets: %w", err)
	}
	tecnicos, err := loadList(l.kv, KeyTecnicos, seedTecnicos)
	if err != nil {
		return nil, fmt.Errorf("data.ListTickets: %w", err)
	}
	for i, t := range tickets {
		if j := indexOf(clientes, clienteID, t.Cliente.ID()); j >= 0 {
			c := clientes[j]
			tickets[i].Cliente = domain.RefTo(domain.RefPerson{ID: c.ID, Nombre: c.Nombre, Apellido: c.Apellido})
		}
		if j := indexOf(tecnicos, tecnicoID, t.Tecnico.ID()); j >= 0 {
			tc := tecnicos[j]
			tickets[i].Tecnico = domain.RefTo(domain.RefPerson{ID: tc.ID, Nombre: tc.Nombre, Apellido: tc.Apellido})
		}
	}
	return tickets, nil
}

func (l *Local) CreateTicket(_ context.Context, in domain.TicketInput) error {
	return l.mutateTickets(in, func(items []domain.Ticket) ([]domain.Ticket, error) {
		t := in.Apply(domain.Ticket{ID: nextID(items, ticketID)})
		t.CreatedAt = l.now().UTC().Format(time.RFC3339)
		return append(items, t), nil
	})
}

func (l *Local) UpdateTicket(_ context.Context, id string, in domain.TicketInput) error {
	return l.mutateTickets(in, func(items []domain.Ticket) ([]domain.Ticket, error) {
		i := indexOf(items, ticketID, id)
		if i < 0 {
			return nil, client.NewHTTPError(404, "Ticket no encontrado")
		}
		items[i] = in.Apply(items[i])
		return items, nil
	})
}

func (l *Local) DeleteTicket(_ context.Context, id string) error {
	if err := l.requireSession(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := loadList(l.kv, KeyTickets, seedTickets)
	if err != nil {
		return fmt.Errorf("data.DeleteTicket: %w", err)
	}
	i := indexOf(items, ticketID, id)
	if i < 0 {
		return client.NewHTTPError(404, "Ticket no encontrado")
	}
	return saveList(l.kv, KeyTickets, append(items[:i], items[i+1:]...))
}

// mutateTickets checks that in references existing records before applying fn.
func (l *Local) mutateTickets(in domain.TicketInput, fn func([]domain.Ticket) ([]domain.Ticket, error)) error {
	if err := l.requireSession(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	clientes, err := loadList(l.kv, KeyClientes, seedClientes)
	if err != nil {
		return fmt.Errorf("data.tickets: %w", err)
	}
	if indexOf(clientes, clienteID, in.Cliente) < 0 {
		return client.NewHTTPError(400, "Cliente no encontrado")
	}
	tecnicos, err := loadList(l.kv, KeyTecnicos, seedTecnicos)
	if err != nil {
		return fmt.Errorf("data.tickets: %w", err)
	}
	if indexOf(tecnicos, tecnicoID, in.Tecnico) < 0 {
		return client.NewHTTPError(400, "Técnico no encontrado")
	}
	items, err := loadList(l.kv, KeyTickets, seedTickets)
	if err != nil {
		return fmt.Errorf("data.tickets: %w", err)
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return saveList(l.kv, KeyTickets, items)
}
