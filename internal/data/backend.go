// Package data defines the capability the screens read and write records
// through, with a remote implementation (the REST client) and a local demo
// store.
package data

import (
	"context"

	"github.com/jcel/gestion/pkg/client"
	"github.com/jcel/gestion/pkg/domain"
)

// Backend is the data capability the views consume. Failures are
// *client.APIError values so one recovery rule covers every backend.
type Backend interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) error

	ListTecnicos(ctx context.Context) ([]domain.Tecnico, error)
	CreateTecnico(ctx context.Context, in domain.TecnicoInput) error
	UpdateTecnico(ctx context.Context, id string, in domain.TecnicoInput) error
	DeleteTecnico(ctx context.Context, id string) error

	ListClientes(ctx context.Context) ([]domain.Cliente, error)
	CreateCliente(ctx context.Context, in domain.ClienteInput) error
	UpdateCliente(ctx context.Context, id string, in domain.ClienteInput) error
	DeleteCliente(ctx context.Context, id string) error

	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, in domain.TicketInput) error
	UpdateTicket(ctx context.Context, id string, in domain.TicketInput) error
	DeleteTicket(ctx context.Context, id string) error
}

// The REST client is the remote backend.
var _ Backend = (*client.Client)(nil)

var _ Backend = (*Local)(nil)
