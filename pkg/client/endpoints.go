package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jcel/gestion/pkg/domain"
)

// Login exchanges credentials for a session token. It does not require an
// existing session.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, true, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := c.do(ctx, http.MethodPost, "/registro", req, true, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// --- Tecnicos ---

// ListTecnicos returns every technician.
func (c *Client) ListTecnicos(ctx context.Context) ([]domain.Tecnico, error) {
	var resp struct {
		Tecnicos []domain.Tecnico `json:"tecnicos"`
	}
	if err := c.get(ctx, "/tecnicos", &resp); err != nil {
		return nil, fmt.Errorf("client.ListTecnicos: %w", err)
	}
	return resp.Tecnicos, nil
}

// CreateTecnico creates a technician.
func (c *Client) CreateTecnico(ctx context.Context, in domain.TecnicoInput) error {
	if err := c.do(ctx, http.MethodPost, "/tecnico", in, false, nil); err != nil {
		return fmt.Errorf("client.CreateTecnico: %w", err)
	}
	return nil
}

// UpdateTecnico replaces a technician by ID.
func (c *Client) UpdateTecnico(ctx context.Context, id string, in domain.TecnicoInput) error {
	if err := c.do(ctx, http.MethodPut, "/tecnico/"+url.PathEscape(id), in, false, nil); err != nil {
		return fmt.Errorf("client.UpdateTecnico: %w", err)
	}
	return nil
}

// DeleteTecnico deletes a technician by ID.
func (c *Client) DeleteTecnico(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tecnico/"+url.PathEscape(id), nil, false, nil); err != nil {
		return fmt.Errorf("client.DeleteTecnico: %w", err)
	}
	return nil
}

// --- Clientes ---

// ListClientes returns every client.
func (c *Client) ListClientes(ctx context.Context) ([]domain.Cliente, error) {
	var resp struct {
		Clientes []domain.Cliente `json:"clientes"`
	}
	if err := c.get(ctx, "/clientes", &resp); err != nil {
		return nil, fmt.Errorf("client.ListClientes: %w", err)
	}
	return resp.Clientes, nil
}

// CreateCliente creates a client.
func (c *Client) CreateCliente(ctx context.Context, in domain.ClienteInput) error {
	if err := c.do(ctx, http.MethodPost, "/cliente", in, false, nil); err != nil {
		return fmt.Errorf("client.CreateCliente: %w", err)
	}
	return nil
}

// UpdateCliente replaces a client by ID.
func (c *Client) UpdateCliente(ctx context.Context, id string, in domain.ClienteInput) error {
	if err := c.do(ctx, http.MethodPut, "/cliente/"+url.PathEscape(id), in, false, nil); err != nil {
		return fmt.Errorf("client.UpdateCliente: %w", err)
	}
	return nil
}

// DeleteCliente deletes a client by ID.
func (c *Client) DeleteCliente(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/cliente/"+url.PathEscape(id), nil, false, nil); err != nil {
		return fmt.Errorf("client.DeleteCliente: %w", err)
	}
	return nil
}

// --- Tickets ---

// ListTickets returns every ticket, with cliente and tecnico populated when
// the backend does so.
func (c *Client) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	var resp struct {
		Tickets []domain.Ticket `json:"tickets"`
	}
	if err := c.get(ctx, "/tickets", &resp); err != nil {
		return nil, fmt.Errorf("client.ListTickets: %w", err)
	}
	return resp.Tickets, nil
}

// CreateTicket creates a ticket.
func (c *Client) CreateTicket(ctx context.Context, in domain.TicketInput) error {
	if err := c.do(ctx, http.MethodPost, "/ticket", in, false, nil); err != nil {
		return fmt.Errorf("client.CreateTicket: %w", err)
	}
	return nil
}

// UpdateTicket replaces a ticket by ID.
func (c *Client) UpdateTicket(ctx context.Context, id string, in domain.TicketInput) error {
	if err := c.do(ctx, http.MethodPut, "/ticket/"+url.PathEscape(id), in, false, nil); err != nil {
		return fmt.Errorf("client.UpdateTicket: %w", err)
	}
	return nil
}

// DeleteTicket deletes a ticket by ID.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/ticket/"+url.PathEscape(id), nil, false, nil); err != nil {
		return fmt.Errorf("client.DeleteTicket: %w", err)
	}
	return nil
}
