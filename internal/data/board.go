package data

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jcel/gestion/pkg/domain"
)

// Board is everything the tickets screen needs.
type Board struct {
	Tickets  []domain.Ticket
	Clientes []domain.Cliente
	Tecnicos []domain.Tecnico
}

// CanCreate reports whether a ticket can reference at least one client and
// one technician.
func (b Board) CanCreate() bool {
	return len(b.Clientes) > 0 && len(b.Tecnicos) > 0
}

// LoadTicketBoard reads tickets, clientes and tecnicos concurrently. The first
// failure cancels the others and fails the whole load.
func LoadTicketBoard(ctx context.Context, b Backend) (Board, error) {
	var board Board
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tickets, err := b.ListTickets(ctx)
		board.Tickets = tickets
		return err
	})
	g.Go(func() error {
		clientes, err := b.ListClientes(ctx)
		board.Clientes = clientes
		return err
	})
	g.Go(func() error {
		tecnicos, err := b.ListTecnicos(ctx)
		board.Tecnicos = tecnicos
		return err
	})
	if err := g.Wait(); err != nil {
		return Board{}, fmt.Errorf("data.LoadTicketBoard: %w", err)
	}
	return board, nil
}
