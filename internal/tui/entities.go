package tui

import (
	"context"

	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/pkg/domain"
)

const msgTicketsNeedRefs = "Para crear tickets necesitas al menos un cliente y un técnico."

func genderOptions() []option {
	opts := make([]option, len(domain.Genders))
	for i, g := range domain.Genders {
		opts[i] = option{value: g, label: g}
	}
	return opts
}

func dateField(key, label string) fieldDef {
	return fieldDef{key: key, label: label, placeholder: "AAAA-MM-DD"}
}

var tecnicoEntity = entity[domain.Tecnico]{
	route: router.Tecnicos,
	noun:  "técnico",
	empty: "No hay técnicos registrados.",
	fields: []fieldDef{
		textField("nombre", "Nombre"),
		textField("apellido", "Apellido"),
		textField("cedula", "Cédula"),
		dateField("fecha_de_nacimiento", "Fecha de nacimiento"),
		selectField("genero", "Género", genderOptions()),
		textField("ciudad", "Ciudad"),
		textField("direccion", "Dirección"),
		textField("telefono", "Teléfono"),
		textField("email", "Email"),
	},
	columns: []column[domain.Tecnico]{
		{"Nombre", 24, domain.Tecnico.FullName},
		{"Cédula", 12, func(t domain.Tecnico) string { return string(t.Cedula) }},
		{"Email", 26, func(t domain.Tecnico) string { return t.Email }},
		{"Teléfono", 12, func(t domain.Tecnico) string { return t.Telefono }},
		{"Ciudad", 14, func(t domain.Tecnico) string { return t.Ciudad }},
	},
	id:      func(t domain.Tecnico) string { return t.ID },
	prefill: domain.Tecnico.Fields,
	load: func(ctx context.Context, b data.Backend) (listing[domain.Tecnico], error) {
		items, err := b.ListTecnicos(ctx)
		return listing[domain.Tecnico]{items: items}, err
	},
	prepare: func(f domain.Fields) (saveFunc, error) {
		in, err := domain.TecnicoInputFrom(f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, b data.Backend, id string) error {
			if id == "" {
				return b.CreateTecnico(ctx, in)
			}
			return b.UpdateTecnico(ctx, id, in)
		}, nil
	},
	remove: func(ctx context.Context, b data.Backend, id string) error {
		return b.DeleteTecnico(ctx, id)
	},
}

var clienteEntity = entity[domain.Cliente]{
	route: router.Clientes,
	noun:  "cliente",
	empty: "No hay clientes registrados.",
	fields: []fieldDef{
		textField("cedula", "Cédula"),
		textField("nombre", "Nombre"),
		textField("apellido", "Apellido"),
		textField("ciudad", "Ciudad"),
		textField("email", "Email"),
		textField("direccion", "Dirección"),
		textField("telefono", "Teléfono"),
		dateField("fecha_de_nacimiento", "Fecha de nacimiento"),
	},
	columns: []column[domain.Cliente]{
		{"Nombre", 24, domain.Cliente.FullName},
		{"Cédula", 12, func(c domain.Cliente) string { return string(c.Cedula) }},
		{"Email", 26, func(c domain.Cliente) string { return c.Email }},
		{"Teléfono", 12, func(c domain.Cliente) string { return c.Telefono }},
		{"Ciudad", 14, func(c domain.Cliente) string { return c.Ciudad }},
	},
	id:      func(c domain.Cliente) string { return c.ID },
	prefill: domain.Cliente.Fields,
	load: func(ctx context.Context, b data.Backend) (listing[domain.Cliente], error) {
		items, err := b.ListClientes(ctx)
		return listing[domain.Cliente]{items: items}, err
	},
	prepare: func(f domain.Fields) (saveFunc, error) {
		in, err := domain.ClienteInputFrom(f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, b data.Backend, id string) error {
			if id == "" {
				return b.CreateCliente(ctx, in)
			}
			return b.UpdateCliente(ctx, id, in)
		}, nil
	},
	remove: func(ctx context.Context, b data.Backend, id string) error {
		return b.DeleteCliente(ctx, id)
	},
}

var ticketEntity = entity[domain.Ticket]{
	route: router.Tickets,
	noun:  "ticket",
	empty: "No hay tickets registrados.",
	fields: []fieldDef{
		textField("codigo", "Código"),
		selectField("cliente", "Cliente", nil),
		selectField("tecnico", "Técnico", nil),
		textField("descripcion", "Descripción"),
	},
	columns: []column[domain.Ticket]{
		{"Código", 10, func(t domain.Ticket) string { return t.Codigo }},
		{"Cliente", 20, func(t domain.Ticket) string { return t.Cliente.FullName() }},
		{"Técnico", 20, func(t domain.Ticket) string { return t.Tecnico.FullName() }},
		{"Descripción", 28, func(t domain.Ticket) string { return t.Descripcion }},
		{"Creado", 10, func(t domain.Ticket) string { return domain.NormalizeDate(t.CreatedAt) }},
	},
	id:      func(t domain.Ticket) string { return t.ID },
	prefill: domain.Ticket.Fields,
	load:    loadTicketListing,
	prepare: func(f domain.Fields) (saveFunc, error) {
		in, err := domain.TicketInputFrom(f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, b data.Backend, id string) error {
			if id == "" {
				return b.CreateTicket(ctx, in)
			}
			return b.UpdateTicket(ctx, id, in)
		}, nil
	},
	remove: func(ctx context.Context, b data.Backend, id string) error {
		return b.DeleteTicket(ctx, id)
	},
}

// loadTicketListing waits for the concurrent board load and builds the
// cliente and tecnico choices from it.
func loadTicketListing(ctx context.Context, b data.Backend) (listing[domain.Ticket], error) {
	board, err := data.LoadTicketBoard(ctx, b)
	if err != nil {
		return listing[domain.Ticket]{}, err
	}

	clientes := []option{{value: "", label: "Selecciona un cliente"}}
	for _, c := range board.Clientes {
		clientes = append(clientes, option{value: c.ID, label: c.FullName()})
	}
	tecnicos := []option{{value: "", label: "Selecciona un técnico"}}
	for _, t := range board.Tecnicos {
		tecnicos = append(tecnicos, option{value: t.ID, label: t.FullName()})
	}

	l := listing[domain.Ticket]{
		items:   board.Tickets,
		options: map[string][]option{"cliente": clientes, "tecnico": tecnicos},
	}
	if !board.CanCreate() {
		l.locked = true
		l.notice = msgTicketsNeedRefs
	}
	return l, nil
}
