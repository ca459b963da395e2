package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ticket is a support ticket as returned by the backend.
type Ticket struct {
	ID          string    `json:"_id"`
	Codigo      string    `json:"codigo"`
	Descripcion string    `json:"descripcion"`
	Cliente     EntityRef `json:"cliente"`
	Tecnico     EntityRef `json:"tecnico"`
	CreatedAt   string    `json:"createdAt,omitempty"`
}

// Fields returns the values used to prefill the edit form.
func (t Ticket) Fields() Fields {
	return Fields{
		"codigo":      t.Codigo,
		"descripcion": t.Descripcion,
		"cliente":     t.Cliente.ID(),
		"tecnico":     t.Tecnico.ID(),
	}
}

// RefPerson is the populated form of a ticket's cliente or tecnico.
type RefPerson struct {
	ID       string `json:"_id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

// EntityRef is a reference that the backend sends either as a bare id
// string or as a populated object.
type EntityRef struct {
	id     string
	person *RefPerson
}

// RefID builds an unpopulated reference.
func RefID(id string) EntityRef {
	return EntityRef{id: id}
}

// RefTo builds a populated reference.
func RefTo(p RefPerson) EntityRef {
	return EntityRef{id: p.ID, person: &p}
}

// ID returns the referenced identifier, or "" when absent.
func (r EntityRef) ID() string {
	return r.id
}

// Populated reports whether name data is available.
func (r EntityRef) Populated() bool {
	return r.person != nil
}

// FullName returns the referenced person's name, or "N/D" when the
// reference was not populated.
func (r EntityRef) FullName() string {
	if r.person == nil {
		return "N/D"
	}
	return JoinName(r.person.Nombre, r.person.Apellido)
}

// UnmarshalJSON accepts null, an id string or a populated object.
func (r *EntityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = EntityRef{}
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("entity ref: %w", err)
		}
		*r = EntityRef{id: id}
	default:
		var p RefPerson
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("entity ref: %w", err)
		}
		*r = RefTo(p)
	}
	return nil
}

// MarshalJSON writes the populated object when present, else the id.
func (r EntityRef) MarshalJSON() ([]byte, error) {
	if r.person != nil {
		return json.Marshal(r.person)
	}
	if r.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// TicketInput is the create/update payload for a ticket.
type TicketInput struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Cliente     string `json:"cliente"`
	Tecnico     string `json:"tecnico"`
}

// TicketInputFrom validates and coerces raw form values.
func TicketInputFrom(f Fields) (TicketInput, error) {
	if err := required(f, "codigo", "cliente", "tecnico", "descripcion"); err != nil {
		return TicketInput{}, err
	}
	return TicketInput{
		Codigo:      f.Get("codigo"),
		Descripcion: f.Get("descripcion"),
		Cliente:     f.Get("cliente"),
		Tecnico:     f.Get("tecnico"),
	}, nil
}

// Apply copies the input onto a stored record, keeping its id and
// creation time. References are stored unpopulated.
func (in TicketInput) Apply(t Ticket) Ticket {
	t.Codigo = in.Codigo
	t.Descripcion = in.Descripcion
	t.Cliente = RefID(in.Cliente)
	t.Tecnico = RefID(in.Tecnico)
	return t
}
