package domain

import (
	"strconv"
	"strings"
)

// Cliente is a client record as returned by the backend.
type Cliente struct {
	ID                string `json:"_id"`
	Cedula            Cedula `json:"cedula"`
	Nombre            string `json:"nombre"`
	Apellido          string `json:"apellido"`
	Ciudad            string `json:"ciudad"`
	Email             string `json:"email"`
	Direccion         string `json:"direccion"`
	Telefono          string `json:"telefono"`
	FechaDeNacimiento string `json:"fecha_de_nacimiento"`
}

// FullName returns "nombre apellido".
func (c Cliente) FullName() string {
	return JoinName(c.Nombre, c.Apellido)
}

// Fields returns the values used to prefill the edit form.
func (c Cliente) Fields() Fields {
	return Fields{
		"cedula":              string(c.Cedula),
		"nombre":              c.Nombre,
		"apellido":            c.Apellido,
		"ciudad":              c.Ciudad,
		"email":               c.Email,
		"direccion":           c.Direccion,
		"telefono":            c.Telefono,
		"fecha_de_nacimiento": NormalizeDate(c.FechaDeNacimiento),
	}
}

// ClienteInput is the create/update payload for a client.
type ClienteInput struct {
	Cedula            int64  `json:"cedula"`
	Nombre            string `json:"nombre"`
	Apellido          string `json:"apellido"`
	Ciudad            string `json:"ciudad"`
	Email             string `json:"email"`
	Direccion         string `json:"direccion"`
	Telefono          string `json:"telefono"`
	FechaDeNacimiento string `json:"fecha_de_nacimiento"`
	FechaNacimiento   string `json:"fecha_nacimiento"`
}

// ClienteInputFrom validates and coerces raw form values.
func ClienteInputFrom(f Fields) (ClienteInput, error) {
	if err := required(f, "cedula", "nombre", "apellido", "ciudad", "email",
		"direccion", "telefono", "fecha_de_nacimiento"); err != nil {
		return ClienteInput{}, err
	}
	cedula, err := ParseCedula(f.Get("cedula"))
	if err != nil {
		return ClienteInput{}, &ValidationError{Field: "cedula", Message: err.Error()}
	}
	fecha := NormalizeDate(f.Get("fecha_de_nacimiento"))
	if fecha == "" {
		return ClienteInput{}, &ValidationError{Field: "fecha_de_nacimiento", Message: "la fecha debe tener el formato AAAA-MM-DD"}
	}
	return ClienteInput{
		Cedula:            cedula,
		Nombre:            f.Get("nombre"),
		Apellido:          f.Get("apellido"),
		Ciudad:            f.Get("ciudad"),
		Email:             strings.ToLower(f.Get("email")),
		Direccion:         f.Get("direccion"),
		Telefono:          f.Get("telefono"),
		FechaDeNacimiento: fecha,
		FechaNacimiento:   fecha,
	}, nil
}

// Apply copies the input onto a stored record, keeping its id.
func (in ClienteInput) Apply(c Cliente) Cliente {
	c.Cedula = Cedula(formatInt(in.Cedula))
	c.Nombre = in.Nombre
	c.Apellido = in.Apellido
	c.Ciudad = in.Ciudad
	c.Email = in.Email
	c.Direccion = in.Direccion
	c.Telefono = in.Telefono
	c.FechaDeNacimiento = in.FechaDeNacimiento
	return c
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
