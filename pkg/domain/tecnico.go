package domain

import "strings"

// Tecnico is a technician record as returned by the backend.
type Tecnico struct {
	ID                string `json:"_id"`
	Nombre            string `json:"nombre"`
	Apellido          string `json:"apellido"`
	Cedula            Cedula `json:"cedula"`
	FechaDeNacimiento string `json:"fecha_de_nacimiento"`
	Genero            string `json:"genero"`
	Ciudad            string `json:"ciudad"`
	Direccion         string `json:"direccion"`
	Telefono          string `json:"telefono"`
	Email             string `json:"email"`
}

// FullName returns "nombre apellido".
func (t Tecnico) FullName() string {
	return JoinName(t.Nombre, t.Apellido)
}

// Fields returns the values used to prefill the edit form.
func (t Tecnico) Fields() Fields {
	genero := t.Genero
	if genero == "" {
		genero = DefaultGender
	}
	return Fields{
		"nombre":              t.Nombre,
		"apellido":            t.Apellido,
		"cedula":              string(t.Cedula),
		"fecha_de_nacimiento": NormalizeDate(t.FechaDeNacimiento),
		"genero":              genero,
		"ciudad":              t.Ciudad,
		"direccion":           t.Direccion,
		"telefono":            t.Telefono,
		"email":               t.Email,
	}
}

// TecnicoInput is the create/update payload for a technician.
type TecnicoInput struct {
	Nombre            string `json:"nombre"`
	Apellido          string `json:"apellido"`
	Cedula            int64  `json:"cedula"`
	FechaDeNacimiento string `json:"fecha_de_nacimiento"`
	FechaNacimiento   string `json:"fecha_nacimiento"`
	Genero            string `json:"genero"`
	Ciudad            string `json:"ciudad"`
	Direccion         string `json:"direccion"`
	Telefono          string `json:"telefono"`
	Email             string `json:"email"`
}

// TecnicoInputFrom validates and coerces raw form values.
func TecnicoInputFrom(f Fields) (TecnicoInput, error) {
	if err := required(f, "nombre", "apellido", "cedula", "fecha_de_nacimiento", "genero",
		"ciudad", "direccion", "telefono", "email"); err != nil {
		return TecnicoInput{}, err
	}
	cedula, err := ParseCedula(f.Get("cedula"))
	if err != nil {
		return TecnicoInput{}, &ValidationError{Field: "cedula", Message: err.Error()}
	}
	fecha := NormalizeDate(f.Get("fecha_de_nacimiento"))
	if fecha == "" {
		return TecnicoInput{}, &ValidationError{Field: "fecha_de_nacimiento", Message: "la fecha debe tener el formato AAAA-MM-DD"}
	}
	return TecnicoInput{
		Nombre:            f.Get("nombre"),
		Apellido:          f.Get("apellido"),
		Cedula:            cedula,
		FechaDeNacimiento: fecha,
		FechaNacimiento:   fecha,
		Genero:            f.Get("genero"),
		Ciudad:            f.Get("ciudad"),
		Direccion:         f.Get("direccion"),
		Telefono:          f.Get("telefono"),
		Email:             strings.ToLower(f.Get("email")),
	}, nil
}

// Apply copies the input onto a stored record, keeping its id.
func (in TecnicoInput) Apply(t Tecnico) Tecnico {
	t.Nombre = in.Nombre
	t.Apellido = in.Apellido
	t.Cedula = Cedula(formatInt(in.Cedula))
	t.FechaDeNacimiento = in.FechaDeNacimiento
	t.Genero = in.Genero
	t.Ciudad = in.Ciudad
	t.Direccion = in.Direccion
	t.Telefono = in.Telefono
	t.Email = in.Email
	return t
}
