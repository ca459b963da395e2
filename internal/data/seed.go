package data

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jcel/gestion/pkg/domain"
)

func (l *Local) seedUsuarios() ([]usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), l.hashCost)
	if err != nil {
		return nil, err
	}
	return []usuario{{
		ID:           "1",
		Nombre:       "Admin",
		Apellido:     "Demo",
		Email:        DemoEmail,
		PasswordHash: string(hash),
	}}, nil
}

func seedTecnicos() ([]domain.Tecnico, error) {
	return []domain.Tecnico{
		{
			ID: "1", Nombre: "Carlos", Apellido: "Mena", Cedula: "1712345678",
			FechaDeNacimiento: "1988-03-14", Genero: "Masculino", Ciudad: "Quito",
			Direccion: "Av. Amazonas N24", Telefono: "0991234567", Email: "carlos.mena@demo.com",
		},
		{
			ID: "2", Nombre: "Lucía", Apellido: "Andrade", Cedula: "0923456789",
			FechaDeNacimiento: "1992-11-02", Genero: "Femenino", Ciudad: "Guayaquil",
			Direccion: "Calle 9 de Octubre 210", Telefono: "0987654321", Email: "lucia.andrade@demo.com",
		},
	}, nil
}

func seedClientes() ([]domain.Cliente, error) {
	return []domain.Cliente{
		{
			ID: "1", Cedula: "1709876543", Nombre: "María", Apellido: "Torres", Ciudad: "Quito",
			Email: "maria.torres@demo.com", Direccion: "Av. 6 de Diciembre 455",
			Telefono: "0971122334", FechaDeNacimiento: "1979-07-21",
		},
	}, nil
}

func seedTickets() ([]domain.Ticket, error) {
	return []domain.Ticket{
		{
			ID: "1", Codigo: "TCK-001", Descripcion: "Impresora sin conexión a la red",
			Cliente: domain.RefID("1"), Tecnico: domain.RefID("1"), CreatedAt: "2025-01-15T09:30:00Z",
		},
	}, nil
}
