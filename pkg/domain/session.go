package domain

// Session is the single logged-in identity persisted between runs.
type Session struct {
	Token  string `json:"token,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	UserID string `json:"userId,omitempty"`
}

// Authenticated reports whether the session carries a credential.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /registro.
type RegisterRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	ID       string `json:"_id"`
	Token    string `json:"token"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
}

// Session builds the persisted session from a login response.
// The display name falls back to the email when no name parts are present.
func (r LoginResponse) Session() Session {
	name := JoinName(r.Nombre, r.Apellido)
	if name == "" {
		name = r.Email
	}
	return Session{
		Token:  r.Token,
		Name:   name,
		Email:  r.Email,
		UserID: r.ID,
	}
}
