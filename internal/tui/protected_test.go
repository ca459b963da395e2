package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/pkg/client"
)

func TestTranslateProtectedError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantMsg    string
		wantLogout bool
	}{
		{"auth issue", client.NewHTTPError(403, "Token inválido"), msgSessionExpired, true},
		{"status 401", client.NewHTTPError(401, "No autorizado"), msgSessionExpired, true},
		{"no session", client.NewUnauthenticatedError(), msgSessionExpired, true},
		{"wrapped auth", fmt.Errorf("client.ListTecnicos: %w", client.NewHTTPError(401, "")), msgSessionExpired, true},
		{"http error", client.NewHTTPError(500, "Error del servidor"), "Error del servidor", false},
		{"http default message", client.NewHTTPError(502, ""), "Error HTTP 502", false},
		{"own message kept verbatim", &client.APIError{Kind: client.KindHTTP, Status: 409, Message: ""}, "", false},
		{"unreachable", fmt.Errorf("x: %w", &client.APIError{Kind: client.KindNetworkUnreachable, Message: client.MsgUnreachable}), client.MsgUnreachable, false},
		{"not an api error", errors.New("boom"), msgUnexpected, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sessions := newSessions(t, true)
			msg, cmd := translateProtectedError(sessions, tc.err)
			if msg != tc.wantMsg {
				t.Errorf("message = %q, want %q", msg, tc.wantMsg)
			}
			if got := !sessions.Authenticated(); got != tc.wantLogout {
				t.Errorf("session cleared = %v, want %v", got, tc.wantLogout)
			}
			if !tc.wantLogout {
				if cmd != nil {
					t.Error("expected no navigation command")
				}
				return
			}
			if cmd == nil {
				t.Fatal("expected navigation command")
			}
			nav, ok := cmd().(navigateMsg)
			if !ok || nav.location != router.Login.Fragment() {
				t.Errorf("navigation = %#v, want %q", nav, router.Login.Fragment())
			}
		})
	}
}

func TestTranslateProtectedErrorNilStore(t *testing.T) {
	msg, cmd := translateProtectedError(nil, client.NewUnauthenticatedError())
	if msg != msgSessionExpired || cmd == nil {
		t.Errorf("got %q, cmd nil=%v", msg, cmd == nil)
	}
}

func TestLoginErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not an api error", errors.New("boom"), msgBadCredentials},
		{"not found", client.NewHTTPError(404, "Lo sentimos, el usuario no existe"), msgBadCredentials},
		{"unreachable", &client.APIError{Kind: client.KindNetworkUnreachable, Message: client.MsgUnreachable}, client.MsgUnreachable},
		{"mentions password", client.NewHTTPError(400, "Password incorrecto"), msgBadCredentials},
		{"mentions credencial", client.NewHTTPError(400, "Credenciales inválidas"), msgBadCredentials},
		{"mentions usuario", client.NewHTTPError(401, "USUARIO bloqueado"), msgBadCredentials},
		{"other message", client.NewHTTPError(500, "Servicio en mantenimiento"), "Servicio en mantenimiento"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := loginErrorMessage(tc.err); got != tc.want {
				t.Errorf("loginErrorMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegisterErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not an api error", errors.New("boom"), msgRegisterFailed},
		{"unreachable", &client.APIError{Kind: client.KindNetworkUnreachable, Message: client.MsgUnreachable}, client.MsgUnreachable},
		{"backend message", client.NewHTTPError(400, "El email ya se encuentra registrado"), "El email ya se encuentra registrado"},
		{"empty message", &client.APIError{Kind: client.KindHTTP, Status: 400}, msgRegisterFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := registerErrorMessage(tc.err); got != tc.want {
				t.Errorf("registerErrorMessage = %q, want %q", got, tc.want)
			}
		})
	}
}
