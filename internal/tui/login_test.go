package tui

import (
	"strings"
	"testing"

	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/pkg/client"
	"github.com/jcel/gestion/pkg/domain"
)

func newTestLogin(t *testing.T, b *stubBackend) loginModel {
	t.Helper()
	m := newLoginModel(b, newSessions(t, false))
	m.Init()
	return m
}

func fillLogin(m loginModel, email, password string) loginModel {
	m = typeText(m, email)
	m, _ = m.Update(keyMsg("tab"))
	return typeText(m, password)
}

func TestLoginSuccessStoresSessionAndNavigatesHome(t *testing.T) {
	b := &stubBackend{loginResp: &domain.LoginResponse{ID: "u1", Token: "tok", Nombre: "Ana", Apellido: "Paz", Email: "ana@demo.com"}}
	m := newTestLogin(t, b)
	m = fillLogin(m, "ana@demo.com", "secreto")

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil || !m.submitting {
		t.Fatal("expected submit command and submitting state")
	}
	m, cmd = m.Update(cmd())
	if m.submitting {
		t.Error("submit control should be re-enabled")
	}
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	nav, ok := cmd().(navigateMsg)
	if !ok || nav.location != router.Home.Fragment() {
		t.Errorf("navigation = %#v, want %q", nav, router.Home.Fragment())
	}

	sess, err := m.sessions.Get()
	if err != nil || sess == nil {
		t.Fatalf("session not stored: %v", err)
	}
	if sess.Name != "Ana Paz" || sess.Token != "tok" || sess.UserID != "u1" {
		t.Errorf("session = %+v", sess)
	}
}

func TestLoginFailureShowsMessageAndReenablesSubmit(t *testing.T) {
	b := &stubBackend{err: client.NewHTTPError(404, "no existe")}
	m := newTestLogin(t, b)
	m = fillLogin(m, "ana@demo.com", "malo")

	m, cmd := m.Update(keyMsg("enter"))
	m, cmd = m.Update(cmd())
	if cmd != nil {
		t.Error("failed login should not navigate")
	}
	if m.submitting {
		t.Error("submit control should be re-enabled")
	}
	if m.message != msgBadCredentials {
		t.Errorf("message = %q, want %q", m.message, msgBadCredentials)
	}
	if m.sessions.Authenticated() {
		t.Error("no session should be stored")
	}
	if !strings.Contains(m.View(), msgBadCredentials) {
		t.Error("view should show the error")
	}
}

func TestLoginIgnoresSecondSubmitWhileInFlight(t *testing.T) {
	m := newTestLogin(t, &stubBackend{})
	m = fillLogin(m, "a@b.c", "x")
	m, first := m.Update(keyMsg("enter"))
	m, second := m.Update(keyMsg("enter"))
	if first == nil {
		t.Fatal("expected first submit")
	}
	if second != nil {
		t.Error("second submit should be ignored while the first is in flight")
	}
	if !strings.Contains(m.View(), "enviando") {
		t.Error("view should show the disabled submit control")
	}
}

func TestLoginStaleResponseIgnored(t *testing.T) {
	b := &stubBackend{loginResp: &domain.LoginResponse{Token: "tok", Email: "a@b.c"}}
	m := newTestLogin(t, b)
	m = fillLogin(m, "a@b.c", "x")
	m, cmd := m.Update(keyMsg("enter"))
	msg := cmd()

	m.leave()
	m, cmd = m.Update(msg)
	if cmd != nil {
		t.Error("stale response should not navigate")
	}
	if m.sessions.Authenticated() {
		t.Error("stale response should not store a session")
	}
}

func TestRegisterPasswordMismatchSkipsBackend(t *testing.T) {
	b := &stubBackend{}
	m := newTestLogin(t, b)
	m, _ = m.Update(keyMsg("ctrl+r"))
	if m.tab != tabRegister {
		t.Fatal("ctrl+r should switch to the register tab")
	}

	for i, v := range []string{"Ana", "Paz", "ana@demo.com", "uno", "dos"} {
		if i > 0 {
			m, _ = m.Update(keyMsg("tab"))
		}
		m = typeText(m, v)
	}
	m, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("mismatched passwords should not submit")
	}
	if m.message != "Las contraseñas no coinciden." {
		t.Errorf("message = %q", m.message)
	}
	if len(b.called()) != 0 {
		t.Errorf("backend called: %v", b.called())
	}
}

func TestRegisterSuccessSwitchesToLoginWithEmail(t *testing.T) {
	b := &stubBackend{}
	m := newTestLogin(t, b)
	m, _ = m.Update(keyMsg("ctrl+r"))
	for i, v := range []string{"Ana", "Paz", "ANA@Demo.com", "clave1", "clave1"} {
		if i > 0 {
			m, _ = m.Update(keyMsg("tab"))
		}
		m = typeText(m, v)
	}

	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected register command")
	}
	m, _ = m.Update(cmd())

	if m.tab != tabLogin {
		t.Error("expected the login tab after registering")
	}
	if got := m.login.values().Get("email"); got != "ana@demo.com" {
		t.Errorf("login email = %q, want prefilled lower-case email", got)
	}
	if !m.ok || !strings.Contains(m.message, "registrado correctamente") {
		t.Errorf("message = %q ok=%v", m.message, m.ok)
	}
	if calls := b.called(); len(calls) != 1 || calls[0] != "Register" {
		t.Errorf("calls = %v", calls)
	}
}

func TestRegisterFailureMessage(t *testing.T) {
	b := &stubBackend{err: client.NewHTTPError(400, "El email ya está registrado")}
	m := newTestLogin(t, b)
	m, _ = m.Update(keyMsg("ctrl+r"))
	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	if m.message != "El email ya está registrado" || m.ok {
		t.Errorf("message = %q ok=%v", m.message, m.ok)
	}
	if m.tab != tabRegister {
		t.Error("should stay on the register tab")
	}
}
