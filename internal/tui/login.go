package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/pkg/domain"
)

type loginTab int

const (
	tabLogin loginTab = iota
	tabRegister
)

type loginDoneMsg struct {
	seq  int
	resp *domain.LoginResponse
	err  error
}

type registerDoneMsg struct {
	seq   int
	email string
	err   error
}

type loginModel struct {
	backend    data.Backend
	sessions   *session.Store
	tab        loginTab
	login      form
	register   form
	submitting bool
	message    string
	ok         bool
	hint       string
	seq        int
}

func newLoginModel(b data.Backend, s *session.Store) loginModel {
	return loginModel{
		backend:  b,
		sessions: s,
		login: newForm([]fieldDef{
			{key: "email", label: "Email", placeholder: "usuario@correo.com"},
			{key: "password", label: "Contraseña", password: true},
		}),
		register: newForm([]fieldDef{
			textField("nombre", "Nombre"),
			textField("apellido", "Apellido"),
			{key: "email", label: "Email", placeholder: "usuario@correo.com"},
			{key: "password", label: "Contraseña", password: true},
			{key: "confirmPassword", label: "Confirmar", password: true},
		}),
	}
}

// Init shows the login tab with a clean form.
func (m *loginModel) Init() tea.Cmd {
	m.leave()
	m.tab = tabLogin
	m.message = ""
	m.register.deactivate()
	m.login.reset()
	m.register.reset()
	return m.current().activate()
}

// leave drops any in-flight submission.
func (m *loginModel) leave() {
	m.seq++
	m.submitting = false
}

func (m *loginModel) current() *form {
	if m.tab == tabRegister {
		return &m.register
	}
	return &m.login
}

func (m loginModel) isEditing() bool {
	if m.tab == tabRegister {
		return m.register.active
	}
	return m.login.active
}

func (m *loginModel) setTab(tab loginTab) tea.Cmd {
	m.current().deactivate()
	m.tab = tab
	m.message = ""
	return m.current().activate()
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.message, m.ok = loginErrorMessage(msg.err), false
			return m, nil
		}
		if err := m.sessions.Set(msg.resp.Session()); err != nil {
			m.message, m.ok = msgUnexpected, false
			return m, nil
		}
		m.login.reset()
		return m, navigate(router.Home.Fragment())

	case registerDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			m.message, m.ok = registerErrorMessage(msg.err), false
			return m, nil
		}
		m.register.reset()
		cmd := m.setTab(tabLogin)
		m.login.reset()
		m.login.setValue("email", msg.email)
		m.message, m.ok = "Usuario registrado correctamente. Ahora inicia sesión.", true
		focus := m.login.setFocus(1)
		return m, tea.Batch(cmd, focus)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	f := m.current()
	*f, cmd = f.passthrough(msg)
	return m, cmd
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	f := m.current()
	if !f.active {
		switch msg.String() {
		case "enter", "i":
			cmd := f.activate()
			return m, cmd
		case "ctrl+r":
			cmd := m.toggle()
			return m, cmd
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		f.deactivate()
		return m, nil
	case "ctrl+r":
		cmd := m.toggle()
		return m, cmd
	case "enter":
		if m.tab == tabRegister {
			return m.submitRegister()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	*f, cmd = f.Update(msg)
	return m, cmd
}

func (m *loginModel) toggle() tea.Cmd {
	if m.tab == tabLogin {
		return m.setTab(tabRegister)
	}
	return m.setTab(tabLogin)
}

func (m loginModel) submitLogin() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	values := m.login.values()
	req := domain.LoginRequest{
		Email:    strings.ToLower(values.Get("email")),
		Password: values.Get("password"),
	}
	m.message = ""
	m.submitting = true
	m.seq++
	seq, b := m.seq, m.backend
	return m, func() tea.Msg {
		resp, err := b.Login(context.Background(), req)
		return loginDoneMsg{seq: seq, resp: resp, err: err}
	}
}

func (m loginModel) submitRegister() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	values := m.register.values()
	if values.Get("password") != values.Get("confirmPassword") {
		m.message, m.ok = "Las contraseñas no coinciden.", false
		return m, nil
	}
	req := domain.RegisterRequest{
		Nombre:   values.Get("nombre"),
		Apellido: values.Get("apellido"),
		Email:    strings.ToLower(values.Get("email")),
		Password: values.Get("password"),
	}
	m.message = ""
	m.submitting = true
	m.seq++
	seq, b := m.seq, m.backend
	return m, func() tea.Msg {
		err := b.Register(context.Background(), req)
		return registerDoneMsg{seq: seq, email: req.Email, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	loginTabLabel := dimStyle.Render("Iniciar sesión")
	registerTabLabel := dimStyle.Render("Registrarse")
	subtitle := "Usa un usuario registrado en el backend."
	button := "Ingresar"
	if m.tab == tabRegister {
		registerTabLabel = selectedStyle.Render("Registrarse")
		subtitle = "Después del registro podrás iniciar sesión."
		button = "Crear cuenta"
	} else {
		loginTabLabel = selectedStyle.Render("Iniciar sesión")
	}

	b.WriteString("  " + loginTabLabel + metaStyle.Render("  │  ") + registerTabLabel + "\n")
	b.WriteString("  " + dimStyle.Render(subtitle) + "\n")
	if m.hint != "" {
		b.WriteString("  " + metaStyle.Render(m.hint) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.current().View())
	b.WriteString("\n")

	if m.submitting {
		b.WriteString("  " + disabledStyle.Render("[ "+button+" ]") + " " + metaStyle.Render("enviando…") + "\n")
	} else {
		b.WriteString("  " + accentStyle.Render("[ "+button+" ]") + "\n")
	}
	if m.message != "" {
		b.WriteString("\n  " + alert(m.message, m.ok) + "\n")
	}
	return b.String()
}

func (m loginModel) helpView() string {
	if m.isEditing() {
		return helpBar("enter", "enviar", "tab", "campo", "ctrl+r", "cambiar pestaña", "esc", "salir del formulario")
	}
	return helpBar("enter", "editar", "ctrl+r", "cambiar pestaña", "q", "salir")
}
