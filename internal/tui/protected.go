package tui

import (
	"net/http"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/pkg/client"
)

const (
	msgSessionExpired = "Tu sesión expiró o no es válida."
	msgUnexpected     = "Ocurrió un error inesperado."
	msgBadCredentials = "Usuario o contraseña incorrectos."
	msgRegisterFailed = "No se pudo registrar el usuario."
)

// navigateMsg moves the App to a new location.
type navigateMsg struct {
	location string
}

func navigate(location string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{location: location}
	}
}

// translateProtectedError turns the failure of an authenticated call into
// the inline message to show. An authentication failure also clears the
// stored session and returns a command that sends the user to login.
func translateProtectedError(sessions *session.Store, err error) (string, tea.Cmd) {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return msgUnexpected, nil
	}
	if client.IsAuthFailure(apiErr) {
		if sessions != nil {
			_ = sessions.Clear() //nolint:errcheck // a failed clear is retried by the next guarded call
		}
		return msgSessionExpired, navigate(router.Login.Fragment())
	}
	return apiErr.Message, nil
}

var credentialPattern = regexp.MustCompile(`(?i)usuario|password|clave|credencial`)

// loginErrorMessage maps a failed login to the message shown on the form.
func loginErrorMessage(err error) string {
	apiErr, ok := client.AsAPIError(err)
	switch {
	case !ok, apiErr.Status == http.StatusNotFound:
		return msgBadCredentials
	case apiErr.Status == 0:
		return client.MsgUnreachable
	case credentialPattern.MatchString(apiErr.Message):
		return msgBadCredentials
	case apiErr.Message == "":
		return msgBadCredentials
	}
	return apiErr.Message
}

// registerErrorMessage maps a failed registration to the message shown on
// the form.
func registerErrorMessage(err error) string {
	apiErr, ok := client.AsAPIError(err)
	switch {
	case !ok:
		return msgRegisterFailed
	case apiErr.Status == 0:
		return client.MsgUnreachable
	case apiErr.Message == "":
		return msgRegisterFailed
	}
	return apiErr.Message
}
