package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/internal/data"
	"github.com/jcel/gestion/internal/router"
	"github.com/jcel/gestion/internal/session"
	"github.com/jcel/gestion/pkg/domain"
)

// listing is what a module screen loads before it can render.
type listing[T any] struct {
	items   []T
	options map[string][]option
	// locked disables saving; notice says why.
	locked bool
	notice string
}

type column[T any] struct {
	title string
	width int
	value func(T) string
}

// saveFunc performs a validated create (empty id) or update.
type saveFunc func(ctx context.Context, b data.Backend, id string) error

// entity describes one CRUD module.
type entity[T any] struct {
	route   router.Route
	noun    string
	empty   string
	fields  []fieldDef
	columns []column[T]
	id      func(T) string
	prefill func(T) domain.Fields
	load    func(ctx context.Context, b data.Backend) (listing[T], error)
	// prepare validates raw form values before any backend call.
	prepare func(domain.Fields) (saveFunc, error)
	remove  func(ctx context.Context, b data.Backend, id string) error
}

type crudLoadedMsg[T any] struct {
	seq     int
	listing listing[T]
	err     error
}

type crudSavedMsg[T any] struct {
	seq     int
	updated bool
	err     error
}

type crudDeletedMsg[T any] struct {
	seq int
	err error
}

type crudCopiedMsg[T any] struct {
	id  string
	err error
}

// crudModel is the list + form screen shared by every module.
type crudModel[T any] struct {
	def      *entity[T]
	backend  data.Backend
	sessions *session.Store

	items     []T
	cursor    int
	form      form
	editingID string

	loading       bool
	saving        bool
	locked        bool
	notice        string
	message       string
	ok            bool
	confirmDelete bool

	// seq identifies the latest request; responses carrying an older
	// value are dropped.
	seq    int
	height int
}

func newCrudModel[T any](def *entity[T], b data.Backend, s *session.Store) crudModel[T] {
	return crudModel[T]{
		def:      def,
		backend:  b,
		sessions: s,
		form:     newForm(def.fields),
	}
}

// Init resets the screen and starts a fresh load.
func (m *crudModel[T]) Init() tea.Cmd {
	m.items = nil
	m.cursor = 0
	m.editingID = ""
	m.message = ""
	m.notice = ""
	m.confirmDelete = false
	m.saving = false
	m.form.deactivate()
	m.form.reset()
	return m.reload()
}

// leave invalidates every request in flight.
func (m *crudModel[T]) leave() {
	m.seq++
	m.loading = false
	m.saving = false
	m.form.deactivate()
}

func (m crudModel[T]) isEditing() bool {
	return m.form.active
}

// canSave reports whether the submit control is enabled.
func (m crudModel[T]) canSave() bool {
	return !m.loading && !m.saving && !m.locked
}

func (m *crudModel[T]) reload() tea.Cmd {
	m.seq++
	m.loading = true
	seq, b, load := m.seq, m.backend, m.def.load
	return func() tea.Msg {
		l, err := load(context.Background(), b)
		return crudLoadedMsg[T]{seq: seq, listing: l, err: err}
	}
}

func (m crudModel[T]) selected() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return zero, false
	}
	return m.items[m.cursor], true
}

func (m crudModel[T]) Update(msg tea.Msg) (crudModel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case crudLoadedMsg[T]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.items = nil
			m.locked = true
			m.notice = ""
			var cmd tea.Cmd
			m.message, cmd = translateProtectedError(m.sessions, msg.err)
			m.ok = false
			return m, cmd
		}
		m.items = msg.listing.items
		m.locked = msg.listing.locked
		m.notice = msg.listing.notice
		for key, opts := range msg.listing.options {
			m.form.setOptions(key, opts)
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		return m, nil

	case crudSavedMsg[T]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.message, cmd = translateProtectedError(m.sessions, msg.err)
			m.ok = false
			return m, cmd
		}
		verb := "creado"
		if msg.updated {
			verb = "actualizado"
		}
		m.message, m.ok = capitalize(m.def.noun)+" "+verb+".", true
		m.editingID = ""
		m.form.deactivate()
		m.form.reset()
		cmd := m.reload()
		return m, cmd

	case crudDeletedMsg[T]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.message, cmd = translateProtectedError(m.sessions, msg.err)
			m.ok = false
			return m, cmd
		}
		m.message, m.ok = capitalize(m.def.noun)+" eliminado.", true
		cmd := m.reload()
		return m, cmd

	case crudCopiedMsg[T]:
		if msg.err != nil {
			m.message, m.ok = "No se pudo copiar al portapapeles.", false
			return m, nil
		}
		m.message, m.ok = "ID "+msg.id+" copiado.", true
		return m, nil

	case tea.KeyMsg:
		if m.form.active {
			return m.handleFormKey(msg)
		}
		return m.handleListKey(msg)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.passthrough(msg)
	return m, cmd
}

func (m crudModel[T]) handleListKey(msg tea.KeyMsg) (crudModel[T], tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		if msg.String() != "y" {
			m.message = ""
			return m, nil
		}
		item, ok := m.selected()
		if !ok || m.saving {
			return m, nil
		}
		m.seq++
		m.loading = true
		seq, b, remove, id := m.seq, m.backend, m.def.remove, m.def.id(item)
		return m, func() tea.Msg {
			return crudDeletedMsg[T]{seq: seq, err: remove(context.Background(), b, id)}
		}
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.editingID = ""
		m.message = ""
		m.form.reset()
		cmd := m.form.activate()
		return m, cmd
	case "e", "enter":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editingID = m.def.id(item)
		m.message = ""
		m.form.fill(m.def.prefill(item))
		m.form.setFocus(0)
		cmd := m.form.activate()
		return m, cmd
	case "d":
		item, ok := m.selected()
		if !ok || m.loading || m.saving {
			return m, nil
		}
		m.confirmDelete = true
		m.message, m.ok = fmt.Sprintf("¿Eliminar %s %s? (y/n)", m.def.noun, m.def.id(item)), false
	case "r":
		// A reload bumps seq, which would orphan a save in flight.
		if m.saving {
			return m, nil
		}
		m.message = ""
		cmd := m.reload()
		return m, cmd
	case "c":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		id := m.def.id(item)
		return m, func() tea.Msg {
			return crudCopiedMsg[T]{id: id, err: clipboard.WriteAll(id)}
		}
	}
	return m, nil
}

func (m crudModel[T]) handleFormKey(msg tea.KeyMsg) (crudModel[T], tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingID = ""
		m.form.deactivate()
		m.form.reset()
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.form.onLast() {
			return m.submit()
		}
		cmd := m.form.setFocus(m.form.focus + 1)
		return m, cmd
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m crudModel[T]) submit() (crudModel[T], tea.Cmd) {
	if !m.canSave() {
		return m, nil
	}
	save, err := m.def.prepare(m.form.values())
	if err != nil {
		m.message, m.ok = capitalize(err.Error())+".", false
		return m, nil
	}
	m.message = ""
	m.saving = true
	m.seq++
	seq, b, id := m.seq, m.backend, m.editingID
	return m, func() tea.Msg {
		err := save(context.Background(), b, id)
		return crudSavedMsg[T]{seq: seq, updated: id != "", err: err}
	}
}

func (m crudModel[T]) View() string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render(m.def.route.Label()) + "\n")
	if m.notice != "" {
		b.WriteString("  " + alert(m.notice, false) + "\n")
	}
	b.WriteString("\n")

	heading := "Nuevo " + m.def.noun
	if m.editingID != "" {
		heading = "Editar " + m.def.noun + " " + metaStyle.Render(sanitize(m.editingID))
	}
	b.WriteString("  " + sectionHeaderStyle.Render(heading) + "\n")
	b.WriteString(m.form.View())

	button := "[ Guardar " + m.def.noun + " ]"
	switch {
	case m.saving:
		b.WriteString("  " + disabledStyle.Render(button) + " " + metaStyle.Render("guardando…") + "\n")
	case !m.canSave():
		b.WriteString("  " + disabledStyle.Render(button) + "\n")
	default:
		b.WriteString("  " + accentStyle.Render(button) + "\n")
	}
	if m.message != "" {
		b.WriteString("  " + alert(m.message, m.ok) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + sectionHeaderStyle.Render("Listado") + "\n")
	b.WriteString(m.tableView())

	return truncateToHeight(b.String(), m.height)
}

func (m crudModel[T]) tableView() string {
	var b strings.Builder

	var header []string
	for _, c := range m.def.columns {
		header = append(header, cell(c.title, c.width))
	}
	b.WriteString("  " + metaStyle.Render(strings.Join(header, " ")) + "\n")

	if m.loading && len(m.items) == 0 {
		b.WriteString("  " + dimStyle.Render("Cargando…") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString("  " + dimStyle.Render(m.def.empty) + "\n")
		return b.String()
	}

	for i, item := range m.items {
		var cells []string
		for _, c := range m.def.columns {
			cells = append(cells, cell(c.value(item), c.width))
		}
		row := strings.Join(cells, " ")
		if i == m.cursor && !m.form.active {
			b.WriteString(selectedRowBg.Render(accentStyle.Render("▸ ") + selectedStyle.Render(row)))
		} else {
			b.WriteString("  " + normalStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m crudModel[T]) helpView() string {
	if m.form.active {
		return helpBar("tab", "campo", "←/→", "opción", "ctrl+s", "guardar", "esc", "cancelar")
	}
	return helpBar("j/k", "mover", "n", "nuevo", "e", "editar", "d", "eliminar", "r", "recargar", "c", "copiar id", "L", "cerrar sesión", "q", "salir")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
