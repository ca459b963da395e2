package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jcel/gestion/pkg/domain"
)

// option is one choice of a select field.
type option struct {
	value string
	label string
}

// fieldDef describes one form field. A field with options is a select.
type fieldDef struct {
	key         string
	label       string
	placeholder string
	options     []option
	selectField bool
	password    bool
}

func textField(key, label string) fieldDef {
	return fieldDef{key: key, label: label}
}

func selectField(key, label string, opts []option) fieldDef {
	return fieldDef{key: key, label: label, options: opts, selectField: true}
}

// form is a vertical list of text inputs and select fields.
type form struct {
	defs    []fieldDef
	inputs  []textinput.Model
	choices []int
	focus   int
	active  bool
}

func newForm(defs []fieldDef) form {
	f := form{
		defs:    append([]fieldDef(nil), defs...),
		inputs:  make([]textinput.Model, len(defs)),
		choices: make([]int, len(defs)),
	}
	for i, d := range f.defs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = d.placeholder
		ti.PlaceholderStyle = inputPlaceholderStyle
		ti.CharLimit = 200
		ti.Width = 40
		if d.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs[i] = ti
	}
	return f
}

// index returns the position of key, or -1.
func (f form) index(key string) int {
	for i, d := range f.defs {
		if d.key == key {
			return i
		}
	}
	return -1
}

// setOptions replaces the options of a select field, keeping the current
// value selected when it is still offered.
func (f *form) setOptions(key string, opts []option) {
	i := f.index(key)
	if i < 0 {
		return
	}
	current := f.value(i)
	f.defs[i].options = opts
	f.choices[i] = optionIndex(opts, current)
}

func optionIndex(opts []option, value string) int {
	for i, o := range opts {
		if o.value == value {
			return i
		}
	}
	return 0
}

func (f form) value(i int) string {
	d := f.defs[i]
	if d.selectField {
		if len(d.options) == 0 {
			return ""
		}
		return d.options[f.choices[i]].value
	}
	return f.inputs[i].Value()
}

// values returns the raw form values keyed by field.
func (f form) values() domain.Fields {
	out := make(domain.Fields, len(f.defs))
	for i, d := range f.defs {
		out[d.key] = f.value(i)
	}
	return out
}

// fill sets every field from values. Missing keys clear the field.
func (f *form) fill(values domain.Fields) {
	for i, d := range f.defs {
		if d.selectField {
			f.choices[i] = optionIndex(d.options, values[d.key])
			continue
		}
		f.inputs[i].SetValue(values[d.key])
		f.inputs[i].CursorEnd()
	}
}

// reset clears the form and moves focus to the first field.
func (f *form) reset() {
	f.fill(nil)
	f.setFocus(0)
}

func (f *form) setValue(key, value string) {
	if i := f.index(key); i >= 0 {
		if f.defs[i].selectField {
			f.choices[i] = optionIndex(f.defs[i].options, value)
			return
		}
		f.inputs[i].SetValue(value)
	}
}

// activate gives the form keyboard focus.
func (f *form) activate() tea.Cmd {
	f.active = true
	return f.setFocus(f.focus)
}

// deactivate releases keyboard focus.
func (f *form) deactivate() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *form) setFocus(i int) tea.Cmd {
	if len(f.defs) == 0 {
		return nil
	}
	f.focus = (i + len(f.defs)) % len(f.defs)
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus && f.active && !f.defs[j].selectField {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

// onLast reports whether focus is on the last field.
func (f form) onLast() bool {
	return f.focus == len(f.defs)-1
}

func (f form) Update(msg tea.KeyMsg) (form, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		cmd := f.setFocus(f.focus + 1)
		return f, cmd
	case "shift+tab", "up":
		cmd := f.setFocus(f.focus - 1)
		return f, cmd
	}

	d := f.defs[f.focus]
	if d.selectField {
		n := len(d.options)
		if n == 0 {
			return f, nil
		}
		switch msg.String() {
		case "right", "l", " ":
			f.choices[f.focus] = (f.choices[f.focus] + 1) % n
		case "left", "h":
			f.choices[f.focus] = (f.choices[f.focus] - 1 + n) % n
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) View() string {
	labelWidth := 0
	for _, d := range f.defs {
		if w := len([]rune(d.label)); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, d := range f.defs {
		focused := f.active && i == f.focus
		marker := "  "
		label := dimStyle.Render(cell(d.label, labelWidth))
		if focused {
			marker = inputPromptStyle.Render("> ")
			label = selectedStyle.Render(cell(d.label, labelWidth))
		}

		var field string
		if d.selectField {
			field = f.selectView(i, focused)
		} else {
			field = f.inputs[i].View()
		}
		b.WriteString(marker + label + "  " + field + "\n")
	}
	return b.String()
}

func (f form) selectView(i int, focused bool) string {
	opts := f.defs[i].options
	if len(opts) == 0 {
		return metaStyle.Render("(sin opciones)")
	}
	label := sanitize(opts[f.choices[i]].label)
	if focused {
		return accentStyle.Render("‹ ") + selectedStyle.Render(label) + accentStyle.Render(" ›")
	}
	return normalStyle.Render(label)
}

// passthrough forwards non-key messages such as cursor blinks to the
// focused input.
func (f form) passthrough(msg tea.Msg) (form, tea.Cmd) {
	if !f.active || len(f.defs) == 0 || f.defs[f.focus].selectField {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}
