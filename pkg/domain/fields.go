package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Fields holds raw form values keyed by backend field name.
type Fields map[string]string

// Get returns the trimmed value for key.
func (f Fields) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Genders is the closed option list for a technician's genero.
var Genders = []string{"Masculino", "Femenino", "Otro"}

// DefaultGender is used when a record carries no genero.
const DefaultGender = "Masculino"

// JoinName joins non-empty name parts with a single space.
func JoinName(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDate returns raw as a YYYY-MM-DD calendar date in UTC.
// Empty or unparseable input yields "".
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02")
		}
	}
	return ""
}

// Cedula is a national id number. The backend stores it as a number but
// older records may carry it as a string.
type Cedula string

// UnmarshalJSON accepts a JSON number, string or null.
func (c *Cedula) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*c = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("cedula: %w", err)
		}
		*c = Cedula(str)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("cedula: %w", err)
		}
		*c = Cedula(n.String())
	}
	return nil
}

// MarshalJSON writes numeric cedulas as numbers. A cedula whose digits would
// not survive the round trip, such as one with a leading zero, stays a string.
func (c Cedula) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(c), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(c) {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(c))
}

// ParseCedula casts a form value to the numeric id the backend expects.
func ParseCedula(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("la cédula debe ser numérica")
	}
	return n, nil
}

// ValidationError reports a form value rejected before it reaches a backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(f Fields, keys ...string) error {
	for _, k := range keys {
		if f.Get(k) == "" {
			return &ValidationError{Field: k, Message: fmt.Sprintf("el campo %s es obligatorio", k)}
		}
	}
	return nil
}
