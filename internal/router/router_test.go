package router

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		fragment string
		want     Route
	}{
		{"", Login},
		{"#/", Login},
		{"#/login", Login},
		{"#/modulos", Modulos},
		{"#/tecnicos", Tecnicos},
		{"#/clientes", Clientes},
		{"#/tickets", Tickets},
		{"#/admin", Login},
		{"#/TICKETS", Login},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			if got := Parse(tt.fragment); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	for _, r := range Routes {
		if got := Parse(r.Fragment()); got != r {
			t.Errorf("Parse(%q) = %v, want %v", r.Fragment(), got, r)
		}
	}
}

func TestStepAnonymous(t *testing.T) {
	for _, r := range []Route{Modulos, Tecnicos, Clientes, Tickets} {
		d := Step(r.Fragment(), false)
		if d.Redirect != "#/login" {
			t.Errorf("Step(%q, anonymous).Redirect = %q, want #/login", r.Fragment(), d.Redirect)
		}
	}
	d := Step("#/login", false)
	if d.Redirected() || d.Render != Login {
		t.Errorf("Step(login, anonymous) = %+v, want render login", d)
	}
	for _, fragment := range []string{"", "#/", "#/nada", "#/admin", "#/LOGIN"} {
		d = Step(fragment, false)
		if d.Redirect != "#/login" {
			t.Errorf("Step(%q, anonymous).Redirect = %q, want #/login", fragment, d.Redirect)
		}
	}
}

func TestStepAuthenticated(t *testing.T) {
	d := Step("#/login", true)
	if d.Redirect != "#/modulos" {
		t.Errorf("Step(login, authenticated).Redirect = %q, want #/modulos", d.Redirect)
	}
	// Unknown tokens parse as login, which an authenticated user leaves.
	d = Step("#/nope", true)
	if d.Redirect != "#/modulos" {
		t.Errorf("Step(unknown, authenticated).Redirect = %q, want #/modulos", d.Redirect)
	}
	d = Step("#/tickets", true)
	if d.Redirected() || d.Render != Tickets {
		t.Errorf("Step(tickets, authenticated) = %+v, want render tickets", d)
	}
}

func TestStepSettlesWithoutLoop(t *testing.T) {
	for _, auth := range []bool{false, true} {
		for _, start := range []string{"", "#/nada", "#/login", "#/modulos", "#/tecnicos", "#/clientes", "#/tickets"} {
			fragment := start
			for i := 0; ; i++ {
				if i > 1 {
					t.Fatalf("auth=%v from %q: more than one redirect", auth, start)
				}
				d := Step(fragment, auth)
				if !d.Redirected() {
					break
				}
				fragment = d.Redirect
			}
		}
	}
}

func TestNavLinks(t *testing.T) {
	if links := NavLinks(Tecnicos, false); links != nil {
		t.Errorf("anonymous NavLinks = %v, want nil", links)
	}
	links := NavLinks(Tecnicos, true)
	if len(links) != 4 {
		t.Fatalf("got %d links, want 4", len(links))
	}
	for _, l := range links {
		if l.Active != (l.Route == Tecnicos) {
			t.Errorf("link %v Active = %v", l.Route, l.Active)
		}
	}
}
