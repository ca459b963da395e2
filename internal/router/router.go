// Package router maps location fragments to screens and enforces the
// logged-in/logged-out redirect rules.
package router

import "strings"

// Route is one of the fixed screens.
type Route int

const (
	Login Route = iota
	Modulos
	Tecnicos
	Clientes
	Tickets
)

// Prefix is stripped from a fragment before it is parsed.
const Prefix = "#/"

// Home is the landing route after login.
const Home = Modulos

// Routes lists every route in display order.
var Routes = []Route{Login, Modulos, Tecnicos, Clientes, Tickets}

func (r Route) String() string {
	switch r {
	case Modulos:
		return "modulos"
	case Tecnicos:
		return "tecnicos"
	case Clientes:
		return "clientes"
	case Tickets:
		return "tickets"
	default:
		return "login"
	}
}

// Label is the human title of the route.
func (r Route) Label() string {
	switch r {
	case Modulos:
		return "Módulos"
	case Tecnicos:
		return "Técnicos"
	case Clientes:
		return "Clientes"
	case Tickets:
		return "Tickets"
	default:
		return "Iniciar sesión"
	}
}

// Fragment renders the route as a location fragment.
func (r Route) Fragment() string {
	return Prefix + r.String()
}

// Parse maps a fragment to a route. An empty fragment and any unknown token
// map to Login.
func Parse(fragment string) Route {
	token := strings.Replace(fragment, Prefix, "", 1)
	for _, r := range Routes {
		if r.String() == token {
			return r
		}
	}
	return Login
}

// Decision is the outcome of one navigation event: either a redirect to a
// new fragment (render nothing) or a route to render.
type Decision struct {
	Redirect string
	Render   Route
}

// Redirected reports whether the location must change before anything is
// rendered.
func (d Decision) Redirected() bool {
	return d.Redirect != ""
}

// Step evaluates the guard rules for fragment. Anonymous users are sent to
// login and authenticated users are sent away from it. An unknown or empty
// fragment counts as a route other than login for anonymous users. After a
// redirect the fragment is canonical and the guard that fired no longer
// matches, so re-entering Step cannot loop.
func Step(fragment string, authenticated bool) Decision {
	route := Parse(fragment)
	switch {
	case !authenticated && (route != Login || fragment != Login.Fragment()):
		return Decision{Redirect: Login.Fragment()}
	case authenticated && route == Login:
		return Decision{Redirect: Home.Fragment()}
	}
	return Decision{Render: route}
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Route  Route
	Key    string
	Active bool
}

// NavLinks returns the navigation bar for an authenticated user, marking
// current. Anonymous users get no navigation.
func NavLinks(current Route, authenticated bool) []NavLink {
	if !authenticated {
		return nil
	}
	links := []NavLink{
		{Route: Modulos, Key: "1"},
		{Route: Tecnicos, Key: "2"},
		{Route: Clientes, Key: "3"},
		{Route: Tickets, Key: "4"},
	}
	for i := range links {
		links[i].Active = links[i].Route == current
	}
	return links
}
