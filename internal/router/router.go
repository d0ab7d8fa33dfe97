// Package router implements the navigation state machine.
//
// A [Router] derives application state (Home or a category view) from an
// address-bar location, validates navigation targets against the category
// store, and maintains a history of visited locations so back/forward
// events restore earlier states without creating new entries.
//
// Two URL grammars are supported, selected once per instance via [Mode]:
//
//	Path mode: "/" or "/home" is Home, "/<name>" is Category(name)
//	Hash mode: "", "#" or "#home" is Home, "#<name>" is Category(name)
//
// An unknown target name always resolves to Home; stale links never
// surface an error or leave the previous view displayed.
package router

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/folio/internal/shared"
)

// StateKind enumerates the two reachable navigation states.
type StateKind int

const (
	KindHome StateKind = iota
	KindCategory
)

// State is the current navigation state: Home, or one category view.
//
// Home is virtual: it is never stored in the category store and exists
// only as a router state value.
type State struct {
	Kind     StateKind
	Category string
}

// Home returns the Home state.
func Home() State {
	return State{Kind: KindHome}
}

// Category returns the state for viewing one category.
func Category(name string) State {
	return State{Kind: KindCategory, Category: name}
}

func (s State) String() string {
	if s.Kind == KindHome {
		return "home"
	}
	return s.Category
}

// Mode selects the URL grammar. The two grammars are never mixed within
// one running instance.
type Mode int

const (
	// PathMode encodes navigation state in the URL path, for
	// deployments with server-side rewrites.
	PathMode Mode = iota
	// HashMode encodes navigation state in the URL fragment, for
	// static hosting without rewrite capability.
	HashMode
)

// ParseRoutingMode validates a configured routing mode string.
func ParseRoutingMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "path":
		return PathMode, nil
	case "hash":
		return HashMode, nil
	default:
		return 0, fmt.Errorf("%w: unknown routing mode %q", shared.ErrInvalidConfig, s)
	}
}

// Validator reports whether a category name is a valid navigation target.
// The category store satisfies this.
type Validator interface {
	Has(name string) bool
}

// Router owns navigation state for one running instance.
type Router struct {
	mode     Mode
	store    Validator
	history  History
	stash    Stash
	logger   *log.Logger
	onChange func(State)
	state    State
}

// New creates a router in the given mode.
//
// history and stash may be nil, in which case an in-memory history at
// the home location and an empty stash are used.
func New(mode Mode, store Validator, history History, stash Stash, logger *log.Logger) *Router {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if stash == nil {
		stash = NewMemoryStash()
	}

	r := &Router{
		mode:   mode,
		store:  store,
		stash:  stash,
		logger: logger,
	}

	if history == nil {
		history = NewMemoryHistory(r.locationFor(Home()))
	}
	r.history = history

	return r
}

// SetOnChange registers the render callback fired after every state change.
func (r *Router) SetOnChange(fn func(State)) {
	r.onChange = fn
}

// State returns the current navigation state.
func (r *Router) State() State {
	return r.state
}

// Mode returns the router's URL grammar.
func (r *Router) Mode() Mode {
	return r.mode
}

// Init determines the initial state on first load.
//
// If the asset server's not-found fallback stashed a requested path, it
// is consumed exactly once and the target derives from it; otherwise the
// target derives from the current location. Init never pushes a history
// entry; it normalizes the address bar in place.
func (r *Router) Init() State {
	var target string
	if stashed, ok := r.stash.Consume(); ok {
		target = targetFromPath(stashed)
		r.logger.Debug("consumed stashed path", "path", stashed, "target", target)
	} else {
		target = r.parseLocation(r.history.Location())
	}

	r.state = r.resolve(target)
	r.history.Replace(r.locationFor(r.state))
	r.fire()
	return r.state
}

// Navigate performs a user-initiated transition to target.
//
// The target is validated against the store (Home is always valid); an
// unknown name falls back to Home. The address bar is updated and a new
// history entry pushed unless the location is unchanged.
func (r *Router) Navigate(target string) State {
	next := r.resolve(target)

	if loc := r.locationFor(next); loc != r.history.Location() {
		r.history.Push(loc)
	}

	r.state = next
	r.fire()
	return r.state
}

// Pop re-derives state from the current location after a history move or
// an external location edit. It never pushes an entry, so back/forward
// traffic cannot loop or duplicate history.
func (r *Router) Pop() State {
	r.state = r.resolve(r.parseLocation(r.history.Location()))
	r.fire()
	return r.state
}

// Back moves one history entry backwards, if possible, and re-derives
// state from the restored location.
func (r *Router) Back() (State, bool) {
	if _, ok := r.history.Back(); !ok {
		return r.state, false
	}
	return r.Pop(), true
}

// Forward moves one history entry forwards, if possible.
func (r *Router) Forward() (State, bool) {
	if _, ok := r.history.Forward(); !ok {
		return r.state, false
	}
	return r.Pop(), true
}

// resolve maps a target name to a state, rejecting unknown categories.
func (r *Router) resolve(target string) State {
	if target == "" || target == "home" {
		return Home()
	}

	if r.store != nil && r.store.Has(target) {
		return Category(target)
	}

	r.logger.Warn("unknown navigation target, falling back to home", "target", target)
	return Home()
}

// locationFor renders a state in the mode's address-bar form.
func (r *Router) locationFor(s State) string {
	switch r.mode {
	case HashMode:
		if s.Kind == KindHome {
			return "#home"
		}
		return "#" + s.Category
	default:
		if s.Kind == KindHome {
			return "/"
		}
		return "/" + s.Category
	}
}

// parseLocation extracts the target name from an address-bar location.
func (r *Router) parseLocation(loc string) string {
	switch r.mode {
	case HashMode:
		return strings.TrimPrefix(loc, "#")
	default:
		return targetFromPath(loc)
	}
}

// targetFromPath derives a target name from a URL path such as "/garments".
func targetFromPath(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}

func (r *Router) fire() {
	if r.onChange != nil {
		r.onChange(r.state)
	}
}
