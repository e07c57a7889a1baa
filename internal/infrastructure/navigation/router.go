// Package navigation is the console's navigation surface: path-based view
// registration, the operator's current location, and programmatic redirects.
package navigation

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const historyLimit = 32

var ErrUnknownView = errors.New("unknown view")

// View is a registered screen.
type View struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Router tracks where the operator is. It satisfies ports.Navigator.
type Router struct {
	mu        sync.RWMutex
	views     map[string]View
	current   string
	history   []string
	redirects int
	log       zerolog.Logger
}

func NewRouter(start string, log zerolog.Logger) *Router {
	return &Router{
		views:   make(map[string]View),
		current: start,
		log:     log,
	}
}

// Register adds a view under path, replacing any previous registration.
func (r *Router) Register(path, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[path] = View{Path: path, Name: name}
}

// Navigate moves to a registered view.
func (r *Router) Navigate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[stripQuery(path)]; !ok {
		return ErrUnknownView
	}
	r.moveLocked(path)
	return nil
}

// Redirect moves unconditionally; redirect targets such as the login screen
// must be reachable even before views are registered.
func (r *Router) Redirect(_ context.Context, path string) {
	r.mu.Lock()
	from := r.current
	r.moveLocked(path)
	r.redirects++
	r.mu.Unlock()

	r.log.Info().Str("from", from).Str("to", path).Msg("redirect")
}

func (r *Router) moveLocked(path string) {
	if r.current != "" {
		r.history = append(r.history, r.current)
		if len(r.history) > historyLimit {
			r.history = r.history[len(r.history)-historyLimit:]
		}
	}
	r.current = path
}

func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Redirects is the number of programmatic redirects performed so far.
func (r *Router) Redirects() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.redirects
}

// History returns previous locations, oldest first.
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}

// Views lists registered views sorted by path.
func (r *Router) Views() []View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]View, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func stripQuery(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}
