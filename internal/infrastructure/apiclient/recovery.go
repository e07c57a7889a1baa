package apiclient

import "sync"

type recoveryResult string

const (
	recoveryRun        recoveryResult = "recovered"
	recoverySuppressed recoveryResult = "suppressed"
	recoveryStale      recoveryResult = "stale"
)

// recoveryGate makes the clear-and-redirect sequence one-shot per token.
// Storing a new token re-arms it implicitly: a 401 for the new token no
// longer matches the one already handled.
type recoveryGate struct {
	mu      sync.Mutex
	handled bool
	token   string
}

// claim decides what to do with a 401 for a request sent with token sent
// while the session currently holds token current. Once a recovery ran,
// tokenless requests failing with 401 have nothing left to recover.
func (g *recoveryGate) claim(sent, current string) recoveryResult {
	if current != "" && current != sent {
		return recoveryStale
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.handled && (g.token == sent || sent == "") {
		return recoverySuppressed
	}
	g.handled = true
	g.token = sent
	return recoveryRun
}
