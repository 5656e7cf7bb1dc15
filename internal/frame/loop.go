// Package frame tracks the single pending refresh tick of a session.
//
// A session asks the Loop for a Token whenever it wants to be polled on the
// next display refresh. The host delivers the token back with the tick and
// the session claims it. Scheduling replaces any pending token and every
// state transition cancels it, so at most one tick is live per session and a
// tick scheduled before a pause or reset is dropped on arrival.
package frame

// Token identifies one scheduled tick. The zero Token means "nothing
// scheduled".
type Token uint64

// None is the zero Token.
const None Token = 0

// Loop hands out tick tokens for one session.
type Loop struct {
	seq     Token
	pending Token
}

// Schedule invalidates any pending tick and returns a new token.
func (l *Loop) Schedule() Token {
	l.seq++
	l.pending = l.seq
	return l.pending
}

// Cancel drops the pending tick, if any.
func (l *Loop) Cancel() {
	l.pending = None
}

// Claim consumes token if it is the pending tick. It reports false for
// stale or unknown tokens.
func (l *Loop) Claim(token Token) bool {
	if token == None || token != l.pending {
		return false
	}
	l.pending = None
	return true
}

// Pending reports whether a tick is outstanding.
func (l *Loop) Pending() bool {
	return l.pending != None
}
