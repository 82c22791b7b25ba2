package claw

import "sync/atomic"

// Session identifies one acting agent. Every state-changing call carries
// a common envelope (the actor DID, its authorization passphrase, and a
// strictly increasing per-actor nonce). Session builds that envelope with
// the nonce owned by the session rather than any process-wide counter, so
// multiple actors can run in one process.
//
//	sess := claw.NewSession(did, passphrase)
//	res, err := c.Wallet.Transfer(ctx, sess.Envelope(claw.M{
//	    "to": peer, "amount": 50,
//	}))
type Session struct {
	DID        string
	Passphrase string

	nonce atomic.Int64
}

// NewSession creates a session for the given actor with the nonce at zero.
func NewSession(did, passphrase string) *Session {
	return &Session{DID: did, Passphrase: passphrase}
}

// NewSessionAt is like NewSession but resumes from a known nonce, for
// actors whose previous sequence position is persisted elsewhere.
func NewSessionAt(did, passphrase string, nonce int64) *Session {
	s := NewSession(did, passphrase)
	s.nonce.Store(nonce)
	return s
}

// Next returns the next nonce. Safe for concurrent use; each returned
// value is strictly greater than every value returned before it.
func (s *Session) Next() int64 {
	return s.nonce.Add(1)
}

// Envelope returns extra merged with the actor envelope, consuming one
// nonce. extra may be nil; its did/passphrase/nonce keys, if any, are
// overwritten.
func (s *Session) Envelope(extra M) M {
	body := make(M, len(extra)+3)
	for k, v := range extra {
		body[k] = v
	}
	body["did"] = s.DID
	body["passphrase"] = s.Passphrase
	body["nonce"] = s.Next()
	return body
}
