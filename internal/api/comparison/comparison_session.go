package comparison

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/wagewatch/internal/types"
)

// slot is one session's current-result slot. At most one comparison is in
// flight; seq and applied keep a late response from replacing a newer one.
type slot struct {
	mu         sync.Mutex
	inFlight   bool
	seq        uint64
	applied    uint64
	result     *types.ComparisonResult
	input      *types.ComparisonInput
	lastError  string
	resolvedAt *time.Time
}

// begin claims the slot for a new request and returns its sequence number.
func (s *slot) begin() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return 0, false
	}
	s.inFlight = true
	s.seq++
	return s.seq, true
}

// release clears the in-flight flag if seq still owns it. It is a no-op once
// succeed or fail settled the request, or after a newer request began.
func (s *slot) release(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == seq {
		s.inFlight = false
	}
}

// succeed replaces the result in full unless a newer response was already applied.
func (s *slot) succeed(seq uint64, input types.ComparisonInput, result *types.ComparisonResult, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.result = result
	s.input = &input
	s.lastError = ""
	s.resolvedAt = &at
	return true
}

// fail keeps the previous result and records the message shown to the user.
func (s *slot) fail(seq uint64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if seq <= s.applied {
		return
	}
	s.lastError = message
}

func (s *slot) snapshot(sessionID string) types.ComparisonState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.ComparisonState{
		SessionID:  sessionID,
		Result:     s.result,
		Input:      s.input,
		LastError:  s.lastError,
		Pending:    s.inFlight,
		ResolvedAt: s.resolvedAt,
	}
}

type sessionStore struct {
	slots *cache.Cache
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{slots: cache.New(ttl, 2*ttl)}
}

// get returns the session's slot, creating it on first use. Each access
// extends the session's lifetime.
func (s *sessionStore) get(sessionID string) *slot {
	if v, ok := s.slots.Get(sessionID); ok {
		s.slots.SetDefault(sessionID, v)
		return v.(*slot)
	}
	fresh := &slot{}
	if err := s.slots.Add(sessionID, fresh, cache.DefaultExpiration); err != nil {
		// lost the race to another request of the same session
		if v, ok := s.slots.Get(sessionID); ok {
			return v.(*slot)
		}
	}
	return fresh
}

// peek returns the slot without creating one.
func (s *sessionStore) peek(sessionID string) (*slot, bool) {
	v, ok := s.slots.Get(sessionID)
	if !ok {
		return nil, false
	}
	return v.(*slot), true
}

// prefill is the input carried from a submission into one automatic
// comparison. consumed is bound to the token, not to any page render.
type prefill struct {
	mu        sync.Mutex
	sessionID string
	input     types.ComparisonInput
	consumed  bool
}

// consume flips the one-shot flag and reports whether this call did it.
func (p *prefill) consume() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.consumed {
		return false
	}
	p.consumed = true
	return true
}

type prefillStore struct {
	tokens *cache.Cache
}

func newPrefillStore(ttl time.Duration) *prefillStore {
	return &prefillStore{tokens: cache.New(ttl, 2*ttl)}
}

func (s *prefillStore) issue(sessionID string, input types.ComparisonInput) string {
	token := uuid.NewString()
	s.tokens.SetDefault(token, &prefill{sessionID: sessionID, input: input})
	return token
}

func (s *prefillStore) lookup(token string) (*prefill, bool) {
	v, ok := s.tokens.Get(token)
	if !ok {
		return nil, false
	}
	return v.(*prefill), true
}
