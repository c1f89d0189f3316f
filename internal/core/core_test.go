package core

import (
	"time"

	"github.com/spec-kit/support-bot/internal/domain"
)

// fakeClock is a manually advanced clock for pinning cooldown and work-hour
// behavior.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

// scriptedIntN replays a fixed sequence, then returns zero forever. The
// captcha generator consumes three values per challenge.
func scriptedIntN(seq ...int) func(int) int {
	i := 0
	return func(n int) int {
		if i >= len(seq) {
			return 0
		}
		v := seq[i]
		i++
		return v % n
	}
}

func newTestCore(clock *fakeClock, seq ...int) *Core {
	return New(Options{Now: clock.Now, IntN: scriptedIntN(seq...)})
}

// registerVerified creates a user and walks it through the gate.
func registerVerified(c *Core, userID int64) {
	res := c.Register(userID, "user", "User")
	if res.State == domain.GateStateVerified {
		return
	}
	c.mu.Lock()
	u := c.users[userID]
	u.Gate = domain.GateStateVerified
	u.ChallengeQuestion = ""
	u.ChallengeAnswer = 0
	c.mu.Unlock()
}

func textPayload(text string) domain.Payload {
	return domain.Payload{Kind: domain.MessageKindText, Text: text}
}
