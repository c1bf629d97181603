package plan

import (
	"math/rand/v2"
	"time"
)

// FallbackCelebration is shown when the congratulatory message cannot be fetched.
const FallbackCelebration = "Amazing! You won the day. Go rest! 🏆"

// EncouragementTTL is how long a quick encouragement stays visible.
const EncouragementTTL = 3 * time.Second

// DailyQuote is the fixed quote shown on the dashboard.
const DailyQuote = "You don't need to study more. You need to study better, calmly and with method."

var encouragements = [...]string{
	"Nice! One more step done. ✨",
	"That's it! You're on the right track. 🚀",
	"Well done! Knowledge is power. 📚",
	"One at a time, and you got there! 💪",
	"Amazing! Your dedication is inspiring. 🌟",
	"Done! Feel that progress. 🌿",
}

// Encouragements returns the fixed encouragement list.
func Encouragements() []string {
	return encouragements[:]
}

// randomEncouragement picks uniformly using intn, falling back to math/rand.
func randomEncouragement(intn func(int) int) string {
	if intn == nil {
		intn = rand.IntN
	}
	return encouragements[intn(len(encouragements))]
}

// CelebrationState is the daily-celebration state.
type CelebrationState int

const (
	CelebrationNotShown CelebrationState = iota
	CelebrationShown
)

func (s CelebrationState) String() string {
	if s == CelebrationShown {
		return "SHOWN"
	}
	return "NOT_SHOWN"
}

// Celebration tracks the daily completion celebration. Each Trigger starts a
// new round identified by a sequence number so that a message arriving for
// an older round is discarded.
type Celebration struct {
	state   CelebrationState
	seq     uint64
	message string
}

// Trigger moves to SHOWN and returns the round's sequence number.
func (c *Celebration) Trigger() uint64 {
	c.state = CelebrationShown
	c.seq++
	c.message = ""
	return c.seq
}

// Dismiss moves to NOT_SHOWN. Dismissing when not shown is a no-op.
func (c *Celebration) Dismiss() {
	c.state = CelebrationNotShown
	c.message = ""
}

// Deliver attaches msg to the round seq. It returns false when that round is
// no longer current.
func (c *Celebration) Deliver(seq uint64, msg string) bool {
	if c.state != CelebrationShown || seq != c.seq {
		return false
	}
	c.message = msg
	return true
}

// State returns the current state.
func (c Celebration) State() CelebrationState { return c.state }

// Shown reports whether the celebration is active.
func (c Celebration) Shown() bool { return c.state == CelebrationShown }

// Message returns the delivered message, empty while pending.
func (c Celebration) Message() string { return c.message }

// Seq returns the current round number.
func (c Celebration) Seq() uint64 { return c.seq }
