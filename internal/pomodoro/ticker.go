package pomodoro

import (
	"sync"
	"time"
)

// Ticker invokes a callback at a fixed interval on a single goroutine until
// stopped. At most one callback runs at a time.
type Ticker struct {
	interval time.Duration
	fn       func()

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewTicker returns a ticker that will call fn every interval once started.
func NewTicker(interval time.Duration, fn func()) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop. Calling it more than once has no effect.
func (t *Ticker) Start() {
	t.startOnce.Do(func() { go t.loop() })
}

// Stop cancels the loop. It is safe to call more than once and from inside
// the callback.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed after the loop exits.
func (t *Ticker) Done() <-chan struct{} { return t.done }

func (t *Ticker) loop() {
	defer close(t.done)
	tk := time.NewTicker(t.interval)
	defer tk.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-tk.C:
			select {
			case <-t.stop:
				return
			default:
			}
			t.fn()
		}
	}
}
