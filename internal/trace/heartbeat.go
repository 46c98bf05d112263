package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a driver-scope event on every tick of a batch run. Ticks
// that keep coming while no span ends mean a restore or pass is stuck.
type Heartbeat struct {
	quit chan struct{}
	done chan struct{}
	stop sync.Once
}

// StartHeartbeat returns nil when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{quit: make(chan struct{}), done: make(chan struct{})}
	go h.beat(tracer, time.NewTicker(interval))
	return h
}

func (h *Heartbeat) beat(tracer Tracer, tick *time.Ticker) {
	defer close(h.done)
	defer tick.Stop()
	for n := 1; ; n++ {
		select {
		case <-h.quit:
			return
		case now := <-tick.C:
			tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		}
	}
}

// Stop ends the ticker goroutine and waits for it. It is a no-op on nil and
// after the first call.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stop.Do(func() { close(h.quit) })
	<-h.done
}
