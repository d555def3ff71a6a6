package ui

import (
	"time"
)

// Poller drives the periodic pod refresh. All runs happen on one goroutine,
// so at most one refresh is ever outstanding. A tick that fires while a run
// is still in flight is dropped, not queued; a manual kick is never dropped
// and supersedes any tick pending at that moment.
type Poller struct {
	interval time.Duration
	run      func(manual bool)
	kick     chan struct{}
	done     chan struct{}
}

func NewPoller(interval time.Duration, run func(manual bool)) *Poller {
	return &Poller{
		interval: interval,
		run:      run,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (p *Poller) Start() {
	go p.loop()
}

// Kick requests an immediate refresh outside the regular cadence. Repeated
// kicks while one is pending coalesce into a single run.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Poller) Stop() {
	close(p.done)
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-p.kick:
			p.run(true)
		case <-ticker.C:
			p.run(false)
		}

		// A tick that fired while the run above was in flight is stale.
		select {
		case <-ticker.C:
		default:
		}
	}
}
