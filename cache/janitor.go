package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/service-booking/utils"
)

// Sweeper is implemented by stores that can purge expired entries.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Janitor periodically sweeps a store until Stop is called.
type Janitor struct {
	Store    Sweeper
	Interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewJanitor(store Sweeper, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Janitor{
		Store:    store,
		Interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (j *Janitor) Start() {
	if !j.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweep()
			case <-j.stopChan:
				return
			}
		}
	}()
}

// Stop ends the sweep loop and waits for it to exit.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() { close(j.stopChan) })
	if j.started.Load() {
		<-j.done
	}
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.Interval)
	defer cancel()

	removed, err := j.Store.Sweep(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("cache sweep failed: %v", err)
		return
	}
	if removed > 0 {
		utils.InfoLogger.Printf("cache sweep removed %d expired entries", removed)
	}
}
