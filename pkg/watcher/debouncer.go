package watcher

import (
	"context"
	"time"

	"github.com/ritzau/graphsketch/pkg/logging"
)

// Debouncer merges rapid change events so a reload happens once per burst
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. A burst is flushed after
// quietPeriod without events, or maxWait after its first event.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quiet   = stoppedTimer()
		maxWait = stoppedTimer()
		batch   *ChangeEvent
		count   int
	)

	flush := func() {
		quiet.Stop()
		maxWait.Stop()
		if batch == nil {
			return
		}
		logging.Debug("Flushing accumulated events", "count", count, "type", batch.Type.String())
		batch.Timestamp = time.Now()
		select {
		case d.output <- *batch:
		case <-ctx.Done():
		}
		batch, count = nil, 0
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			if batch == nil {
				batch = &ChangeEvent{}
				maxWait.Reset(d.maxWait)
			}
			// The latest event decides whether the file exists
			batch.Type = event.Type
			batch.Paths = appendUnique(batch.Paths, event.Paths...)
			count++
			quiet.Reset(d.quietPeriod)

		case <-quiet.C:
			flush()

		case <-maxWait.C:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		seen := false
		for _, d := range dst {
			if d == s {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, s)
		}
	}
	return dst
}
