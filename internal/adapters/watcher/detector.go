package watcher

import (
	"context"
	"iter"
	"sync"
	"time"

	"go.trai.ch/regen/internal/core/domain"
	"go.trai.ch/regen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Detector)(nil)

// Detector merges the native watcher and the polling fallback into one
// de-duplicated change stream. Downstream consumers never see which
// source produced an event beyond the ChangeEvent's Source field.
type Detector struct {
	native  *Native
	poller  *Poller
	dedupe  *dedupe
	logger  ports.Logger
	metrics ports.Recorder

	events chan domain.ChangeEvent
	wg     sync.WaitGroup
}

// NewDetector creates a change detector. A nil native watcher is
// allowed; detection then relies on polling alone.
func NewDetector(native *Native, poller *Poller, dedupeWindow time.Duration, logger ports.Logger, metrics ports.Recorder) *Detector {
	return &Detector{
		native:  native,
		poller:  poller,
		dedupe:  newDedupe(dedupeWindow),
		logger:  logger,
		metrics: metrics,
		events:  make(chan domain.ChangeEvent, eventChannelBuffer),
	}
}

// Start starts both sources and begins merging their events.
func (d *Detector) Start(ctx context.Context, root string) error {
	if d.native != nil {
		if err := d.native.Start(ctx, root); err != nil {
			// Native watch is best-effort; the poller is the safety net.
			d.logger.Error(zerr.Wrap(err, "native watch unavailable, relying on polling"))
			d.native = nil
		}
	}
	if err := d.poller.Start(ctx, root); err != nil {
		return err
	}

	if d.native != nil {
		d.wg.Add(1)
		go d.forward(d.native.Events())
	}
	d.wg.Add(1)
	go d.forward(d.poller.Events())

	go func() {
		d.wg.Wait()
		close(d.events)
	}()
	return nil
}

// Stop stops both sources. The merged stream closes once the source
// streams drain.
func (d *Detector) Stop() error {
	var err error
	if d.native != nil {
		err = d.native.Stop()
	}
	if perr := d.poller.Stop(); perr != nil && err == nil {
		err = perr
	}
	return err
}

// Events returns the merged, de-duplicated change stream.
func (d *Detector) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range d.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (d *Detector) forward(source iter.Seq[domain.ChangeEvent]) {
	defer d.wg.Done()
	for event := range source {
		if !d.dedupe.allow(event.Path, event.At) {
			continue
		}
		d.metrics.ChangeDetected(event.Source.String())
		d.events <- event
	}
}
