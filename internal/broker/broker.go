// Package broker periodically recomputes the district priority index and
// broadcasts it on the event bus.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/RuralPriority/internal/hermes"
	"github.com/MikeSquared-Agency/RuralPriority/internal/metrics"
	"github.com/MikeSquared-Agency/RuralPriority/internal/ranking"
	"github.com/MikeSquared-Agency/RuralPriority/internal/scoring"
)

// IndexComputer produces the current district priority index.
type IndexComputer interface {
	DistrictPriorityIndex(ctx context.Context) ([]ranking.DistrictIndex, error)
}

type Broker struct {
	index    IndexComputer
	hermes   hermes.Client
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(index IndexComputer, h hermes.Client, interval time.Duration, logger *slog.Logger) *Broker {
	return &Broker{
		index:    index,
		hermes:   h,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

func (b *Broker) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.broadcastLoop(ctx)
}

func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

func (b *Broker) broadcastLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.Broadcast(ctx); err != nil {
				b.logger.Error("district index broadcast failed", "error", err)
			}
		}
	}
}

// Broadcast computes the index once, refreshes the per-district gauges and
// publishes the index plus an alert for every HIGH district. Publish failures
// are logged and do not abort the remaining events.
func (b *Broker) Broadcast(ctx context.Context) error {
	index, err := b.index.DistrictPriorityIndex(ctx)
	if err != nil {
		return fmt.Errorf("compute district index: %w", err)
	}

	metrics.DistrictPriorityIndex.Reset()
	entries := make([]hermes.DistrictIndexEntry, 0, len(index))
	for _, d := range index {
		metrics.DistrictPriorityIndex.WithLabelValues(d.District).Set(d.Index)
		entries = append(entries, toEntry(d))
	}

	if b.hermes == nil {
		return nil
	}

	at := b.now()
	b.publish(hermes.SubjectDistrictIndexComputed, "index_computed", hermes.NewIndexComputedEvent(entries, at))

	alerts := 0
	for _, e := range entries {
		if e.RiskBand != string(scoring.RiskHigh) {
			continue
		}
		b.publish(hermes.SubjectDistrictAlert(e.District), "alert", hermes.NewAlertEvent(e, at))
		alerts++
	}

	b.logger.Info("district index broadcast", "districts", len(entries), "alerts", alerts)
	return nil
}

func (b *Broker) publish(subject, kind string, event interface{}) {
	if err := b.hermes.Publish(subject, event); err != nil {
		b.logger.Warn("publish failed", "subject", subject, "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues(kind).Inc()
}

func toEntry(d ranking.DistrictIndex) hermes.DistrictIndexEntry {
	return hermes.DistrictIndexEntry{
		District:       d.District,
		AvgPriority:    d.AvgPriority,
		AvgSchemeGap:   d.AvgSchemeGap,
		AvgDelayMonths: d.AvgDelayMonths,
		Index:          d.Index,
		RiskBand:       string(d.RiskBand),
	}
}
