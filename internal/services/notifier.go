package services

import (
	"context"
	"strings"

	"inventory/internal/cache"
	"inventory/internal/events"
	"inventory/internal/logger"
	"inventory/internal/metrics"
)

// notifier runs the side effects shared by every catalog write.
type notifier struct {
	events  events.Publisher
	stats   cache.StatsCache
	metrics *metrics.CatalogMetrics
	log     *logger.Logger
}

func newNotifier(pub events.Publisher, stats cache.StatsCache, m *metrics.CatalogMetrics, log *logger.Logger) notifier {
	if pub == nil {
		pub = events.Noop{}
	}
	if stats == nil {
		stats = cache.Noop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return notifier{events: pub, stats: stats, metrics: m, log: log}
}

// written drops cached statistics, counts the write and publishes event.
// Publish failures are logged and never fail the request.
func (n notifier) written(ctx context.Context, event events.Event) {
	n.stats.Invalidate(ctx)
	entity, action, _ := strings.Cut(string(event.Type), ".")
	n.metrics.IncWrite(entity, action)
	if err := n.events.Publish(ctx, event); err != nil {
		n.log.Warn(n.log.WithField(ctx, "event", string(event.Type)), "failed to publish catalog event", err)
	}
}
