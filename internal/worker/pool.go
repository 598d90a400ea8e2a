// Package worker implements the buffered worker pool that decouples stat
// ingestion from warehouse writes:
// - Backpressure via a bounded queue
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fixturecast/stats-api/internal/models"
)

var (
	recordsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecast_stat_records_ingested_total",
		Help: "Total number of match stat records accepted for ingestion",
	})

	recordsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecast_stat_records_processed_total",
		Help: "Total number of match stat records written to the warehouse",
	})

	recordsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecast_stat_records_failed_total",
		Help: "Total number of match stat records that failed processing",
	})

	recordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fixturecast_stat_records_dropped_total",
		Help: "Total number of match stat records dropped during shutdown",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fixturecast_ingest_queue_depth",
		Help: "Current depth of the ingest queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fixturecast_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool manages a pool of workers writing stat records in batches
type Pool struct {
	config   PoolConfig
	jobQueue chan models.MatchStatRecord
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan models.MatchStatRecord, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Ingest pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool, flushing queued records
func (p *Pool) Stop() {
	p.logger.Info("Stopping ingest pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Ingest pool stopped")
}

// Enqueue adds a record to the queue. Returns false if the pool is shutting
// down.
func (p *Pool) Enqueue(rec models.MatchStatRecord) bool {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue record (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- rec:
		recordsIngested.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("Ingest pool context canceled, dropping record")
		recordsDropped.Inc()
		return false
	default:
		recordsDropped.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker drains the queue into batches, flushing on size or interval
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.MatchStatRecord, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.insertBatch(batch); err != nil {
			p.logger.Errorw("Batch insert failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			recordsFailed.Add(float64(len(batch)))
		} else {
			recordsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case rec, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			// Drain what is already queued before exiting so Stop keeps its
			// flush guarantee.
			for {
				select {
				case rec, ok := <-p.jobQueue:
					if !ok {
						flush()
						return
					}
					batch = append(batch, rec)
					if len(batch) >= p.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// insertBatch writes one batch of stat records to the warehouse. Nil metric
// pointers are inserted as NULL, preserving "not reported" so the series
// builder can exclude those matches instead of treating them as zero.
func (p *Pool) insertBatch(batch []models.MatchStatRecord) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO fixture_stats.match_stats (
			match_id, season, competition_id, home_team_id, away_team_id,
			match_date, status,
			home_corners, away_corners, home_cards, away_cards, home_goals, away_goals
		)
	`)
	if err != nil {
		return err
	}

	for _, rec := range batch {
		err := chBatch.Append(
			rec.MatchID,
			int64(rec.Season),
			rec.CompetitionID,
			rec.HomeTeamID,
			rec.AwayTeamID,
			rec.MatchDate,
			rec.Status,
			rec.HomeCorners,
			rec.AwayCorners,
			rec.HomeCards,
			rec.AwayCards,
			rec.HomeGoals,
			rec.AwayGoals,
		)
		if err != nil {
			p.logger.Warnw("Failed to append record to batch", "error", err, "match_id", rec.MatchID)
			continue
		}
	}

	return chBatch.Send()
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
