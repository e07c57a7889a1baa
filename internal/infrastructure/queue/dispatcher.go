package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/api/metrics"
	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// leadCreator is the slice of the lead service the import pool needs.
type leadCreator interface {
	Create(ctx context.Context, in ports.LeadInput) (*domain.Lead, error)
}

type importJob struct {
	ctx     context.Context
	index   int
	input   ports.LeadInput
	results chan<- ports.ImportResult
}

// Dispatcher fans bulk lead imports out over a fixed set of workers. Rows are
// sharded by email so duplicates within a batch reach the backend in order.
type Dispatcher struct {
	workers []chan importJob
	leads   leadCreator
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, leads leadCreator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan importJob, numWorkers),
		leads:   leads,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan importJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Import creates every lead in inputs and returns one result per row, in
// input order. It blocks until all rows are processed or ctx is done; rows
// not processed by then carry ctx.Err().
func (d *Dispatcher) Import(ctx context.Context, inputs []ports.LeadInput) ([]ports.ImportResult, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	results := make([]ports.ImportResult, len(inputs))
	for i, in := range inputs {
		results[i] = ports.ImportResult{Index: i, Email: in.Email}
	}

	done := make(chan ports.ImportResult, len(inputs))
	queued := 0
	for i, in := range inputs {
		job := importJob{ctx: ctx, index: i, input: in, results: done}
		shard := d.shardIndex(in.Email)
		select {
		case d.workers[shard] <- job:
			metrics.ImportQueueDepth.WithLabelValues(strconv.Itoa(shard)).Inc()
			queued++
		case <-ctx.Done():
			return fill(results, ctx.Err()), fmt.Errorf("import leads: %w", ctx.Err())
		}
	}

	for range queued {
		select {
		case r := <-done:
			results[r.Index] = r
		case <-ctx.Done():
			return fill(results, ctx.Err()), fmt.Errorf("import leads: %w", ctx.Err())
		}
	}
	return results, nil
}

// fill marks every row that has neither a lead nor an error with err.
func fill(results []ports.ImportResult, err error) []ports.ImportResult {
	for i := range results {
		if results[i].Lead == nil && results[i].Err == nil {
			results[i].Err = err
		}
	}
	return results
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan importJob) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.ImportQueueDepth.WithLabelValues(label).Dec()
			job.results <- d.process(job, id)
		}
	}
}

func (d *Dispatcher) process(job importJob, workerID int) ports.ImportResult {
	res := ports.ImportResult{Index: job.index, Email: job.input.Email}
	if err := job.ctx.Err(); err != nil {
		res.Err = err
		metrics.LeadsImportedTotal.WithLabelValues("failed").Inc()
		return res
	}

	lead, err := d.leads.Create(job.ctx, job.input)
	if err != nil {
		res.Err = err
		metrics.LeadsImportedTotal.WithLabelValues("failed").Inc()
		d.log.Warn().Err(err).
			Int("row", job.index).
			Int("worker_id", workerID).
			Msg("lead import failed")
		return res
	}
	res.Lead = lead
	metrics.LeadsImportedTotal.WithLabelValues("created").Inc()
	return res
}
