package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/motorshield/insurance-portal/internal/api/metrics"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes approved orders to a fixed set of issuance workers using
// consistent hashing on the order id, guaranteeing per-order processing
// order.
type Dispatcher struct {
	workers []chan string
	service ports.IssuanceService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.IssuanceService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an order to the worker responsible for it.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(orderID string) {
	idx := d.shardIndex(orderID)
	d.workers[idx] <- orderID
	metrics.IssuanceQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case orderID, ok := <-ch:
			if !ok {
				return
			}
			metrics.IssuanceQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			issued, err := d.service.Issue(ctx, orderID)
			if err != nil {
				d.log.Error().Err(err).
					Str("order_id", orderID).
					Int("worker_id", id).
					Msg("policy issuance failed")
			}
			if issued > 0 {
				metrics.PoliciesIssuedTotal.Add(float64(issued))
			}
		}
	}
}
