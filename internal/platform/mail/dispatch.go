package mail

import (
	"context"
	"time"

	"villagevisits/internal/platform/logger"

	"github.com/panjf2000/ants/v2"
)

// Observer receives delivery outcomes (metrics.Metrics satisfies it)
type Observer interface {
	IncMail(template string, ok bool)
}

// Dispatcher sends mail on a bounded worker pool so requests never wait on SMTP
type Dispatcher struct {
	pool    *ants.Pool
	sender  Sender
	log     logger.Logger
	obs     Observer
	timeout time.Duration
}

// NewDispatcher starts a pool of workers goroutines in front of sender
func NewDispatcher(sender Sender, workers int, log logger.Logger, obs Observer) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 4
	}
	d := &Dispatcher{sender: sender, log: log, obs: obs, timeout: 30 * time.Second}
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(v any) {
			d.log.Error().Interface("panic", v).Msg("mail worker panic")
		}),
	)
	if err != nil {
		return nil, err
	}
	d.pool = pool
	return d, nil
}

// Dispatch queues m and returns immediately
// a full pool drops the message with a warning
func (d *Dispatcher) Dispatch(m Message) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		d.deliver(ctx, m)
	})
	if err != nil {
		d.log.Warn().Err(err).Str("template", string(m.Template)).Msg("mail dropped")
		d.observe(m, false)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, m Message) {
	err := d.sender.Send(ctx, m)
	d.observe(m, err == nil)
	if err != nil {
		d.log.Error().Err(err).Str("template", string(m.Template)).Msg("mail send failed")
		return
	}
	d.log.Info().Str("template", string(m.Template)).Msg("mail sent")
}

func (d *Dispatcher) observe(m Message, ok bool) {
	if d.obs != nil {
		d.obs.IncMail(string(m.Template), ok)
	}
}

// Running is the number of in flight sends
func (d *Dispatcher) Running() int { return d.pool.Running() }

// Close waits up to timeout for queued sends then releases the pool
func (d *Dispatcher) Close(timeout time.Duration) error {
	return d.pool.ReleaseTimeout(timeout)
}

// Nop discards mail, used when SMTP is not configured
type Nop struct{ Log logger.Logger }

// Dispatch logs and drops m
func (n Nop) Dispatch(m Message) {
	n.Log.Debug().Str("template", string(m.Template)).Msg("mail disabled, message dropped")
}

// Queue is what services depend on
type Queue interface {
	Dispatch(m Message)
}
