package jobs

import (
	"context"
	"errors"
	"time"

	"hawker/internal/core/application/usecases/commands"
	"hawker/internal/metrics"
	"hawker/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	OrderExpiryJobName = "order_expiry"

	DefaultExpirySchedule  = "0 * * * * *"
	DefaultAwaitingTTL     = 30 * time.Minute
	DefaultExpiryBatchSize = 100
)

type orderExpirer interface {
	Handle(ctx context.Context, command commands.ExpireAwaitingOrdersCommand) (int, error)
}

type OrderExpiryConfig struct {
	// Schedule is a six-field cron spec (seconds first).
	Schedule  string
	TTL       time.Duration
	BatchSize int
}

func (c OrderExpiryConfig) withDefaults() OrderExpiryConfig {
	if c.Schedule == "" {
		c.Schedule = DefaultExpirySchedule
	}
	if c.TTL <= 0 {
		c.TTL = DefaultAwaitingTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultExpiryBatchSize
	}
	return c
}

// OrderExpiryJob cancels orders that stayed AWAITING longer than the configured TTL.
type OrderExpiryJob struct {
	handler orderExpirer
	cfg     OrderExpiryConfig
	lock    Lock
	metrics *metrics.JobMetrics
	expired *metrics.TransitionMetrics
	cron    *cron.Cron
	log     *logger.Logger
	now     func() time.Time
}

func NewOrderExpiryJob(
	handler orderExpirer,
	cfg OrderExpiryConfig,
	lock Lock,
	jobMetrics *metrics.JobMetrics,
	transitionMetrics *metrics.TransitionMetrics,
	log *logger.Logger,
) *OrderExpiryJob {
	if lock == nil {
		lock = noLock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &OrderExpiryJob{
		handler: handler,
		cfg:     cfg.withDefaults(),
		lock:    lock,
		metrics: jobMetrics,
		expired: transitionMetrics,
		cron:    cron.New(cron.WithSeconds()),
		log:     log.Component("order_expiry_job"),
		now:     time.Now,
	}
}

func (j *OrderExpiryJob) Name() string { return OrderExpiryJobName }

func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.log.Error(ctx, "order expiry run failed", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info(context.Background(), "order expiry job started ("+j.cfg.Schedule+")")
	return nil
}

// Stop waits for a running invocation to finish.
func (j *OrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info(context.Background(), "order expiry job stopped")
}

// Run performs one expiry pass if this replica wins the lock.
func (j *OrderExpiryJob) Run(ctx context.Context) (err error) {
	acquired, err := j.lock.Acquire(ctx)
	if err != nil {
		j.metrics.IncFailure(OrderExpiryJobName)
		return err
	}
	if !acquired {
		j.metrics.IncSkipped(OrderExpiryJobName)
		j.log.Debug(ctx, "order expiry lock held elsewhere")
		return nil
	}
	defer func() {
		if releaseErr := j.lock.Release(ctx); releaseErr != nil {
			j.log.Warn(ctx, "release order expiry lock", releaseErr)
		}
	}()

	started := j.now()
	defer func() {
		j.metrics.ObserveDuration(OrderExpiryJobName, j.now().Sub(started))
		if err != nil {
			j.metrics.IncFailure(OrderExpiryJobName)
			return
		}
		j.metrics.IncSuccess(OrderExpiryJobName)
	}()

	cmd, err := commands.NewExpireAwaitingOrdersCommand(started.UTC().Add(-j.cfg.TTL), j.cfg.BatchSize)
	if err != nil {
		return err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	j.expired.AddExpired(expired)
	if expired > 0 {
		j.log.Info(j.log.WithField(ctx, "expired", expired), "expired stale orders")
	}
	if err != nil {
		return errors.Join(errors.New("some orders could not be expired"), err)
	}
	return nil
}
