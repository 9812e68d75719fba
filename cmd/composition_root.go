package cmd

import (
	"net/http"

	httpin "hawker/internal/adapters/in/http"
	"hawker/internal/adapters/out/postgres"
	"hawker/internal/adapters/out/postgres/stallrepo"
	"hawker/internal/adapters/out/redisstore"
	"hawker/internal/core/application/access"
	"hawker/internal/core/application/usecases/commands"
	"hawker/internal/core/application/usecases/queries"
	"hawker/internal/core/domain/services"
	"hawker/internal/core/ports"
	"hawker/internal/jobs"
	"hawker/internal/metrics"
	"hawker/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived adapters and builds handlers from them.
type CompositionRoot struct {
	cfg        Config
	log        *logger.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	redis      *redisstore.Client
	publisher  ports.EventPublisher

	registry          *prometheus.Registry
	transitionMetrics *metrics.TransitionMetrics
	jobMetrics        *metrics.JobMetrics

	guard   access.OwnershipGuard
	machine services.FulfillmentMachine
}

// NewCompositionRoot wires the core. redis and publisher are optional; pass an untyped
// nil publisher when Kafka is not configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redis *redisstore.Client,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		cfg:               cfg,
		log:               log,
		gormDB:            gormDB,
		uowFactory:        postgres.NewGormUnitOfWorkFactory(gormDB),
		redis:             redis,
		publisher:         publisher,
		registry:          registry,
		transitionMetrics: metrics.NewTransitionMetrics(registry),
		jobMetrics:        metrics.NewJobMetrics(registry),
		guard:             access.NewOwnershipGuard(stallrepo.NewGormDirectory(gormDB)),
		machine:           services.NewFulfillmentMachine(services.NewEstimateCalculator(), services.NewPickupTokenService()),
	}
}

func (c *CompositionRoot) transitioner() commands.OrderTransitioner {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOrderTransitioner(f, c.guard, c.publisher, c.transitionMetrics, c.log.Component("transitions"))
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.transitioner(), c.machine)
}

func (c *CompositionRoot) CreateSetItemPreparedCommandHandler() commands.SetItemPreparedCommandHandler {
	return commands.NewSetItemPreparedCommandHandler(c.transitioner(), c.machine)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.transitioner(), c.machine)
}

func (c *CompositionRoot) CreateCollectOrderCommandHandler() commands.CollectOrderCommandHandler {
	return commands.NewCollectOrderCommandHandler(c.transitioner(), c.machine, c.collectLimiter())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.transitioner(), c.machine)
}

func (c *CompositionRoot) CreateExpireAwaitingOrdersCommandHandler() commands.ExpireAwaitingOrdersCommandHandler {
	return commands.NewExpireAwaitingOrdersCommandHandler(c.transitioner(), c.machine)
}

func (c *CompositionRoot) CreateListStallOrdersQueryHandler() queries.ListStallOrdersQueryHandler {
	return queries.NewListStallOrdersQueryHandler(c.gormDB, c.guard)
}

// collectLimiter returns an untyped nil without Redis so the handler skips counting.
func (c *CompositionRoot) collectLimiter() ports.AttemptLimiter {
	if c.redis == nil {
		return nil
	}
	return redisstore.NewCollectLimiter(c.redis, c.cfg.Collect.MaxAttempts, c.cfg.Collect.Window)
}

// CreateHTTPHandler returns the traced API handler.
func (c *CompositionRoot) CreateHTTPHandler() http.Handler {
	server := httpin.NewServer(httpin.Handlers{
		ListStallOrders: c.CreateListStallOrdersQueryHandler(),
		AcceptOrder:     c.CreateAcceptOrderCommandHandler(),
		SetItemPrepared: c.CreateSetItemPreparedCommandHandler(),
		MarkOrderReady:  c.CreateMarkOrderReadyCommandHandler(),
		CollectOrder:    c.CreateCollectOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
	}, c.log)

	router := httpin.NewRouter(server, httpin.RouterConfig{
		JWT: httpin.JWTConfig{
			Secret:   c.cfg.JWT.Secret,
			Issuer:   c.cfg.JWT.Issuer,
			Audience: c.cfg.JWT.Audience,
			Leeway:   c.cfg.JWT.Leeway,
		},
		Metrics:   metrics.Handler(c.registry),
		BodyLimit: c.cfg.HTTP.BodyLimit,
	}, c.log)

	return httpin.Instrument(router, c.cfg.App.Name)
}

// CreateJobManager builds the background jobs. Without Redis the expiry job runs
// unlocked, which is only safe with a single replica.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	if !c.cfg.Jobs.Enabled {
		return jobs.NewJobManager(), nil
	}

	var lock jobs.Lock
	if c.redis != nil {
		redisLock, err := jobs.NewRedisLock(c.redis, c.redis.LockKey(jobs.OrderExpiryJobName), c.cfg.Jobs.LockTTL)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	expiry := jobs.NewOrderExpiryJob(
		c.CreateExpireAwaitingOrdersCommandHandler(),
		jobs.OrderExpiryConfig{
			Schedule:  c.cfg.Jobs.ExpirySchedule,
			TTL:       c.cfg.Jobs.AwaitingTTL,
			BatchSize: c.cfg.Jobs.BatchSize,
		},
		lock,
		c.jobMetrics,
		c.transitionMetrics,
		c.log,
	)
	return jobs.NewJobManager(expiry), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
