package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"hawker/internal/adapters/out/postgres/orderrepo"
	"hawker/internal/adapters/out/postgres/stallrepo"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
	"hawker/internal/migrations"
	"hawker/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL
// schema built by the embedded migrations.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	machine    services.FulfillmentMachine

	stallID uuid.UUID
	noodles uuid.UUID
	skewers uuid.UUID
	clock   time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(sqlDB))

	suite.machine = services.NewFulfillmentMachine(services.NewEstimateCalculator(), services.NewPickupTokenService())
	suite.clock = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders, menu_items, stalls, users CASCADE").Error)

	ownerID := uuid.New()
	suite.stallID = uuid.New()
	suite.noodles = uuid.New()
	suite.skewers = uuid.New()

	err := stallrepo.NewGormDirectory(suite.db).Seed(context.Background(),
		[]stallrepo.UserDTO{{ID: ownerID, Email: "ah.seng@example.com", Role: "hawker"}},
		[]stallrepo.StallDTO{{ID: suite.stallID, OwnerID: ownerID, Name: "Ah Seng Noodles"}},
		[]stallrepo.MenuItemDTO{
			{ID: suite.noodles, StallID: suite.stallID, Name: "Char Kway Teow", PrepTimeMinutes: 8, PriceCents: 550},
			{ID: suite.skewers, StallID: suite.stallID, Name: "Satay", PrepTimeMinutes: 4, PriceCents: 120},
		},
	)
	suite.Require().NoError(err)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	stallID, err := kernel.UUIDFromGoogle(suite.stallID)
	suite.Require().NoError(err)
	noodles, err := kernel.UUIDFromGoogle(suite.noodles)
	suite.Require().NoError(err)
	skewers, err := kernel.UUIDFromGoogle(suite.skewers)
	suite.Require().NoError(err)

	// Prep times passed here are ignored on load; the menu is the source.
	a, err := order.NewItem(kernel.NewUUID(), noodles, 1, 0, "")
	suite.Require().NoError(err)
	b, err := order.NewItem(kernel.NewUUID(), skewers, 3, 0, "less chilli")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), stallID, order.PaymentPaid, []*order.Item{a, b}, createdAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_LoadsPrepTimesFromMenu() {
	ctx := context.Background()

	// Given
	o := suite.newOrder(suite.clock.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// When
	loaded, err := suite.repository.Get(ctx, o.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(order.Awaiting, loaded.Status())
	suite.Equal(order.PaymentPaid, loaded.PaymentStatus())
	suite.Equal(1, loaded.Version())
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal(8, loaded.Items()[0].PrepTimeMinutes())
	suite.Equal(4, loaded.Items()[1].PrepTimeMinutes())
	suite.Equal("less chilli", loaded.Items()[1].Note())
	suite.Equal(23, suite.machine.DefaultEstimate(loaded))
	suite.True(o.CreatedAt().Equal(loaded.CreatedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitions() {
	ctx := context.Background()

	// Given an order accepted, fully prepared and marked ready
	o := suite.newOrder(suite.clock.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, o))
	o, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	token, err := suite.machine.Accept(o, nil, suite.clock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(2, o.Version())

	for _, item := range o.Items() {
		suite.Require().NoError(suite.machine.SetItemPrepared(o, item.ID(), true))
	}
	suite.Require().NoError(suite.machine.MarkReady(o, suite.clock.Add(20*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	// When
	loaded, err := suite.repository.Get(ctx, o.ID())

	// Then
	suite.Require().NoError(err)
	suite.Equal(order.Ready, loaded.Status())
	suite.Equal(3, loaded.Version())
	suite.Equal(23, *loaded.EstimatedMinutes())
	suite.True(suite.clock.Add(23 * time.Minute).Equal(*loaded.EstimatedReadyTime()))
	suite.Equal(services.DigestPickupToken(token), loaded.PickupToken().Digest())
	suite.Empty(loaded.PickupToken().Plaintext())
	for _, item := range loaded.Items() {
		suite.True(item.IsPrepared())
	}

	// And the token still verifies after a reload
	suite.Require().NoError(suite.machine.Collect(loaded, token, suite.clock.Add(25*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	collected, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Collected, collected.Status())
	suite.Equal(order.PaymentCompleted, collected.PaymentStatus())
	suite.NotNil(collected.PickupToken().UsedAt())
	suite.Equal(services.DigestPickupToken(token), collected.PickupToken().Digest())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()

	// Given two copies of the same order
	o := suite.newOrder(suite.clock.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, o))
	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = suite.machine.Accept(first, nil, suite.clock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// When the second copy is written
	suite.Require().NoError(suite.machine.Cancel(second, suite.clock))
	err = suite.repository.Update(ctx, second)

	// Then
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder(suite.clock)
	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListAwaitingCreatedBefore() {
	ctx := context.Background()

	oldest := suite.newOrder(suite.clock.Add(-3 * time.Hour))
	older := suite.newOrder(suite.clock.Add(-2 * time.Hour))
	fresh := suite.newOrder(suite.clock.Add(-time.Minute))
	accepted := suite.newOrder(suite.clock.Add(-4 * time.Hour))
	for _, o := range []*order.Order{oldest, older, fresh, accepted} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	_, err := suite.machine.Accept(accepted, nil, suite.clock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, accepted))

	ids, err := suite.repository.ListAwaitingCreatedBefore(ctx, suite.clock.Add(-30*time.Minute), 10)
	suite.Require().NoError(err)
	suite.Require().Len(ids, 2)
	suite.True(ids[0].IsEqual(oldest.ID()))
	suite.True(ids[1].IsEqual(older.ID()))

	ids, err = suite.repository.ListAwaitingCreatedBefore(ctx, suite.clock, 1)
	suite.Require().NoError(err)
	suite.Len(ids, 1)

	_, err = suite.repository.ListAwaitingCreatedBefore(ctx, suite.clock, 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_SerializesWriters() {
	ctx := context.Background()

	o := suite.newOrder(suite.clock.Add(-time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.db.Transaction(func(tx *gorm.DB) error {
				repo := orderrepo.NewGormOrderRepository(tx)
				locked, err := repo.GetForUpdate(ctx, o.ID())
				if err != nil {
					return err
				}
				if _, err = suite.machine.Accept(locked, nil, suite.clock); err != nil {
					return err
				}
				return repo.Update(ctx, locked)
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
			} else {
				suite.ErrorIs(err, order.ErrInvalidState)
				rejected++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, accepted)
	suite.Equal(1, rejected)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
