package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"canteen/internal/adapters/out/postgres/orderrepo"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}, &orderrepo.OrderStatusDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, order_status_history").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(seq int64, customerID kernel.UUID, createdAt time.Time) *order.Order {
	token, err := order.NewToken(seq)
	suite.Require().NoError(err)

	first, err := order.NewLine(kernel.NewUUID(), "Chai", 10, 2)
	suite.Require().NoError(err)
	second, err := order.NewLine(kernel.NewUUID(), "Samosa", 15, 1)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, token,
		[]order.Line{first, second}, order.PaymentModeCounter, createdAt,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newOrder(1, kernel.NewUUID(), now)

	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(aggregate.ID()))
	suite.True(loaded.CustomerID().IsEqual(aggregate.CustomerID()))
	suite.Equal("TKN0001", loaded.Token().String())
	suite.Equal(order.StatusPlaced, loaded.Status())
	suite.Equal(int64(35), loaded.TotalAmount())
	suite.Require().Len(loaded.Lines(), 2)
	suite.Equal("Chai", loaded.Lines()[0].Name())
	suite.Equal("Samosa", loaded.Lines()[1].Name())
	suite.Require().Len(loaded.History(), 1)
	suite.Equal(order.StatusPlaced, loaded.History()[0].Status)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateTokenRejected() {
	ctx := context.Background()
	now := time.Now().UTC()
	first := suite.newOrder(7, kernel.NewUUID(), now)
	second := suite.newOrder(7, kernel.NewUUID(), now)

	suite.Require().NoError(suite.repo.Add(ctx, first))

	err := suite.repo.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistoryWithoutRewritingIt() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate := suite.newOrder(2, kernel.NewUUID(), now)
	suite.Require().NoError(suite.repo.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.AdvanceStatus(order.StatusInPreparation, now.Add(time.Minute)))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	suite.Require().NoError(aggregate.AdvanceStatus(order.StatusReady, now.Add(2*time.Minute)))
	suite.Require().NoError(suite.repo.Update(ctx, aggregate))

	loaded, err := suite.repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusReady, loaded.Status())
	suite.Require().Len(loaded.History(), 3)
	suite.Equal(order.StatusPlaced, loaded.History()[0].Status)
	suite.Equal(order.StatusInPreparation, loaded.History()[1].Status)
	suite.Equal(order.StatusReady, loaded.History()[2].Status)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	aggregate := suite.newOrder(3, kernel.NewUUID(), time.Now().UTC())
	err := suite.repo.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllForCustomer_OwnOrdersMostRecentFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	older := suite.newOrder(1, customerID, base.Add(-time.Hour))
	newer := suite.newOrder(2, customerID, base)
	foreign := suite.newOrder(3, otherID, base)

	for _, o := range []*order.Order{older, newer, foreign} {
		suite.Require().NoError(suite.repo.Add(ctx, o))
	}

	result, err := suite.repo.GetAllForCustomer(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID().IsEqual(newer.ID()))
	suite.True(result[1].ID().IsEqual(older.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_FiltersByStatusAndDate() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	placed := suite.newOrder(1, kernel.NewUUID(), base)
	preparing := suite.newOrder(2, kernel.NewUUID(), base.Add(-time.Minute))
	suite.Require().NoError(suite.repo.Add(ctx, placed))
	suite.Require().NoError(suite.repo.Add(ctx, preparing))

	suite.Require().NoError(preparing.AdvanceStatus(order.StatusInPreparation, base))
	suite.Require().NoError(suite.repo.Update(ctx, preparing))

	byStatus, err := suite.repo.GetAll(ctx, ports.OrderFilter{Status: order.StatusInPreparation})
	suite.Require().NoError(err)
	suite.Require().Len(byStatus, 1)
	suite.True(byStatus[0].ID().IsEqual(preparing.ID()))

	byDate, err := suite.repo.GetAll(ctx, ports.OrderFilter{
		From: base.Add(-30 * time.Second),
		To:   base.Add(30 * time.Second),
	})
	suite.Require().NoError(err)
	suite.Require().Len(byDate, 1)
	suite.True(byDate[0].ID().IsEqual(placed.ID()))

	all, err := suite.repo.GetAll(ctx, ports.OrderFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalOrders() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	active := suite.newOrder(1, kernel.NewUUID(), base.Add(-time.Minute))
	cancelled := suite.newOrder(2, kernel.NewUUID(), base)
	suite.Require().NoError(suite.repo.Add(ctx, active))
	suite.Require().NoError(suite.repo.Add(ctx, cancelled))

	suite.Require().NoError(cancelled.AdvanceStatus(order.StatusCancelled, base))
	suite.Require().NoError(suite.repo.Update(ctx, cancelled))

	result, err := suite.repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(active.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
