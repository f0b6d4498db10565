package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "canteen/internal/adapters/out/postgres"
	"canteen/internal/adapters/out/postgres/counterrepo"
	"canteen/internal/adapters/out/postgres/menurepo"
	"canteen/internal/adapters/out/postgres/orderrepo"
	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/menu"
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

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL instance, including the concurrency guarantees around
// stock reservation and token allocation.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.OrderStatusDTO{},
		&menurepo.ItemDTO{},
		&counterrepo.CounterDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_lines, order_status_history, menu_items, counters",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedItem(stock int) kernel.UUID {
	id := kernel.NewUUID()
	item, err := menu.NewItem(id, "Chai", "Hot masala chai", menu.CategoryBeverages, 10, stock, true, true)
	suite.Require().NoError(err)

	repo := menurepo.NewGormMenuItemRepository(suite.db)
	suite.Require().NoError(repo.Add(context.Background(), item))
	return id
}

// placeOrder runs the placement transaction the way the command handler
// does: lock item, reserve stock, draw a token, persist the order.
func (suite *UnitOfWorkIntegrationTestSuite) placeOrder(
	ctx context.Context,
	itemID kernel.UUID,
	quantity int,
) (*order.Order, error) {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.MenuItemRepository().GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err = item.Reserve(quantity); err != nil {
		return nil, err
	}
	if err = uow.MenuItemRepository().Update(ctx, item); err != nil {
		return nil, err
	}

	seq, err := uow.SequenceGenerator().Next(ctx, ports.OrderCounterName)
	if err != nil {
		return nil, err
	}
	token, err := order.NewToken(seq)
	if err != nil {
		return nil, err
	}

	line, err := order.NewLine(item.ID(), item.Name(), item.Price(), quantity)
	if err != nil {
		return nil, err
	}
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), token,
		[]order.Line{line}, order.PaymentModeCounter, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin should be a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction should fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_CommitsStockTokenAndOrderTogether() {
	ctx := context.Background()
	itemID := suite.seedItem(5)

	placed, err := suite.placeOrder(ctx, itemID, 2)
	suite.Require().NoError(err)
	suite.Equal("TKN0001", placed.Token().String())

	item, err := menurepo.NewGormMenuItemRepository(suite.db).Get(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(3, item.AvailableStock())

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPlaced, loaded.Status())
	suite.Len(loaded.History(), 1)
	suite.Equal(int64(20), loaded.TotalAmount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_RollbackReleasesStockAndSequence() {
	ctx := context.Background()
	itemID := suite.seedItem(5)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	item, err := uow.MenuItemRepository().GetForUpdate(ctx, itemID)
	suite.Require().NoError(err)
	suite.Require().NoError(item.Reserve(2))
	suite.Require().NoError(uow.MenuItemRepository().Update(ctx, item))

	seq, err := uow.SequenceGenerator().Next(ctx, ports.OrderCounterName)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)

	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := menurepo.NewGormMenuItemRepository(suite.db).Get(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(5, reloaded.AvailableStock(), "rolled back reservation must release stock")

	placed, err := suite.placeOrder(ctx, itemID, 1)
	suite.Require().NoError(err)
	suite.Equal("TKN0001", placed.Token().String(), "rolled back sequence draw must not burn a token")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_ConcurrentLastUnit_ExactlyOneSucceeds() {
	ctx := context.Background()
	itemID := suite.seedItem(1)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.placeOrder(ctx, itemID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrConflict):
			conflicted++
		default:
			suite.Require().NoError(err)
		}
	}

	suite.Equal(1, succeeded, "exactly one order may take the last unit")
	suite.Equal(attempts-1, conflicted)

	item, err := menurepo.NewGormMenuItemRepository(suite.db).Get(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(0, item.AvailableStock(), "stock must never go negative")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_ConcurrentTokensAreDistinct() {
	ctx := context.Background()
	itemID := suite.seedItem(100)

	const attempts = 10
	var wg sync.WaitGroup
	tokens := make(chan string, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			placed, err := suite.placeOrder(ctx, itemID, 1)
			suite.NoError(err)
			if err == nil {
				tokens <- placed.Token().String()
			}
		}()
	}
	wg.Wait()
	close(tokens)

	seen := make(map[string]bool)
	for token := range tokens {
		suite.False(seen[token], "token %s issued twice", token)
		seen[token] = true
	}
	suite.Len(seen, attempts)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
