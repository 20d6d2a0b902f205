package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the GORM repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *pgcontainer.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	db, err := postgres.OpenURL(connStr)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(orderrepo.Migrate(db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE processed_order_items, processed_orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_ThenGet_RestoresOrderAndTotal() {
	ctx := context.Background()
	o := suite.createProcessingOrder("CH", "10", "2.50")

	suite.Require().NoError(suite.repository.Save(ctx, o, decimal.RequireFromString("12.25")))

	restored, total, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(o.ID()))
	suite.Equal("anna@example.ch", restored.Email().String())
	suite.Equal("CH", restored.Country().Code())
	suite.Equal(order.Processing, restored.Status())
	suite.True(total.Equal(decimal.RequireFromString("12.25")), total.String())

	items := restored.Items()
	suite.Require().Len(items, 2)
	suite.True(items[0].Price().Equal(decimal.NewFromInt(10)))
	suite.True(items[1].Price().Equal(decimal.RequireFromString("2.50")))
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_WithoutItems() {
	ctx := context.Background()
	o := suite.createProcessingOrder("DE")

	suite.Require().NoError(suite.repository.Save(ctx, o, decimal.Zero))

	restored, _, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Empty(restored.Items())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_SameOrderTwice_Fails() {
	ctx := context.Background()
	o := suite.createProcessingOrder("AT", "1")

	suite.Require().NoError(suite.repository.Save(ctx, o, decimal.NewFromInt(1)))
	suite.Require().Error(suite.repository.Save(ctx, o, decimal.NewFromInt(1)))

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_InvalidOrder() {
	err := suite.repository.Save(context.Background(), nil, decimal.Zero)

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	restored, _, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(restored)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListProcessed_ReturnsRecordsWithinLimit() {
	ctx := context.Background()
	for range 3 {
		suite.Require().NoError(suite.repository.Save(ctx, suite.createProcessingOrder("EU", "5"), decimal.NewFromInt(5)))
	}

	records, err := suite.repository.ListProcessed(ctx, 2)

	suite.Require().NoError(err)
	suite.Len(records, 2)
	for _, r := range records {
		suite.Equal("EU", r.Country)
		suite.Equal("anna@example.ch", r.Email)
		suite.False(r.SavedAt.IsZero())
		suite.True(r.Total.Equal(decimal.NewFromInt(5)))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListProcessed_SameSavedAt_OrdersByIDDescending() {
	ctx := context.Background()
	savedAt := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	ids := []uuid.UUID{
		uuid.MustParse("00000000-0000-4000-8000-000000000001"),
		uuid.MustParse("00000000-0000-4000-8000-000000000003"),
		uuid.MustParse("00000000-0000-4000-8000-000000000002"),
	}
	for _, id := range ids {
		suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
			ID:      id,
			Email:   "anna@example.ch",
			Country: "CH",
			Status:  order.Processing.String(),
			Total:   decimal.NewFromInt(1),
			SavedAt: savedAt,
		}).Error)
	}

	for range 3 {
		records, err := suite.repository.ListProcessed(ctx, 10)

		suite.Require().NoError(err)
		suite.Require().Len(records, 3)
		suite.Equal(ids[1].String(), records[0].ID.String())
		suite.Equal(ids[2].String(), records[1].ID.String())
		suite.Equal(ids[0].String(), records[2].ID.String())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createProcessingOrder(country string, prices ...string) *order.Order {
	email, err := kernel.NewEmail("anna@example.ch")
	suite.Require().NoError(err)
	c, err := kernel.NewCountry(country)
	suite.Require().NoError(err)

	items := make([]order.Item, 0, len(prices))
	for _, p := range prices {
		item, itemErr := order.NewItem(decimal.RequireFromString(p), 1)
		suite.Require().NoError(itemErr)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), email, items, c)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Start())
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
