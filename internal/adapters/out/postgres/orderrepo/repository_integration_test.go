package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"sales/internal/adapters/out/postgres/orderrepo"
	"sales/internal/core/domain/model/order"
	"sales/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items RESTART IDENTITY").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_AssignsID() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("Alice")
	suite.Require().Zero(testOrder.ID())

	// Tracker is called after the id is assigned
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Store assigns a positive identifier
	suite.Positive(testOrder.ID())
	suite.assertOrderCount(1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsDistinctSequentialIDs() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), mock.Anything).Times(2)

	first := suite.createTestOrder("Alice")
	second := suite.createTestOrder("Bob")

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.NotEqual(first.ID(), second.ID())
	suite.Greater(second.ID(), first.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrderWithItems() {
	ctx := context.Background()

	item1, err := order.NewItem(10, 2)
	suite.Require().NoError(err)
	item2, err := order.NewItem(20, 5)
	suite.Require().NoError(err)

	originalOrder, err := order.NewOrder("Alice", []order.Item{item1, item2})
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal("Alice", retrievedOrder.CustomerName())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Require().Len(retrievedOrder.Items(), 2)
	suite.Equal(int64(10), retrievedOrder.Items()[0].ProductID())
	suite.Equal(2, retrievedOrder.Items()[0].Quantity())
	suite.Equal(int64(20), retrievedOrder.Items()[1].ProductID())
	suite.Equal(5, retrievedOrder.Items()[1].Quantity())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, 12345)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ExistingOrder_PersistsNewStatus() {
	testCases := []struct {
		name   string
		status order.Status
	}{
		{name: "confirm", status: order.Confirmed},
		{name: "cancel", status: order.Cancelled},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			testOrder := suite.createTestOrder("Alice")
			suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), testOrder).Once()
			suite.Require().NoError(suite.repository.Add(ctx, testOrder))

			found, err := suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Pending, tc.status)
			suite.Require().NoError(err)
			suite.True(found)

			retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
			suite.Require().NoError(err)
			suite.Equal(tc.status, retrievedOrder.Status())
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	found, err := suite.repository.UpdateStatus(ctx, 98765, order.Pending, order.Confirmed)
	suite.Require().NoError(err)
	suite.False(found)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectedStatus_LeavesOrderUnchanged() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("Alice")
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// The order is Pending; a swap expecting Confirmed matches nothing.
	found, err := suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Confirmed, order.Cancelled)
	suite.Require().NoError(err)
	suite.False(found)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrievedOrder.Status())

	// The swap that expects the real current status still wins.
	found, err = suite.repository.UpdateStatus(ctx, testOrder.ID(), order.Pending, order.Confirmed)
	suite.Require().NoError(err)
	suite.True(found)

	retrievedOrder, err = suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrievedOrder.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_InvalidStatus_ReturnsError() {
	ctx := context.Background()

	found, err := suite.repository.UpdateStatus(ctx, 1, order.Pending, order.Status(99))
	suite.Require().Error(err)
	suite.False(found)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_ReturnsOrdersSortedByID() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), mock.Anything).Times(3)

	names := []string{"Alice", "Bob", "Carol"}
	for _, name := range names {
		suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder(name)))
	}

	orders, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)

	for i, o := range orders {
		suite.Equal(names[i], o.CustomerName())
		if i > 0 {
			suite.Greater(o.ID(), orders[i-1].ID())
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_NoOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	orders, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Empty(orders)
}

// TestOrderRepository_Concurrency verifies repository behavior under concurrent access.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_Concurrency() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder("Alice")
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), initialOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, initialOrder))

	// Simulate concurrent reads
	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)

	for range 3 {
		go func() {
			retrievedOrder, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				errors <- readErr
			} else {
				results <- retrievedOrder
			}
		}()
	}

	// Collect results
	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initialOrder.ID(), result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic test order with a single line.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(customerName string) *order.Order {
	item, err := order.NewItem(1, 3)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(customerName, []order.Item{item})
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
