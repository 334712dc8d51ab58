package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"streetbite_backend/internal/database/dbtest"
	"streetbite_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedCategory(t *testing.T, repo CatalogRepository, db *sql.DB, name string) int64 {
	t.Helper()
	id, err := repo.CreateCategory(db, &models.Category{Name: name})
	require.NoError(t, err)
	return id
}

func seedItem(t *testing.T, repo CatalogRepository, db *sql.DB, categoryID int64, name string, price float64, available bool) int64 {
	t.Helper()
	id, err := repo.CreateItem(db, &models.MenuItem{Name: name, Price: price, CategoryID: categoryID, IsAvailable: available})
	require.NoError(t, err)
	return id
}

func seedOrder(t *testing.T, repo OrderRepository, db *sql.DB, createdAt time.Time, status models.OrderStatus, total float64, lines ...models.OrderItem) int64 {
	t.Helper()
	order := &models.Order{
		OrderType:  models.OrderTypeAtStall,
		TotalPrice: total,
		Status:     status,
		CreatedAt:  createdAt.UTC(),
	}
	id, err := repo.CreateOrder(db, order)
	require.NoError(t, err)
	for _, line := range lines {
		line.OrderID = id
		_, err := repo.CreateOrderItem(db, &line)
		require.NoError(t, err)
	}
	return id
}

func TestSettingRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewSettingRepository(db)
	now := time.Now().UTC()

	_, err := repo.Get(models.SettingShopStatus)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Upsert(db, models.SettingShopStatus, "open", now))
	require.NoError(t, repo.Upsert(db, models.SettingShopStatus, "closed", now))
	value, err := repo.Get(models.SettingShopStatus)
	require.NoError(t, err)
	assert.Equal(t, "closed", value, "last write wins")

	inserted, err := repo.InsertIfAbsent(db, models.SettingShopStatus, "open", now)
	require.NoError(t, err)
	assert.False(t, inserted)
	inserted, err = repo.InsertIfAbsent(db, models.SettingPhone, "+91 1", now)
	require.NoError(t, err)
	assert.True(t, inserted)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, dbtest.Count(t, db, "settings", "setting_key = $1", models.SettingShopStatus))
}

func TestPageViewRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewPageViewRepository(db)

	n, err := repo.CountForDay("2026-10-16")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Increment("2026-10-16"))
	require.NoError(t, repo.Increment("2026-10-16"))
	require.NoError(t, repo.Increment("2026-10-17"))

	n, err = repo.CountForDay("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2, dbtest.Count(t, db, "page_views", ""))
}

func TestCatalogRepository_Categories(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCatalogRepository(db)

	drinksID := seedCategory(t, repo, db, "Drinks")
	seedCategory(t, repo, db, "Chaat")

	_, err := repo.CreateCategory(db, &models.Category{Name: "Drinks"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	categories, err := repo.GetCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Chaat", categories[0].Name)

	require.NoError(t, repo.UpdateCategory(db, &models.Category{ID: drinksID, Name: "Beverages"}))
	cat, err := repo.GetCategoryByID(drinksID)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", cat.Name)

	err = repo.UpdateCategory(db, &models.Category{ID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCategory(db, 999), ErrNotFound)
}

func TestCatalogRepository_Items(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCatalogRepository(db)

	drinks := seedCategory(t, repo, db, "Drinks")
	snacks := seedCategory(t, repo, db, "Snacks")
	teaID := seedItem(t, repo, db, drinks, "Tea", 20, true)
	seedItem(t, repo, db, drinks, "Lassi", 40, false)
	samosaID := seedItem(t, repo, db, snacks, "Samosa", 15, true)

	tea, err := repo.GetItemByID(teaID)
	require.NoError(t, err)
	assert.Equal(t, "Tea", tea.Name)
	assert.Equal(t, "Drinks", tea.CategoryName)
	assert.InDelta(t, 20.0, tea.Price, 0.001)
	assert.True(t, tea.IsAvailable)

	all, err := repo.GetItems(models.MenuFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := repo.GetItems(models.MenuFilters{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	availableDrinks, err := repo.GetItems(models.MenuFilters{AvailableOnly: true, CategoryID: &drinks})
	require.NoError(t, err)
	require.Len(t, availableDrinks, 1)
	assert.Equal(t, teaID, availableDrinks[0].ID)

	tea.IsAvailable = false
	tea.ImagePath = strPtr("abc_tea.png")
	require.NoError(t, repo.UpdateItem(db, tea))
	available, err = repo.GetItems(models.MenuFilters{AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, samosaID, available[0].ID)

	paths, err := repo.ImagePathsByCategory(db, drinks)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc_tea.png"}, paths)

	n, err := repo.DeleteItemsByCategory(db, drinks)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, repo.DeleteCategory(db, drinks))
	assert.Equal(t, 1, dbtest.Count(t, db, "menu_items", ""))

	_, err = repo.GetItemByID(teaID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteItem(db, teaID), ErrNotFound)
}

func TestCatalogRepository_ItemRequiresCategory(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewCatalogRepository(db)

	_, err := repo.CreateItem(db, &models.MenuItem{Name: "Orphan", Price: 1, CategoryID: 42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseError))
}

func TestOrderRepository_Lifecycle(t *testing.T) {
	db := dbtest.Open(t)
	catalog := NewCatalogRepository(db)
	repo := NewOrderRepository(db)

	cat := seedCategory(t, catalog, db, "Drinks")
	teaID := seedItem(t, catalog, db, cat, "Tea", 20, true)

	now := time.Now().UTC()
	orderID := seedOrder(t, repo, db, now, models.OrderStatusPending, 40,
		models.OrderItem{MenuItemID: teaID, Quantity: 2, PriceAtTime: 20},
		models.OrderItem{MenuItemID: 777, Quantity: 1, PriceAtTime: 5},
	)

	order, err := repo.GetOrderByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderTypeAtStall, order.OrderType)
	assert.False(t, order.IsDeleted)
	assert.InDelta(t, 40.0, order.TotalPrice, 0.001)

	items, err := repo.GetOrderItemsByOrderID(orderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].MenuItemName)
	assert.Equal(t, "Tea", *items[0].MenuItemName)
	assert.Nil(t, items[1].MenuItemName, "deleted or unknown menu items have no name")

	// idempotent status set
	require.NoError(t, repo.UpdateOrderStatus(db, orderID, models.OrderStatusCompleted, now))
	require.NoError(t, repo.UpdateOrderStatus(db, orderID, models.OrderStatusCompleted, now))
	order, err = repo.GetOrderByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)

	assert.ErrorIs(t, repo.UpdateOrderStatus(db, 999, models.OrderStatusCompleted, now), ErrNotFound)
	assert.ErrorIs(t, repo.SoftDeleteOrder(db, 999, now), ErrNotFound)

	orders, total, err := repo.GetOrders(models.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)

	require.NoError(t, repo.SoftDeleteOrder(db, orderID, now))
	orders, total, err = repo.GetOrders(models.OrderFilters{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)

	order, err = repo.GetOrderByID(orderID)
	require.NoError(t, err, "soft-deleted orders stay retrievable by id")
	assert.True(t, order.IsDeleted)
	items, err = repo.GetOrderItemsByOrderID(orderID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestOrderRepository_GetOrdersFilters(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewOrderRepository(db)

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	seedOrder(t, repo, db, day.Add(9*time.Hour), models.OrderStatusPending, 10)
	seedOrder(t, repo, db, day.Add(10*time.Hour), models.OrderStatusCompleted, 20)
	seedOrder(t, repo, db, day.Add(11*time.Hour), models.OrderStatusPending, 30)
	seedOrder(t, repo, db, day.Add(-2*time.Hour), models.OrderStatusPending, 40)

	pending := string(models.OrderStatusPending)
	orders, total, err := repo.GetOrders(models.OrderFilters{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, orders, 3)

	from, to := day, day.AddDate(0, 0, 1)
	orders, total, err = repo.GetOrders(models.OrderFilters{From: &from, To: &to, PageSize: 2, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, orders, 2)
	assert.InDelta(t, 30.0, orders[0].TotalPrice, 0.001, "newest first")

	orders, _, err = repo.GetOrders(models.OrderFilters{From: &from, To: &to, PageSize: 2, Page: 2})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.InDelta(t, 10.0, orders[0].TotalPrice, 0.001)
}

func TestReportRepository(t *testing.T) {
	db := dbtest.Open(t)
	catalog := NewCatalogRepository(db)
	orders := NewOrderRepository(db)
	repo := NewReportRepository(db)

	cat := seedCategory(t, catalog, db, "Snacks")
	a := seedItem(t, catalog, db, cat, "A", 10, true)
	b := seedItem(t, catalog, db, cat, "B", 10, true)
	c := seedItem(t, catalog, db, cat, "C", 10, true)

	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	noon := day.Add(12 * time.Hour)

	seedOrder(t, orders, db, noon, models.OrderStatusPending, 30,
		models.OrderItem{MenuItemID: b, Quantity: 3, PriceAtTime: 10})
	seedOrder(t, orders, db, noon, models.OrderStatusCompleted, 30,
		models.OrderItem{MenuItemID: a, Quantity: 3, PriceAtTime: 10})
	seedOrder(t, orders, db, noon, models.OrderStatusCancelled, 100,
		models.OrderItem{MenuItemID: c, Quantity: 10, PriceAtTime: 10})
	deleted := seedOrder(t, orders, db, noon, models.OrderStatusPending, 500,
		models.OrderItem{MenuItemID: c, Quantity: 50, PriceAtTime: 10})
	require.NoError(t, orders.SoftDeleteOrder(db, deleted, noon))
	seedOrder(t, orders, db, day.Add(-time.Hour), models.OrderStatusPending, 7)

	n, err := repo.CountActiveOrders()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	n, err = repo.CountMenuItems()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = repo.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sales, err := repo.SumSales(day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 60.0, sales, 0.001, "cancelled and deleted orders excluded")

	empty, err := repo.SumSales(day.AddDate(0, 0, 5), day.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Zero(t, empty)

	top, err := repo.TopItems(day, day.AddDate(0, 0, 1), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, a, top[0].MenuItemID, "ties broken by lower id")
	assert.Equal(t, b, top[1].MenuItemID)
	assert.Equal(t, int64(3), top[0].Quantity)
}

func TestAuthRepository(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewAuthRepository(db)

	id, err := repo.CreateUser(db, &models.User{Username: "admin"}, "hash-1")
	require.NoError(t, err)
	otherID, err := repo.CreateUser(db, &models.User{Username: "cook"}, "hash-2")
	require.NoError(t, err)

	_, err = repo.CreateUser(db, &models.User{Username: "admin"}, "hash-3")
	assert.ErrorIs(t, err, ErrDuplicateKey)

	user, hash, err := repo.FindUserByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "hash-1", hash)

	taken, err := repo.UsernameTakenByOther("cook", id)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.UsernameTakenByOther("cook", otherID)
	require.NoError(t, err)
	assert.False(t, taken)

	now := time.Now().UTC()
	require.NoError(t, repo.UpdateUsername(db, id, "owner", now))
	assert.ErrorIs(t, repo.UpdateUsername(db, id, "cook", now), ErrDuplicateKey)
	require.NoError(t, repo.UpdatePasswordHash(db, id, "hash-new", now))

	_, hash, err = repo.FindUserByUsername("owner")
	require.NoError(t, err)
	assert.Equal(t, "hash-new", hash)

	_, err = repo.FindUserByID(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}
