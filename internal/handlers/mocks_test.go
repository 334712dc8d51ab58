package handlers

import (
	"mime/multipart"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockSettingService struct{ mock.Mock }

var _ services.SettingService = (*MockSettingService)(nil)

func (m *MockSettingService) GetAll() (map[string]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingService) GetShopSettings() (*models.ShopSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopSettings), args.Error(1)
}

func (m *MockSettingService) IsShopOpen() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingService) Update(values map[string]string) (map[string]string, error) {
	args := m.Called(values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingService) SetShopOpen(open bool) error {
	return m.Called(open).Error(0)
}

func (m *MockSettingService) SeedDefaults() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

var _ services.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ListCategories() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategory(categoryID int64) (*models.Category, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) RenameCategory(categoryID int64, name string) (*models.Category, error) {
	args := m.Called(categoryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(categoryID int64) error {
	return m.Called(categoryID).Error(0)
}

func (m *MockCatalogService) ListItems() ([]models.MenuItem, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) ListAvailableItems(categoryID *int64) ([]models.MenuItem, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) GetItem(itemID int64) (*models.MenuItem, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) CreateItem(req models.CreateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error) {
	args := m.Called(req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) UpdateItem(itemID int64, req models.UpdateMenuItemPayload, image *multipart.FileHeader) (*models.MenuItem, error) {
	args := m.Called(itemID, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockCatalogService) DeleteItem(itemID int64) error {
	return m.Called(itemID).Error(0)
}

type MockOrderService struct{ mock.Mock }

var _ services.OrderService = (*MockOrderService)(nil)

func (m *MockOrderService) CreateOrder(req models.CreateOrderPayload) (*models.Order, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderService) GetOrderByID(orderID int64) (*models.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(orderID int64, status string) (*models.Order, error) {
	args := m.Called(orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) SoftDeleteOrder(orderID int64) error {
	return m.Called(orderID).Error(0)
}

type MockPageViewService struct{ mock.Mock }

var _ services.PageViewService = (*MockPageViewService)(nil)

func (m *MockPageViewService) RecordVisit() error {
	return m.Called().Error(0)
}

func (m *MockPageViewService) TodayCount() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type MockReportService struct{ mock.Mock }

var _ services.ReportService = (*MockReportService)(nil)

func (m *MockReportService) GetDashboardStats() (*models.DashboardStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

var _ services.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) LoginUser(req models.Credentials) (*models.LoginResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) GetUserProfile(userID int64) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) UpdateAccount(userID int64, req models.UpdateAccountPayload) (*models.User, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*utils.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.Claims), args.Error(1)
}

func (m *MockAuthService) EnsureAdmin(username, password string) (bool, error) {
	args := m.Called(username, password)
	return args.Bool(0), args.Error(1)
}

type MockSessionManager struct{ mock.Mock }

var _ SessionManager = (*MockSessionManager)(nil)

func (m *MockSessionManager) StartSession(c *gin.Context, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockSessionManager) EndSession(c *gin.Context) error {
	return m.Called().Error(0)
}
