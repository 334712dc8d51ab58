package services

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"testing"
	"time"

	"streetbite_backend/internal/database/dbtest"
	"streetbite_backend/internal/metrics"
	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fixture struct {
	db          *sql.DB
	settingRepo repositories.SettingRepository
	catalogRepo repositories.CatalogRepository
	orderRepo   repositories.OrderRepository
	settings    SettingService
	calendar    Calendar
	metrics     *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	settingRepo := repositories.NewSettingRepository(db)
	return &fixture{
		db:          db,
		settingRepo: settingRepo,
		catalogRepo: repositories.NewCatalogRepository(db),
		orderRepo:   repositories.NewOrderRepository(db),
		settings:    NewSettingService(settingRepo, db),
		calendar:    NewCalendar(time.UTC),
		metrics:     metrics.New(),
	}
}

func (f *fixture) setShopOpen(t *testing.T, open bool) {
	t.Helper()
	require.NoError(t, f.settings.SetShopOpen(open))
}

func (f *fixture) addCategory(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.catalogRepo.CreateCategory(f.db, &models.Category{Name: name})
	require.NoError(t, err)
	return id
}

func (f *fixture) addItem(t *testing.T, categoryID int64, name string, price float64) int64 {
	t.Helper()
	id, err := f.catalogRepo.CreateItem(f.db, &models.MenuItem{Name: name, Price: price, CategoryID: categoryID, IsAvailable: true})
	require.NoError(t, err)
	return id
}

func (f *fixture) orderService(mode string) OrderService {
	return NewOrderService(f.orderRepo, f.catalogRepo, f.settings, f.db, f.calendar, mode, f.metrics)
}

// counterValue reads a counter from the fixture's registry. An empty label matches unlabelled counters.
func counterValue(t *testing.T, f *fixture, name, label string) float64 {
	t.Helper()
	families, err := f.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if label == "" && len(metric.GetLabel()) == 0 {
				return metric.GetCounter().GetValue()
			}
			for _, pair := range metric.GetLabel() {
				if pair.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func ptr[T any](v T) *T { return &v }

// fileHeader builds a real multipart.FileHeader the way gin hands uploads to handlers.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}
