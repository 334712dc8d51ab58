package services

import (
	"testing"
	"time"

	"streetbite_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaults_NeverOverwrites(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settingRepo.Upsert(f.db, models.SettingPhone, "+91 11111 11111", time.Now().UTC()))

	added, err := f.settings.SeedDefaults()
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSettings)-1, added)

	added, err = f.settings.SeedDefaults()
	require.NoError(t, err)
	assert.Zero(t, added)

	all, err := f.settings.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "+91 11111 11111", all[models.SettingPhone])
	assert.Equal(t, models.ShopStatusClosed, all[models.SettingShopStatus])
	assert.Contains(t, all, models.SettingBannerURL)

	open, err := f.settings.IsShopOpen()
	require.NoError(t, err)
	assert.False(t, open)
}

func TestIsShopOpen_ExactMatchOnly(t *testing.T) {
	f := newFixture(t)

	open, err := f.settings.IsShopOpen()
	require.NoError(t, err)
	assert.False(t, open, "missing row means closed")

	for value, want := range map[string]bool{"open": true, "Open": false, " open": false, "closed": false, "": false} {
		require.NoError(t, f.settingRepo.Upsert(f.db, models.SettingShopStatus, value, time.Now().UTC()))
		open, err := f.settings.IsShopOpen()
		require.NoError(t, err)
		assert.Equal(t, want, open, "shop_status=%q", value)
	}
}

func TestUpdateSettings(t *testing.T) {
	f := newFixture(t)
	_, err := f.settings.SeedDefaults()
	require.NoError(t, err)

	updated, err := f.settings.Update(map[string]string{
		models.SettingShopStatus: " OPEN ",
		models.SettingUPIID:      "stall@upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "open", updated[models.SettingShopStatus])
	assert.Equal(t, "stall@upi", updated[models.SettingUPIID])

	typed, err := f.settings.GetShopSettings()
	require.NoError(t, err)
	assert.True(t, typed.ShopOpen)
	assert.Equal(t, "stall@upi", typed.UPIID)
}

func TestUpdateSettings_RejectsWithoutWriting(t *testing.T) {
	f := newFixture(t)
	_, err := f.settings.SeedDefaults()
	require.NoError(t, err)

	_, err = f.settings.Update(map[string]string{
		models.SettingPhone: "+91 22222 22222",
		"theme":             "dark",
	})
	assert.ErrorIs(t, err, ErrUnknownSetting)

	_, err = f.settings.Update(map[string]string{
		models.SettingPhone:      "+91 22222 22222",
		models.SettingShopStatus: "maybe",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.settings.Update(nil)
	assert.ErrorIs(t, err, ErrValidation)

	all, err := f.settings.GetAll()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings[models.SettingPhone], all[models.SettingPhone])
	assert.NotContains(t, all, "theme")
}

func TestSetShopOpen(t *testing.T) {
	f := newFixture(t)

	f.setShopOpen(t, true)
	open, err := f.settings.IsShopOpen()
	require.NoError(t, err)
	assert.True(t, open)

	f.setShopOpen(t, false)
	open, err = f.settings.IsShopOpen()
	require.NoError(t, err)
	assert.False(t, open)
}
