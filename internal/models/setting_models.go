package models

import "time"

// Known setting keys.
const (
	SettingShopStatus    = "shop_status"
	SettingPhone         = "phone"
	SettingAddress       = "address"
	SettingHoursWeekday  = "hours_weekday"
	SettingHoursSaturday = "hours_saturday"
	SettingHoursSunday   = "hours_sunday"
	SettingWhatsAppMsg   = "whatsapp_msg"
	SettingUPIID         = "upi_id"
	SettingBannerURL     = "banner_url"
)

const (
	ShopStatusOpen   = "open"
	ShopStatusClosed = "closed"
)

// KnownSettingKeys lists every key the admin may write.
var KnownSettingKeys = []string{
	SettingShopStatus,
	SettingPhone,
	SettingAddress,
	SettingHoursWeekday,
	SettingHoursSaturday,
	SettingHoursSunday,
	SettingWhatsAppMsg,
	SettingUPIID,
	SettingBannerURL,
}

// Setting is a single key/value row. Last write wins.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopSettings is the typed view of the settings table, read fresh on every request.
type ShopSettings struct {
	ShopOpen      bool   `json:"shop_open"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	HoursWeekday  string `json:"hours_weekday"`
	HoursSaturday string `json:"hours_saturday"`
	HoursSunday   string `json:"hours_sunday"`
	WhatsAppMsg   string `json:"whatsapp_msg"`
	UPIID         string `json:"upi_id"`
	BannerURL     string `json:"banner_url"`
}

// ShopSettingsFromMap builds the typed view; a missing shop_status means closed.
func ShopSettingsFromMap(m map[string]string) ShopSettings {
	return ShopSettings{
		ShopOpen:      m[SettingShopStatus] == ShopStatusOpen,
		Phone:         m[SettingPhone],
		Address:       m[SettingAddress],
		HoursWeekday:  m[SettingHoursWeekday],
		HoursSaturday: m[SettingHoursSaturday],
		HoursSunday:   m[SettingHoursSunday],
		WhatsAppMsg:   m[SettingWhatsAppMsg],
		UPIID:         m[SettingUPIID],
		BannerURL:     m[SettingBannerURL],
	}
}

type UpdateSettingsPayload struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

type ShopStatusPayload struct {
	Open *bool `json:"open" binding:"required"`
}
