package services

import (
	"fmt"
	"strconv"

	"github.com/mansaluxe/realty-backend/internal/dto"
	"github.com/mansaluxe/realty-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settings keys as stored in the settings table.
const (
	settingCompanyName        = "company_name"
	settingCompanySubtitle    = "company_subtitle"
	settingPrimaryColor       = "primary_color"
	settingSecondaryColor     = "secondary_color"
	settingCurrency           = "currency"
	settingTimezone           = "timezone"
	settingLanguage           = "language"
	settingEmailNotifications = "email_notifications"
	settingMaintenanceMode    = "maintenance_mode"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// DefaultSettings is the explicit default set applied for any key
// missing from storage.
func DefaultSettings() dto.Settings {
	return dto.Settings{
		CompanyName:        "MansaLuxeRealty",
		CompanySubtitle:    "A subsidiary of MrDGNGroup",
		PrimaryColor:       "#D4AF37",
		SecondaryColor:     "#000000",
		Currency:           "₦",
		Timezone:           "Africa/Lagos",
		Language:           "en",
		EmailNotifications: true,
		MaintenanceMode:    false,
	}
}

// Get loads the settings bag, applying defaults for missing keys.
func (s *SettingsService) Get() (dto.Settings, error) {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return dto.Settings{}, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return rowsToSettings(rows), nil
}

// Replace overwrites the whole bag in one transaction. There are no
// partial-merge semantics; callers send the complete struct.
func (s *SettingsService) Replace(settings dto.Settings) (dto.Settings, error) {
	rows := settingsToRows(settings)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return dto.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// Seed writes default values for keys that do not exist yet.
func (s *SettingsService) Seed() error {
	for _, row := range settingsToRows(DefaultSettings()) {
		var existing models.Setting
		err := s.db.Where("key = ?", row.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
		if err := s.db.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}
	return nil
}

func rowsToSettings(rows []models.Setting) dto.Settings {
	settings := DefaultSettings()
	for _, row := range rows {
		switch row.Key {
		case settingCompanyName:
			settings.CompanyName = row.Value
		case settingCompanySubtitle:
			settings.CompanySubtitle = row.Value
		case settingPrimaryColor:
			settings.PrimaryColor = row.Value
		case settingSecondaryColor:
			settings.SecondaryColor = row.Value
		case settingCurrency:
			settings.Currency = row.Value
		case settingTimezone:
			settings.Timezone = row.Value
		case settingLanguage:
			settings.Language = row.Value
		case settingEmailNotifications:
			if v, err := strconv.ParseBool(row.Value); err == nil {
				settings.EmailNotifications = v
			}
		case settingMaintenanceMode:
			if v, err := strconv.ParseBool(row.Value); err == nil {
				settings.MaintenanceMode = v
			}
		}
		// Unknown keys are dropped, not passed through.
	}
	return settings
}

func settingsToRows(settings dto.Settings) []models.Setting {
	return []models.Setting{
		{Key: settingCompanyName, Value: settings.CompanyName, Type: "string"},
		{Key: settingCompanySubtitle, Value: settings.CompanySubtitle, Type: "string"},
		{Key: settingPrimaryColor, Value: settings.PrimaryColor, Type: "string"},
		{Key: settingSecondaryColor, Value: settings.SecondaryColor, Type: "string"},
		{Key: settingCurrency, Value: settings.Currency, Type: "string"},
		{Key: settingTimezone, Value: settings.Timezone, Type: "string"},
		{Key: settingLanguage, Value: settings.Language, Type: "string"},
		{Key: settingEmailNotifications, Value: strconv.FormatBool(settings.EmailNotifications), Type: "bool"},
		{Key: settingMaintenanceMode, Value: strconv.FormatBool(settings.MaintenanceMode), Type: "bool"},
	}
}
