package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cratedig/data"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingDiscogsToken is the settings key holding the Discogs access token.
const SettingDiscogsToken = "discogs_token"

// DiscogsToken returns the stored access token, or "" when unset.
func (db *DB) DiscogsToken() (string, error) {
	return db.Setting(SettingDiscogsToken)
}

// SetDiscogsToken stores the access token.
func (db *DB) SetDiscogsToken(token string) error {
	return db.SetSetting(SettingDiscogsToken, token)
}

// Setting returns the value for a key, or "" when the key is absent.
func (db *DB) Setting(key string) (string, error) {
	var setting data.Setting
	err := db.Where("key = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading setting '%s': %w", key, err)
	}
	return setting.Value, nil
}

// SetSetting writes a key/value pair, replacing any previous value.
func (db *DB) SetSetting(key, value string) error {
	if key == "" {
		return fmt.Errorf("no setting key")
	}
	setting := data.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: sql.NullTime{Time: time.Now(), Valid: true},
	}
	if err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).
		Error; err != nil {
		return fmt.Errorf("error writing setting '%s': %w", key, err)
	}
	return nil
}
