// Package settings reads and writes singleton configuration rows in the
// settings table. Every accessor distinguishes "row absent" (callers fall
// back to a documented default) from a real store error.
package settings

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"toolboard/internal/models"
)

const (
	KeySiteMaintenance = "site_maintenance"
	KeyPlatformFee     = "platform_fee"
	KeyTermsOfService  = "terms_of_service"
	KeyPrivacyPolicy   = "privacy_policy"
)

// DefaultPlatformFee is returned whenever no platform_fee row exists or the
// public read path hits a store failure.
const DefaultPlatformFee = 5.00

// ErrNotFound is returned when no row exists for the requested key.
var ErrNotFound = errors.New("setting not found")

type SiteMaintenance struct {
	SignUpsDisabled bool `json:"signUpsDisabled"`
}

type PlatformFee struct {
	Amount float64 `json:"amount"`
}

type LegalDocument struct {
	Content string `json:"content"`
}

// LegalKeyFor maps the public document type to its settings key.
func LegalKeyFor(docType string) (string, bool) {
	switch docType {
	case "terms":
		return KeyTermsOfService, true
	case "privacy":
		return KeyPrivacyPolicy, true
	}
	return "", false
}

func get(db *gorm.DB, key string, dst any) (time.Time, error) {
	var s models.Setting
	if err := db.First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	if err := json.Unmarshal(s.Value, dst); err != nil {
		return time.Time{}, err
	}
	return s.UpdatedAt, nil
}

// put upserts a setting keyed on its name. Repeated calls with the same key
// replace the value; no duplicate rows.
func put(db *gorm.DB, key string, v any) (time.Time, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return time.Time{}, err
	}
	s := models.Setting{Key: key, Value: models.JSONB(b), UpdatedAt: time.Now()}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		return time.Time{}, err
	}
	return s.UpdatedAt, nil
}

func GetSiteMaintenance(db *gorm.DB) (SiteMaintenance, error) {
	var v SiteMaintenance
	_, err := get(db, KeySiteMaintenance, &v)
	return v, err
}

func PutSiteMaintenance(db *gorm.DB, v SiteMaintenance) error {
	_, err := put(db, KeySiteMaintenance, v)
	return err
}

func GetPlatformFee(db *gorm.DB) (PlatformFee, error) {
	var v PlatformFee
	_, err := get(db, KeyPlatformFee, &v)
	return v, err
}

func PutPlatformFee(db *gorm.DB, v PlatformFee) error {
	_, err := put(db, KeyPlatformFee, v)
	return err
}

func GetLegal(db *gorm.DB, key string) (LegalDocument, time.Time, error) {
	var v LegalDocument
	updatedAt, err := get(db, key, &v)
	return v, updatedAt, err
}

func PutLegal(db *gorm.DB, key, content string) (time.Time, error) {
	return put(db, key, LegalDocument{Content: content})
}
