package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// CategoryRule automatically assigns a category to transactions whose
// description matches a glob pattern. Rules are evaluated in ascending
// priority order, the first match wins.
type CategoryRule struct {
	DefaultModel
	OwnerID    uuid.UUID `gorm:"index"`
	Priority   uint
	Match      string
	CategoryID uuid.UUID
	Category   Category
}

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	if r.Match == "" {
		return ErrRuleMatchEmpty
	}

	return nil
}

func (r *CategoryRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)
	return r.checkIntegrity(tx, *r)
}

func (r *CategoryRule) BeforeUpdate(tx *gorm.DB) (err error) {
	if tx.Statement.Changed("CategoryID") {
		toSave := tx.Statement.Dest.(CategoryRule)
		err = r.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the category the rule assigns exists.
func (r *CategoryRule) checkIntegrity(tx *gorm.DB, toSave CategoryRule) error {
	return tx.First(&Category{}, toSave.CategoryID).Error
}

// CategoryForDescription returns the category the owner's rules assign
// to the description, or nil when no rule matches.
func CategoryForDescription(db *gorm.DB, ownerID uuid.UUID, description string) (*uuid.UUID, error) {
	var rules []CategoryRule
	err := db.
		Where(&CategoryRule{OwnerID: ownerID}).
		Order("priority ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if glob.Glob(rule.Match, description) {
			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}

// Returns all category rules on this instance for export
func (CategoryRule) Export() (json.RawMessage, error) {
	var rules []CategoryRule
	err := DB.Unscoped().Where(&CategoryRule{}).Find(&rules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&rules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
