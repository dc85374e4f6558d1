package contract

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNegativeAmount = errors.New("contract amount must not be negative")
	ErrInvalidWindow  = errors.New("contract end date precedes start date")
)

type Repository interface {
	Create(db *gorm.DB, c *Contract) error
	FindByID(db *gorm.DB, id uint) (*Contract, error)
	ListByAffiliate(db *gorm.DB, affiliateID uint, limit int) ([]Contract, error)
	ListByClient(db *gorm.DB, clientID uint) ([]Contract, error)
	ListAll(db *gorm.DB) ([]Contract, error)
	Update(db *gorm.DB, c *Contract) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Contract) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Contract, error) {
	var c Contract
	err := db.First(&c, id).Error
	return &c, err
}

// ListByAffiliate returns the affiliate's contracts, newest first. A limit
// of zero means no limit.
func (r *repositoryImpl) ListByAffiliate(db *gorm.DB, affiliateID uint, limit int) ([]Contract, error) {
	var list []Contract
	q := db.Where("affiliate_id = ?", affiliateID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByClient(db *gorm.DB, clientID uint) ([]Contract, error) {
	var list []Contract
	err := db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Contract, error) {
	var list []Contract
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Contract) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Contract{}, id).Error
}
