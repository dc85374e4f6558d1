package commission

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Commission) error
	FindByID(db *gorm.DB, id uint) (*Commission, error)
	ListByAffiliate(db *gorm.DB, affiliateID uint) ([]Commission, error)
	ListAll(db *gorm.DB) ([]Commission, error)
	Update(db *gorm.DB, c *Commission) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Commission) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Commission, error) {
	var c Commission
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByAffiliate returns the affiliate's commissions, newest first. The
// aggregation layer depends on this order.
func (r *repositoryImpl) ListByAffiliate(db *gorm.DB, affiliateID uint) ([]Commission, error) {
	var list []Commission
	err := db.Where("affiliate_id = ?", affiliateID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Commission, error) {
	var list []Commission
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Commission) error {
	return db.Save(c).Error
}
