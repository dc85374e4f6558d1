package negotiation

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, n *Negotiation) error
	FindByID(db *gorm.DB, id uint) (*Negotiation, error)
	ListByAffiliate(db *gorm.DB, affiliateID uint) ([]Negotiation, error)
	Update(db *gorm.DB, n *Negotiation) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, n *Negotiation) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Negotiation, error) {
	var n Negotiation
	err := db.Preload("Comments").First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) ListByAffiliate(db *gorm.DB, affiliateID uint) ([]Negotiation, error) {
	var list []Negotiation
	err := db.Where("affiliate_id = ?", affiliateID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, n *Negotiation) error {
	return db.Save(n).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Negotiation{}, id).Error
}
