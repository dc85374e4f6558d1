package comment

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Comment) error
	ListByNegotiation(db *gorm.DB, negotiationID uint) ([]Comment, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Comment) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListByNegotiation(db *gorm.DB, negotiationID uint) ([]Comment, error) {
	var list []Comment
	err := db.Where("negotiation_id = ?", negotiationID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Comment{}, id).Error
}
