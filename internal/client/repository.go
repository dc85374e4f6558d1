package client

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, c *Client) error
	FindByID(db *gorm.DB, id uint) (*Client, error)
	FindByUserID(db *gorm.DB, userID uint) (*Client, error)
	ListAll(db *gorm.DB) ([]Client, error)
	Update(db *gorm.DB, c *Client) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *Client) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Client, error) {
	var c Client
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) FindByUserID(db *gorm.DB, userID uint) (*Client, error) {
	var c Client
	err := db.Where("user_id = ?", userID).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Client, error) {
	var list []Client
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, c *Client) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Client{}, id).Error
}
