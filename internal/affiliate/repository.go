package affiliate

import "gorm.io/gorm"

type Repository interface {
	Create(db *gorm.DB, a *Affiliate) error
	FindByID(db *gorm.DB, id uint) (*Affiliate, error)
	FindByUserID(db *gorm.DB, userID uint) (*Affiliate, error)
	ListAll(db *gorm.DB) ([]Affiliate, error)
	Update(db *gorm.DB, a *Affiliate) error

	// Earnings ledger, used by the commission write path. These are the only
	// mutations of the cached totals the read side reports.
	AddPending(db *gorm.DB, affiliateID uint, amount float64) error
	SettlePaid(db *gorm.DB, affiliateID uint, amount float64) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, a *Affiliate) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Affiliate, error) {
	var a Affiliate
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) FindByUserID(db *gorm.DB, userID uint) (*Affiliate, error) {
	var a Affiliate
	err := db.Where("user_id = ?", userID).First(&a).Error
	return &a, err
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Affiliate, error) {
	var list []Affiliate
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Update(db *gorm.DB, a *Affiliate) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) AddPending(db *gorm.DB, affiliateID uint, amount float64) error {
	return db.Model(&Affiliate{}).Where("id = ?", affiliateID).Updates(map[string]interface{}{
		"total_earnings":   gorm.Expr("total_earnings + ?", amount),
		"pending_earnings": gorm.Expr("pending_earnings + ?", amount),
	}).Error
}

func (r *repositoryImpl) SettlePaid(db *gorm.DB, affiliateID uint, amount float64) error {
	return db.Model(&Affiliate{}).Where("id = ?", affiliateID).Updates(map[string]interface{}{
		"pending_earnings": gorm.Expr("pending_earnings - ?", amount),
		"paid_earnings":    gorm.Expr("paid_earnings + ?", amount),
	}).Error
}
