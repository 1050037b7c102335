package repository

import (
	"errors"
	"time"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// FavoriteRepository 模板收藏仓储接口
type FavoriteRepository interface {
	Exists(partyID, templateID string) (bool, error)
	Create(fav *model.FavoriteModel) error
	Delete(partyID, templateID string) error
	ListByParty(partyID string) ([]*model.FavoriteModel, error)
}

// favoriteRepository 模板收藏仓储实现
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Exists 判断收藏是否存在
func (r *favoriteRepository) Exists(partyID, templateID string) (bool, error) {
	var fav model.FavoriteModel
	err := r.db.Where("party_id = ? AND template_id = ?", partyID, templateID).First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create 创建收藏
func (r *favoriteRepository) Create(fav *model.FavoriteModel) error {
	if err := fav.Validate(); err != nil {
		return err
	}
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now()
	}
	return r.db.Create(fav).Error
}

// Delete 删除收藏
func (r *favoriteRepository) Delete(partyID, templateID string) error {
	return r.db.Where("party_id = ? AND template_id = ?", partyID, templateID).
		Delete(&model.FavoriteModel{}).Error
}

// ListByParty 返回某人的全部收藏
func (r *favoriteRepository) ListByParty(partyID string) ([]*model.FavoriteModel, error) {
	var favs []*model.FavoriteModel
	err := r.db.Where("party_id = ?", partyID).Order("created_at DESC").Find(&favs).Error
	return favs, err
}
