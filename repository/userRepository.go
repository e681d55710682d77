package repository

import (
	"context"

	"github.com/Kariqs/ezelectronics-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Upsert registers user on first sight. For a known username only the role
// follows the token; profile fields keep their stored values.
func (r *UserRepository) Upsert(ctx context.Context, user models.User) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&user).Error
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("username").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Where("role = ?", role).Order("username").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateInfo(ctx context.Context, username string, info models.User) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Updates(map[string]any{
			"name":      info.Name,
			"surname":   info.Surname,
			"address":   info.Address,
			"birthdate": info.Birthdate,
		}).Error
}

// Delete returns gorm.ErrRecordNotFound when username is unknown.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	result := r.DB.WithContext(ctx).Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) DeleteAllNonAdmin(ctx context.Context) error {
	return r.DB.WithContext(ctx).Where("role <> ?", models.RoleAdmin).Delete(&models.User{}).Error
}
