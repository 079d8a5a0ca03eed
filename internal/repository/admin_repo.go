package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/quizhub-api/internal/models"
)

// AdminUserRepository persists admin accounts.
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) error
}

type adminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository instantiates a GORM-backed repository.
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	var admin models.AdminUser
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", normalized).First(&admin).Error; err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}

func (r *adminUserRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	return r.db.WithContext(ctx).Create(admin).Error
}
