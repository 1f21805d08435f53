// Package userrepo is the account directory. Roles are only ever changed here.
package userrepo

import (
	"context"
	"time"

	"parcelflow/internal/adapters/out/postgres/pgerr"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/user"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	Email     string    `gorm:"primaryKey"`
	Name      string
	Role      string    `gorm:"index;not null;default:user"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Register inserts u unless the email already has an account. An existing
// account keeps its name and role.
func (r *GormUserDirectory) Register(ctx context.Context, u user.User) (bool, error) {
	dto := UserDTO{
		Email:     u.Email().String(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return false, pgerr.Unavailable("register user", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *GormUserDirectory) GetByEmail(ctx context.Context, email kernel.Email) (user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		return user.User{}, pgerr.Wrap("get user", "user", email.String(), err)
	}

	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return user.User{}, err
	}
	return user.RestoreUser(email, dto.Name, role, dto.CreatedAt)
}

func (r *GormUserDirectory) SetRole(ctx context.Context, email kernel.Email, role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("email = ?", email.String()).Update("role", role.String())
	if result.Error != nil {
		return pgerr.Unavailable("set user role", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", email.String())
	}
	return nil
}
