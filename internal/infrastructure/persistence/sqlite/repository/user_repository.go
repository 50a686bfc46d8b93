package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"aiahub/internal/errs"
	"aiahub/internal/infrastructure/persistence/sqlite/model"
	"aiahub/internal/ports"
)

type UserRepository struct {
	db *gorm.DB
}

var _ ports.UserDirectory = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *UserRepository) GetUser(ctx context.Context, email string) (ports.User, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.User{}, err
	}

	var row model.User
	if err := db.Where("email = ?", email).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, ports.ErrUserNotFound
		}
		return ports.User{}, errs.Wrap(err, "query user")
	}
	return mapUser(row), nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]ports.User, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.User
	if err := db.Order("email asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query users")
	}

	users := make([]ports.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count users")
	}
	return count, nil
}

func (r *UserRepository) AddUser(ctx context.Context, user ports.User) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	var existing model.User
	err = db.Where("email = ?", user.Email).Take(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: %s", ports.ErrUserExists, user.Email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Wrap(err, "check existing user")
	}

	row := model.User{
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Agency:    user.Agency,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, email string, patch ports.UserPatch) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Agency != nil {
		updates["agency"] = *patch.Agency
	}
	if len(updates) == 0 {
		return nil
	}

	result := db.Model(&model.User{}).Where("email = ?", email).Updates(updates)
	if result.Error != nil {
		return errs.Wrap(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, email string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("email = ?", email).Delete(&model.User{})
	if result.Error != nil {
		return false, errs.Wrap(result.Error, "delete user")
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) RecordLogin(ctx context.Context, email string, when string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.User{}).Where("email = ?", email).Update("last_login", when)
	if result.Error != nil {
		return errs.Wrap(result.Error, "record login")
	}
	if result.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

func mapUser(row model.User) ports.User {
	return ports.User{
		Email:     row.Email,
		Name:      row.Name,
		Role:      row.Role,
		Agency:    row.Agency,
		CreatedAt: row.CreatedAt,
		LastLogin: row.LastLogin,
	}
}
