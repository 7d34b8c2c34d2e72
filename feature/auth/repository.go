package auth

import (
	"context"
	"errors"
	"time"

	"catalog-service/feature/auth/models"

	"gorm.io/gorm"
)

// Repository persists members and their login logs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over the given connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail returns the member with the given email, or nil when absent.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByID returns the member with the given id, or nil when absent.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// EmailExists reports whether a member with the email already exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create persists a new member.
func (r *Repository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// RecordLogin upserts the member's login log: the single row per member gets
// a fresh login time and a cleared logout time.
func (r *Repository) RecordLogin(ctx context.Context, memberID uint, at time.Time) error {
	var log models.MemberLoginLog
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&models.MemberLoginLog{
			MemberID:  memberID,
			LoginTime: at,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&log).Updates(map[string]any{
		"login_time":  at,
		"logout_time": nil,
	}).Error
}

// RecordLogout stamps the member's logout time. Missing log rows are ignored;
// logout must not fail because the member never logged their login.
func (r *Repository) RecordLogout(ctx context.Context, memberID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.MemberLoginLog{}).
		Where("member_id = ?", memberID).
		Update("logout_time", at).Error
}
