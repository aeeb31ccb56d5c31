package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cms-service/internal/model"
)

// InviteRepository is the invite ledger data access interface
type InviteRepository interface {
	Create(ctx context.Context, invite *model.Invite) error
	GetByID(ctx context.Context, id uint) (*model.Invite, error)
	// GetLiveByEmail returns the unconsumed, unexpired invite for an email
	GetLiveByEmail(ctx context.Context, email string, now time.Time) (*model.Invite, error)
	List(ctx context.Context) ([]model.Invite, error)
	UpdateRole(ctx context.Context, id uint, role string) error
	Delete(ctx context.Context, id uint) error
	// Consume marks the invite used with a single conditional update. It
	// returns false when the invite was already consumed, so two concurrent
	// sign-ins cannot both win.
	Consume(ctx context.Context, id uint, at time.Time) (bool, error)
}

type inviteRepo struct {
	db *gorm.DB
}

// NewInviteRepo creates an InviteRepository backed by gorm
func NewInviteRepo(db *gorm.DB) InviteRepository {
	return &inviteRepo{db: db}
}

func (r *inviteRepo) Create(ctx context.Context, invite *model.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *inviteRepo) GetByID(ctx context.Context, id uint) (*model.Invite, error) {
	var invite model.Invite
	if err := r.db.WithContext(ctx).First(&invite, id).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepo) GetLiveByEmail(ctx context.Context, email string, now time.Time) (*model.Invite, error) {
	var invite model.Invite
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_used = ? AND expires_at > ?", email, false, now).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *inviteRepo) List(ctx context.Context) ([]model.Invite, error) {
	invites := []model.Invite{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepo) UpdateRole(ctx context.Context, id uint, role string) error {
	return r.db.WithContext(ctx).Model(&model.Invite{}).Where("id = ?", id).
		Update("role", role).Error
}

func (r *inviteRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Invite{}, id).Error
}

func (r *inviteRepo) Consume(ctx context.Context, id uint, at time.Time) (bool, error) {
	// Single atomic check-and-set: the WHERE clause on is_used makes
	// double-consumption impossible under concurrent sign-ins.
	result := r.db.WithContext(ctx).Model(&model.Invite{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
