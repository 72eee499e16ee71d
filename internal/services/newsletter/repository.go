package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/firmsite/site-api/internal/models"
)

type Repository struct {
	db *gorm.DB
}

var _ SubscriberRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	var sub models.Subscriber
	if err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting subscriber: %w", err)
	}
	return &sub, nil
}

func (r *Repository) Create(ctx context.Context, sub *models.Subscriber) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("creating subscriber: %w", err)
	}
	return nil
}

func (r *Repository) MarkWelcomed(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Subscriber{}).
		Where("id = ?", id).
		Update("welcomed_at", time.Now().UTC())
	if result.Error != nil {
		return fmt.Errorf("updating subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Subscriber{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting subscribers: %w", err)
	}
	return n, nil
}
