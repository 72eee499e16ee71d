package newsletter

import (
	"context"

	"github.com/firmsite/site-api/internal/models"
	"github.com/firmsite/site-api/internal/services/i18n"
)

// SubscriberRepository persists the local subscriber mirror
type SubscriberRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	Create(ctx context.Context, sub *models.Subscriber) error
	MarkWelcomed(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// Upstream is where subscriptions are ultimately recorded
type Upstream interface {
	CreateSubscriber(ctx context.Context, email string) error
}

// Mailer delivers the welcome message
type Mailer interface {
	SendWelcome(ctx context.Context, to string, lang i18n.Language) error
}
