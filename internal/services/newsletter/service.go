// Package newsletter handles newsletter signups: validation, forwarding to
// the content service, a local mirror and an optional welcome email.
package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/firmsite/site-api/internal/models"
	"github.com/firmsite/site-api/internal/services/cms"
	"github.com/firmsite/site-api/internal/services/i18n"
	"github.com/firmsite/site-api/pkg/logging"
)

// SubscribeRequest is one signup attempt
type SubscribeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Language i18n.Language
	SourceIP string
}

type Service struct {
	upstream Upstream
	repo     SubscriberRepository
	mailer   Mailer
	validate *validator.Validate
	mailWait time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithRepository mirrors accepted subscriptions locally
func WithRepository(repo SubscriberRepository) Option {
	return func(s *Service) { s.repo = repo }
}

// WithMailer sends a welcome email after each new subscription
func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

func NewService(upstream Upstream, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		mailWait: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks the request and returns a ValidationError naming the UI
// string to show
func (s *Service) Validate(req SubscribeRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		key := "invalid_email"
		if fieldErrs[0].Tag() == "required" {
			key = "required"
		}
		return ValidationError{Field: "email", Key: key}
	}
	return err
}

// Subscribe validates the address, records it upstream and mirrors it
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*models.Subscriber, error) {
	logger := logging.FromContext(ctx)

	req.Email = models.NormalizeEmail(req.Email)
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	if s.repo != nil {
		_, err := s.repo.GetByEmail(ctx, req.Email)
		switch {
		case err == nil:
			return nil, ErrAlreadySubscribed
		case err != nil && !errors.Is(err, ErrNotFound):
			logger.Warn().Err(err).Msg("subscriber lookup failed, continuing")
		}
	}

	if err := s.upstream.CreateSubscriber(ctx, req.Email); err != nil {
		logger.Error().Err(err).Msg("cms rejected subscription")
		return nil, UpstreamError{Message: cms.Message(err), Err: err}
	}

	sub := &models.Subscriber{
		Email:    req.Email,
		Language: string(req.Language),
		SourceIP: req.SourceIP,
		Synced:   true,
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, sub); err != nil {
			if errors.Is(err, ErrAlreadySubscribed) {
				return nil, err
			}
			// The CMS already holds the subscription
			logger.Error().Err(err).Msg("failed to mirror subscriber")
		}
	}

	s.welcome(ctx, sub)
	return sub, nil
}

func (s *Service) welcome(ctx context.Context, sub *models.Subscriber) {
	if s.mailer == nil {
		return
	}
	logger := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailWait)
	defer cancel()

	lang, ok := i18n.Parse(sub.Language)
	if !ok {
		lang = i18n.English
	}
	if err := s.mailer.SendWelcome(ctx, sub.Email, lang); err != nil {
		logger.Warn().Err(err).Str("email", sub.Email).Msg("welcome email failed")
		return
	}

	now := time.Now().UTC()
	sub.WelcomedAt = &now
	if s.repo != nil && sub.ID != 0 {
		if err := s.repo.MarkWelcomed(ctx, sub.ID); err != nil {
			logger.Warn().Err(err).Msg("failed to record welcome email")
		}
	}
}

// Count returns the number of mirrored subscribers, or zero without a mirror
func (s *Service) Count(ctx context.Context) (int64, error) {
	if s.repo == nil {
		return 0, nil
	}
	return s.repo.Count(ctx)
}
