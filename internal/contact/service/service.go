package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hutchinsdata/site/internal/contact"
	"github.com/hutchinsdata/site/pkg/logger"
)

// Validation errors. Their text is shown to the visitor verbatim.
var (
	ErrMissingFields = errors.New("Name, email, and message are required.")
	ErrInvalidEmail  = errors.New("Please provide a valid email address.")
)

// emailPattern is local@domain.tld where no part holds "@" or whitespace.
// RE2's \s is ASCII only, so the Unicode spaces are listed explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+@[^\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+\.[^\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}@]+$`)

// Repository persists submissions.
type Repository interface {
	Save(ctx context.Context, s *contact.Submission) error
	Get(ctx context.Context, id string) (*contact.Submission, error)
	List(ctx context.Context, limit int) ([]*contact.Submission, error)
}

// Notifier is told about every accepted submission. Delivery failures are
// logged and never fail the submission.
type Notifier interface {
	Notify(ctx context.Context, s *contact.Submission) error
}

// Input is the visitor-supplied part of a submission.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Meta is request metadata recorded alongside the submission.
type Meta struct {
	ClientIP  string
	UserAgent string
}

// Validate checks that all fields are present and the email is plausible.
func (in Input) Validate() error {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	return nil
}

type Service struct {
	repo      Repository
	notifiers []Notifier
	now       func() time.Time
}

func New(repo Repository, notifiers ...Notifier) *Service {
	return &Service{repo: repo, notifiers: notifiers, now: time.Now}
}

// Submit validates and records a submission.
func (s *Service) Submit(ctx context.Context, in Input, meta Meta) (*contact.Submission, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sub := &contact.Submission{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, sub); err != nil {
			logger.Warnf("contact notifier failed for %s: %v", sub.ID, err)
		}
	}
	return sub, nil
}

// Lookup returns one submission by id.
func (s *Service) Lookup(ctx context.Context, id string) (*contact.Submission, error) {
	return s.repo.Get(ctx, id)
}

// Recent returns the newest submissions first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*contact.Submission, error) {
	return s.repo.List(ctx, limit)
}
