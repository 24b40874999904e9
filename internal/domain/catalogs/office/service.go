package office

import (
	"context"
	"fmt"

	"oilbook/internal/core/apperror"
	"oilbook/internal/core/id"
	"oilbook/internal/core/tx"
)

// Service provides business logic for the Offices catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates an Office service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create registers a new branch office.
func (s *Service) Create(ctx context.Context, o *Office) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByCode(ctx, o.Code)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("office", "code", o.Code)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, o); err != nil {
			return fmt.Errorf("create office: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an office.
func (s *Service) GetByID(ctx context.Context, officeID id.ID) (*Office, error) {
	o, err := s.repo.GetByID(ctx, officeID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("office", officeID.String())
		}
		return nil, err
	}
	return o, nil
}

// Update modifies office settings.
func (s *Service) Update(ctx context.Context, o *Office) error {
	if err := o.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, o); err != nil {
			return fmt.Errorf("update office: %w", err)
		}
		return nil
	})
}

// SetActive activates or deactivates an office.
func (s *Service) SetActive(ctx context.Context, officeID id.ID, active bool) error {
	return s.repo.SetActive(ctx, officeID, active)
}

// List returns offices, optionally including deactivated ones.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]*Office, error) {
	return s.repo.List(ctx, includeInactive)
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	Name           *string
	Address        *string
	TaxID          *string
	Phone          *string
	DiscordWebhook *string
}

// UpdateSettings applies a partial settings update to the caller's own office.
func (s *Service) UpdateSettings(ctx context.Context, officeID id.ID, patch SettingsPatch) (*Office, error) {
	o, err := s.GetByID(ctx, officeID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		o.Name = *patch.Name
	}
	if patch.Address != nil {
		o.Address = patch.Address
	}
	if patch.TaxID != nil {
		o.TaxID = patch.TaxID
	}
	if patch.Phone != nil {
		o.Phone = patch.Phone
	}
	if patch.DiscordWebhook != nil {
		o.DiscordWebhook = patch.DiscordWebhook
	}

	if err := s.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
