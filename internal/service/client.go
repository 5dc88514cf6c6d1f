package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// ClientService owns client master-data CRUD.
type ClientService struct {
	store *storage.MySQL
}

// NewClientService creates a ClientService.
func NewClientService(store *storage.MySQL) *ClientService {
	return &ClientService{store: store}
}

// Create validates and stores a new client.
func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if c.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate client id")
	}
	c.ClientID = id.String()
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}
	c.CreatedAt = time.Now()

	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns one client.
func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	c, err := s.store.GetClientByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "client", id)
	}
	return c, nil
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	return s.store.ListClients(ctx)
}

// Update overwrites the stored client's mutable fields.
func (s *ClientService) Update(ctx context.Context, id string, updated *models.Client) (*models.Client, error) {
	c, err := s.store.GetClientByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "client", id)
	}

	if updated.Name != "" {
		c.Name = updated.Name
	}
	c.WebsiteURL = updated.WebsiteURL
	if updated.Status != "" {
		if updated.Status != models.ClientStatusActive && updated.Status != models.ClientStatusInactive {
			return nil, NewValidationError("status", "status must be active or inactive")
		}
		c.Status = updated.Status
	}
	c.Email = updated.Email
	c.Phone = updated.Phone
	c.Address = updated.Address
	c.City = updated.City
	c.State = updated.State
	c.ZipCode = updated.ZipCode

	if err := s.store.SaveClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the client. Jobs referencing it keep their stored client
// name snapshot.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return notFoundOr(err, "client", id)
	}
	return nil
}
