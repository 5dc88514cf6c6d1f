package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"recruit-go/internal/storage"
	"recruit-go/internal/storage/models"
)

// VendorService owns vendor master-data CRUD.
type VendorService struct {
	store *storage.MySQL
}

// NewVendorService creates a VendorService.
func NewVendorService(store *storage.MySQL) *VendorService {
	return &VendorService{store: store}
}

// Create validates and stores a new vendor.
func (s *VendorService) Create(ctx context.Context, v *models.Vendor) (*models.Vendor, error) {
	if v.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	if v.VendorLead == "" {
		v.VendorLead = models.VendorLeadHR
	}
	if v.VendorLead != models.VendorLeadHR && v.VendorLead != models.VendorLeadAdmin {
		return nil, NewValidationError("vendorLead", "vendorLead must be hr or admin")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate vendor id")
	}
	v.VendorID = id.String()
	v.CreatedAt = time.Now()

	if err := s.store.CreateVendor(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns one vendor.
func (s *VendorService) Get(ctx context.Context, id string) (*models.Vendor, error) {
	v, err := s.store.GetVendorByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "vendor", id)
	}
	return v, nil
}

// List returns all vendors.
func (s *VendorService) List(ctx context.Context) ([]models.Vendor, error) {
	return s.store.ListVendors(ctx)
}

// Update overwrites the stored vendor's mutable fields.
func (s *VendorService) Update(ctx context.Context, id string, updated *models.Vendor) (*models.Vendor, error) {
	v, err := s.store.GetVendorByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "vendor", id)
	}

	if updated.Name != "" {
		v.Name = updated.Name
	}
	v.ContactPerson = updated.ContactPerson
	v.Email = updated.Email
	v.State = updated.State
	v.ZipCode = updated.ZipCode
	if updated.VendorLead != "" {
		if updated.VendorLead != models.VendorLeadHR && updated.VendorLead != models.VendorLeadAdmin {
			return nil, NewValidationError("vendorLead", "vendorLead must be hr or admin")
		}
		v.VendorLead = updated.VendorLead
	}

	if err := s.store.SaveVendor(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes the vendor.
func (s *VendorService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteVendor(ctx, id); err != nil {
		return notFoundOr(err, "vendor", id)
	}
	return nil
}
