package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruit-go/internal/storage/models"
)

func TestClientCRUD(t *testing.T) {
	store := newTestStore(t)
	svc := NewClientService(store)
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.Client{Name: "Acme Corp", WebsiteURL: "https://acme.example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ClientID)
	assert.Equal(t, models.ClientStatusActive, c.Status)

	got, err := svc.Update(ctx, c.ClientID, &models.Client{Name: "Acme Corporation", Status: models.ClientStatusInactive})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", got.Name)
	assert.Equal(t, models.ClientStatusInactive, got.Status)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, c.ClientID))
	_, err = svc.Get(ctx, c.ClientID)
	assert.True(t, IsNotFound(err))
}

func TestClientValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewClientService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Client{})
	assert.True(t, IsValidation(err))

	c, err := svc.Create(ctx, &models.Client{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ClientID, &models.Client{Status: "archived"})
	assert.True(t, IsValidation(err))
}

func TestVendorCRUD(t *testing.T) {
	store := newTestStore(t)
	svc := NewVendorService(store)
	ctx := context.Background()

	v, err := svc.Create(ctx, &models.Vendor{Name: "Staffing Partners", ContactPerson: "Bob"})
	require.NoError(t, err)
	assert.NotEmpty(t, v.VendorID)
	assert.Equal(t, models.VendorLeadHR, v.VendorLead)

	got, err := svc.Update(ctx, v.VendorID, &models.Vendor{Name: "Staffing Partners", VendorLead: models.VendorLeadAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.VendorLeadAdmin, got.VendorLead)

	require.NoError(t, svc.Delete(ctx, v.VendorID))
	_, err = svc.Get(ctx, v.VendorID)
	assert.True(t, IsNotFound(err))
}

func TestVendorValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewVendorService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Vendor{})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, &models.Vendor{Name: "X", VendorLead: "ops"})
	assert.True(t, IsValidation(err))
}
