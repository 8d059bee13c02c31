package main

import (
	"context"
	"errors"
	"testing"

	"wasit/internal/models"
	"wasit/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]*models.User
	lookErr error
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func TestSeedAdmin(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*models.User{}}

	created, err := seedAdmin(context.Background(), users, "admin@wasit.test", "Str0ng!pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, created)

	admin := users.byEmail["admin@wasit.test"]
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("Str0ng!pass")))

	created, err = seedAdmin(context.Background(), users, "admin@wasit.test", "Str0ng!pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, created)

	users.lookErr = errors.New("connection reset")
	_, err = seedAdmin(context.Background(), users, "other@wasit.test", "Str0ng!pass", bcrypt.MinCost)
	assert.ErrorContains(t, err, "connection reset")
}

type fakeMethods struct {
	rows []models.TransferMethod
}

func (f *fakeMethods) List(ctx context.Context, onlyEnabled bool) ([]models.TransferMethod, error) {
	return f.rows, nil
}

func (f *fakeMethods) Create(ctx context.Context, m *models.TransferMethod) error {
	f.rows = append(f.rows, *m)
	return nil
}

func TestSeedMethods(t *testing.T) {
	store := &fakeMethods{}

	n, err := seedMethods(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "VF_CASH", store.rows[0].Code)
	for _, m := range store.rows {
		assert.True(t, m.Enabled, m.Code)
	}

	n, err = seedMethods(context.Background(), store)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, store.rows, 5)
}
