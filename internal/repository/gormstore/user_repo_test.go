package gormstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/taskchat-backend/internal/domain"
	"github.com/dom/taskchat-backend/internal/repository/gormstore"
	"github.com/dom/taskchat-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	forEachStore(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewUserRepository(testDB.DB)
		ctx := context.Background()

		tests := []struct {
			name    string
			user    *domain.User
			wantErr error
		}{
			{
				name: "successful creation",
				user: &domain.User{
					ID:           uuid.New(),
					Email:        "user@example.com",
					PasswordHash: "hashedpassword",
					CreatedAt:    time.Now(),
					UpdatedAt:    time.Now(),
				},
			},
			{
				name: "duplicate email",
				user: &domain.User{
					ID:           uuid.New(),
					Email:        "user@example.com", // Same as above
					PasswordHash: "hashedpassword2",
					CreatedAt:    time.Now(),
					UpdatedAt:    time.Now(),
				},
				wantErr: domain.ErrEmailTaken,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := repo.Create(ctx, tt.user)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					require.NoError(t, err)
				}
			})
		}
	})
}

func TestUserRepository_Lookups(t *testing.T) {
	forEachStore(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewUserRepository(testDB.DB)
		ctx := context.Background()

		existing, _ := testutil.NewUserBuilder().
			WithEmail("lookup@example.com").
			WithName("Lookup").
			Build(t, testDB.DB)

		byID, err := repo.GetByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "lookup@example.com", byID.Email)
		assert.Equal(t, "Lookup", byID.Name)
		assert.Equal(t, existing.PasswordHash, byID.PasswordHash)

		byEmail, err := repo.GetByEmail(ctx, "lookup@example.com")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, byEmail.ID)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
