package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/htiportal/internal/app/models"
	"github.com/yigit/htiportal/internal/app/repositories/inmem"
	pkgauth "github.com/yigit/htiportal/internal/pkg/auth"
)

func TestCreateDefaultData(t *testing.T) {
	db := inmem.Open()
	repos := db.Repositories()
	ctx := context.Background()
	admin := Admin{Email: "Admin@HTI.edu", Password: "change-me-now"}

	require.NoError(t, CreateDefaultData(ctx, repos, admin))
	require.NoError(t, CreateDefaultData(ctx, repos, admin))

	profile, err := repos.Profiles.GetByEmail(ctx, "admin@hti.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, profile.MainRole)

	hash, err := repos.Credentials.GetHash(ctx, profile.ID)
	require.NoError(t, err)
	assert.True(t, pkgauth.CheckPassword(hash, "change-me-now"))
}

func TestCreateDefaultData_Disabled(t *testing.T) {
	db := inmem.Open()
	require.NoError(t, CreateDefaultData(context.Background(), db.Repositories(), Admin{}))

	_, err := db.Repositories().Profiles.GetByEmail(context.Background(), "admin@hti.edu")
	assert.Error(t, err)
}

func TestDemoCatalog(t *testing.T) {
	db := inmem.Open()
	DemoCatalog(db)
	ctx := context.Background()

	sessions, err := db.Repositories().Sessions.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsActive)

	programs, err := db.Repositories().Programs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 2)
}
