package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/config"
	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key-for-testing",
			ExpireHours: 24,
		},
	}

	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	planSvc := NewPlanService(planRepo)
	subSvc := NewSubscriptionService(repository.NewSubscriptionRepository(db), planRepo, planSvc)

	return NewAuthService(userRepo, subSvc, cfg), db
}

func TestAuthService_Register_Landlord(t *testing.T) {
	svc, db := setupAuthService(t)

	user, token, err := svc.Register(&RegisterInput{
		FirstName: "Jo",
		LastName:  "Cruz",
		Email:     "landlord@example.com",
		Password:  "password123",
		Role:      model.RoleLandlord,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)

	// Landlords get an active subscription on the default free plan
	var subs []model.Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&subs).Error)
	require.Len(t, subs, 1)
	assert.Equal(t, model.SubscriptionActive, subs[0].Status)
}

func TestAuthService_Register_TenantGetsProfile(t *testing.T) {
	svc, db := setupAuthService(t)

	user, _, err := svc.Register(&RegisterInput{
		FirstName: "Ana",
		LastName:  "Reyes",
		Email:     "tenant@example.com",
		Password:  "password123",
		Role:      model.RoleTenant,
	})
	require.NoError(t, err)

	var profile model.TenantProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Nil(t, profile.LandlordID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	input := &RegisterInput{
		FirstName: "Jo",
		LastName:  "Cruz",
		Email:     "duplicate@example.com",
		Password:  "password123",
		Role:      model.RoleLandlord,
	}
	_, _, err := svc.Register(input)
	require.NoError(t, err)

	_, _, err = svc.Register(input)
	assert.Equal(t, ErrEmailTaken, err)
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.Register(&RegisterInput{
		FirstName: "Mal",
		LastName:  "Ory",
		Email:     "admin@example.com",
		Password:  "password123",
		Role:      model.RoleAdmin,
	})
	assert.Equal(t, ErrInvalidRole, err)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.Register(&RegisterInput{
		FirstName: "Jo",
		LastName:  "Cruz",
		Email:     "login@example.com",
		Password:  "password123",
		Role:      model.RoleLandlord,
	})
	require.NoError(t, err)

	user, token, err := svc.Login("login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login("login@example.com", "wrong-password")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.Equal(t, ErrInvalidCredentials, err)
}
