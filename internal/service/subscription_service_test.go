package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	planRepo := repository.NewPlanRepository(db)
	planSvc := NewPlanService(planRepo)
	svc := NewSubscriptionService(repository.NewSubscriptionRepository(db), planRepo, planSvc)
	return svc, db
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := svc.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPending, sub.Status)
	assert.Nil(t, sub.StartedAt)
}

func TestSubscriptionService_Subscribe_DefaultPlanRejected(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	def := testutil.TestPlan(t, db, testutil.AsDefaultPlan())

	_, err := svc.Subscribe(user.ID, def.ID)
	assert.Equal(t, ErrPlanNotSubscribable, err)
}

func TestSubscriptionService_Subscribe_DuplicatePending(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	_, err := svc.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)

	_, err = svc.Subscribe(user.ID, plan.ID)
	assert.Equal(t, ErrPendingExists, err)
}

func TestSubscriptionService_CancelPending(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := svc.Subscribe(user.ID, plan.ID)
	require.NoError(t, err)

	require.NoError(t, svc.CancelPending(user.ID, sub.ID))

	// Active subscriptions cannot be canceled this way
	active := testutil.TestSubscription(t, db, user.ID, plan.ID)
	assert.Equal(t, ErrSubNotCancelable, svc.CancelPending(user.ID, active.ID))
}

func TestSubscriptionService_CancelPending_OtherUsersSubscription(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	owner := testutil.TestUser(t, db)
	intruder := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	sub, err := svc.Subscribe(owner.ID, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, ErrSubNotCancelable, svc.CancelPending(intruder.ID, sub.ID))
}

func TestSubscriptionService_Activate_ExpiresPreviousPaid(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	oldPlan := testutil.TestPlan(t, db, testutil.WithPrice(30))
	newPlan := testutil.TestPlan(t, db, testutil.WithPrice(60), testutil.WithDuration(30))

	previous := testutil.TestSubscription(t, db, user.ID, oldPlan.ID)
	pending := testutil.TestSubscription(t, db, user.ID, newPlan.ID,
		testutil.WithStatus(model.SubscriptionPending))

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Activate(pending, now))

	assert.Equal(t, model.SubscriptionActive, pending.Status)
	require.NotNil(t, pending.StartedAt)
	assert.Equal(t, now, *pending.StartedAt)
	require.NotNil(t, pending.EndsAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *pending.EndsAt)

	var reloaded model.Subscription
	require.NoError(t, db.First(&reloaded, previous.ID).Error)
	assert.Equal(t, model.SubscriptionExpired, reloaded.Status)
}

func TestSubscriptionService_Activate_OpenEndedPlan(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(60))
	pending := testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithStatus(model.SubscriptionPending))

	require.NoError(t, svc.Activate(pending, time.Now()))
	assert.Nil(t, pending.EndsAt)
}

func TestSubscriptionService_GrantDefaultPlan(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)

	// No default plan exists yet; grant should create one on the fly
	require.NoError(t, svc.GrantDefaultPlan(user.ID))

	subs, err := svc.ListMine(user.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, model.SubscriptionActive, subs[0].Status)

	var plan model.Plan
	require.NoError(t, db.First(&plan, subs[0].PlanID).Error)
	assert.True(t, plan.IsDefault)
}
