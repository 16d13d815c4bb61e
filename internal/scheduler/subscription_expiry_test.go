package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/suppress"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
)

func setupSubscriptionExpiryJob(t *testing.T) (*SubscriptionExpiryJob, *fakeNotifier, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	_, client := testutil.SetupTestRedis(t)

	notifier := &fakeNotifier{}
	job := NewSubscriptionExpiryJob(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		suppress.NewStore(client),
		notifier,
	)
	return job, notifier, db
}

func TestSubscriptionExpiryJob_ReminderThreeDaysAhead(t *testing.T) {
	job, notifier, db := setupSubscriptionExpiryJob(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(50))
	testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithEndsAt(time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)))

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	job.Run(context.Background(), now)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, user.ID, notifier.raised[0].userID)
	assert.Equal(t, "Subscription Expiry Reminder", notifier.raised[0].subject)

	// Same day again: suppressed
	job.Run(context.Background(), now.Add(time.Hour))
	assert.Len(t, notifier.raised, 1)
}

func TestSubscriptionExpiryJob_ExpiresEndedSubscriptions(t *testing.T) {
	job, notifier, db := setupSubscriptionExpiryJob(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(50))
	sub := testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithEndsAt(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))

	// Open-ended subscription must never expire
	openEnded := testutil.TestSubscription(t, db, user.ID, plan.ID)

	job.Run(context.Background(), time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))

	var reloaded model.Subscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.Equal(t, model.SubscriptionExpired, reloaded.Status)

	var reloadedOpenEnded model.Subscription
	require.NoError(t, db.First(&reloadedOpenEnded, openEnded.ID).Error)
	assert.Equal(t, model.SubscriptionActive, reloadedOpenEnded.Status)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, "Subscription Expired", notifier.raised[0].subject)
}
