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

func setupLeaseExpiryJob(t *testing.T) (*LeaseExpiryJob, *fakeNotifier, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	_, client := testutil.SetupTestRedis(t)

	notifier := &fakeNotifier{}
	job := NewLeaseExpiryJob(
		repository.NewLeaseRepository(db),
		repository.NewUserRepository(db),
		suppress.NewStore(client),
		notifier,
	)
	return job, notifier, db
}

func TestLeaseExpiryJob_ReminderThreeDaysAhead(t *testing.T) {
	job, notifier, db := setupLeaseExpiryJob(t)

	landlord := testutil.TestUser(t, db)
	tenant := testutil.TestUser(t, db, testutil.WithRole(model.RoleTenant))
	property := testutil.TestProperty(t, db, landlord.ID)
	unit := testutil.TestUnit(t, db, property.ID)

	now := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	testutil.TestLease(t, db, unit.ID, tenant.ID,
		testutil.WithLeaseDates(
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 13, 0, 0, 0, 0, time.UTC)))

	job.Run(context.Background(), now)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, tenant.ID, notifier.raised[0].userID)
	assert.Equal(t, "Lease Expiry Reminder", notifier.raised[0].subject)
	assert.Contains(t, notifier.raised[0].message, "2026-08-13")

	// Same day again: suppressed
	job.Run(context.Background(), now.Add(3*time.Hour))
	assert.Len(t, notifier.raised, 1)
}

func TestLeaseExpiryJob_ExpiresAndReleasesUnit(t *testing.T) {
	job, notifier, db := setupLeaseExpiryJob(t)

	landlord := testutil.TestUser(t, db)
	tenant := testutil.TestUser(t, db, testutil.WithRole(model.RoleTenant))
	property := testutil.TestProperty(t, db, landlord.ID)
	unit := testutil.TestUnit(t, db, property.ID)

	lease := testutil.TestLease(t, db, unit.ID, tenant.ID,
		testutil.WithLeaseDates(
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))

	job.Run(context.Background(), time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC))

	var reloadedLease model.Lease
	require.NoError(t, db.First(&reloadedLease, lease.ID).Error)
	assert.Equal(t, model.LeaseExpired, reloadedLease.Status)

	var reloadedUnit model.Unit
	require.NoError(t, db.First(&reloadedUnit, unit.ID).Error)
	assert.True(t, reloadedUnit.IsAvailable)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, "Lease Expired", notifier.raised[0].subject)

	// Already expired leases are not touched again
	job.Run(context.Background(), time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC))
	assert.Len(t, notifier.raised, 1)
}
