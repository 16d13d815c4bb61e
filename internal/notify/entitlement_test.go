package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
	"gorm.io/gorm"
)

func setupEntitlements(t *testing.T) (*Entitlements, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	ents := NewEntitlements(
		repository.NewUserRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewPlanRepository(db),
	)
	return ents, db
}

func TestEntitlements_AdminGetsAllChannels(t *testing.T) {
	ents, db := setupEntitlements(t)

	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	got := ents.ResolveChannels(admin)
	assert.ElementsMatch(t, channel.All(), got)
}

func TestEntitlements_LandlordUsesPaidPlan(t *testing.T) {
	ents, db := setupEntitlements(t)

	landlord := testutil.TestUser(t, db, testutil.WithRole(model.RoleLandlord))
	paid := testutil.TestPlan(t, db,
		testutil.WithPrice(50),
		testutil.WithChannels(channel.Email, channel.Telegram))
	testutil.TestSubscription(t, db, landlord.ID, paid.ID)

	// A default plan also exists but the paid subscription wins
	testutil.TestPlan(t, db,
		testutil.AsDefaultPlan(),
		testutil.WithChannels(channel.Email))

	got := ents.ResolveChannels(landlord)
	assert.ElementsMatch(t, []channel.Channel{channel.Email, channel.Telegram}, got)
}

func TestEntitlements_LandlordFallsBackToDefaultPlan(t *testing.T) {
	ents, db := setupEntitlements(t)

	landlord := testutil.TestUser(t, db, testutil.WithRole(model.RoleLandlord))
	testutil.TestPlan(t, db,
		testutil.AsDefaultPlan(),
		testutil.WithChannels(channel.Email))

	got := ents.ResolveChannels(landlord)
	assert.ElementsMatch(t, []channel.Channel{channel.Email}, got)
}

func TestEntitlements_LandlordWithoutAnyPlan(t *testing.T) {
	ents, db := setupEntitlements(t)

	landlord := testutil.TestUser(t, db, testutil.WithRole(model.RoleLandlord))

	got := ents.ResolveChannels(landlord)
	assert.Empty(t, got)
}

func TestEntitlements_TenantInheritsLandlordPlan(t *testing.T) {
	ents, db := setupEntitlements(t)

	landlord := testutil.TestUser(t, db, testutil.WithRole(model.RoleLandlord))
	tenant := testutil.TestUser(t, db, testutil.WithRole(model.RoleTenant))
	testutil.TestTenantProfile(t, db, tenant.ID, &landlord.ID)

	paid := testutil.TestPlan(t, db,
		testutil.WithPrice(99),
		testutil.WithChannels(channel.Email, channel.Messenger))
	testutil.TestSubscription(t, db, landlord.ID, paid.ID)

	got := ents.ResolveChannels(tenant)
	assert.ElementsMatch(t, []channel.Channel{channel.Email, channel.Messenger}, got)
}

func TestEntitlements_OrphanTenantGetsNothing(t *testing.T) {
	ents, db := setupEntitlements(t)

	tenant := testutil.TestUser(t, db, testutil.WithRole(model.RoleTenant))
	testutil.TestTenantProfile(t, db, tenant.ID, nil)

	// A default plan exists but an unlinked tenant has no billing owner
	testutil.TestPlan(t, db,
		testutil.AsDefaultPlan(),
		testutil.WithChannels(channel.Email))

	got := ents.ResolveChannels(tenant)
	assert.Empty(t, got)
}

func TestEntitlements_MalformedChannelListTreatedAsEmpty(t *testing.T) {
	ents, db := setupEntitlements(t)

	landlord := testutil.TestUser(t, db, testutil.WithRole(model.RoleLandlord))
	plan := testutil.TestPlan(t, db,
		testutil.WithPrice(50),
		testutil.WithRawChannels("not-json"))
	testutil.TestSubscription(t, db, landlord.ID, plan.ID)

	got := ents.ResolveChannels(landlord)
	assert.Empty(t, got)
}
