package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/pkg/channel"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
)

func setupPlanService(t *testing.T) (*PlanService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewPlanService(repository.NewPlanRepository(db)), db
}

func TestPlanService_Create_PaidDefaultRejected(t *testing.T) {
	svc, _ := setupPlanService(t)

	plan := &model.Plan{Name: "Premium", Price: 100, IsDefault: true, IsActive: true}
	err := svc.Create(plan)
	assert.Equal(t, ErrDefaultMustBeFree, err)
}

func TestPlanService_Create_DefaultClearsPreviousDefault(t *testing.T) {
	svc, db := setupPlanService(t)

	old := testutil.TestPlan(t, db, testutil.AsDefaultPlan())

	plan := &model.Plan{Name: "New Free", Price: 0, IsDefault: true, IsActive: true}
	plan.SetChannels([]channel.Channel{channel.Email})
	require.NoError(t, svc.Create(plan))

	var reloaded model.Plan
	require.NoError(t, db.First(&reloaded, old.ID).Error)
	assert.False(t, reloaded.IsDefault)

	// Exactly one default remains
	var count int64
	require.NoError(t, db.Model(&model.Plan{}).Where("is_default = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlanService_Create_DuplicateName(t *testing.T) {
	svc, db := setupPlanService(t)

	existing := testutil.TestPlan(t, db)

	err := svc.Create(&model.Plan{Name: existing.Name, Price: 10, IsActive: true})
	assert.Equal(t, ErrPlanNameTaken, err)
}

func TestPlanService_Update_PaidDefaultRejected(t *testing.T) {
	svc, db := setupPlanService(t)

	plan := testutil.TestPlan(t, db, testutil.WithPrice(100))
	plan.IsDefault = true

	err := svc.Update(plan)
	assert.Equal(t, ErrDefaultMustBeFree, err)
}

func TestPlanService_Delete_ReferencedPlanKept(t *testing.T) {
	svc, db := setupPlanService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	err := svc.Delete(plan.ID)
	assert.Equal(t, ErrPlanReferenced, err)

	var reloaded model.Plan
	assert.NoError(t, db.First(&reloaded, plan.ID).Error)
}

func TestPlanService_EnsureDefaultPlan_CreatesFallback(t *testing.T) {
	svc, db := setupPlanService(t)

	plan, err := svc.EnsureDefaultPlan()
	require.NoError(t, err)
	assert.Equal(t, "Free Plan", plan.Name)
	assert.True(t, plan.IsDefault)
	assert.Zero(t, plan.Price)
	assert.Equal(t, []channel.Channel{channel.Email}, plan.Channels())

	// Second call reuses the existing default instead of creating another
	again, err := svc.EnsureDefaultPlan()
	require.NoError(t, err)
	assert.Equal(t, plan.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.Plan{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlanService_ListPublic_FallbackWhenEmpty(t *testing.T) {
	svc, _ := setupPlanService(t)

	plans, err := svc.ListPublic()
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Free Plan", plans[0].Name)
}
