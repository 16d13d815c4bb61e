package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hxlane/rental_go_server/internal/model"
	"github.com/hxlane/rental_go_server/internal/repository"
	"github.com/hxlane/rental_go_server/internal/testutil"
)

// fakeNotifier captures raised notification events
type fakeNotifier struct {
	raised []raisedEvent
}

type raisedEvent struct {
	userID  int64
	subject string
	message string
}

func (f *fakeNotifier) Raise(_ context.Context, userID int64, subject, message string) {
	f.raised = append(f.raised, raisedEvent{userID: userID, subject: subject, message: message})
}

func setupPaymentReview(t *testing.T) (*PaymentReviewService, *fakeNotifier, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	planRepo := repository.NewPlanRepository(db)
	planSvc := NewPlanService(planRepo)
	subSvc := NewSubscriptionService(repository.NewSubscriptionRepository(db), planRepo, planSvc)

	notifier := &fakeNotifier{}
	svc := NewPaymentReviewService(repository.NewSubscriptionPaymentRepository(db), subSvc, notifier)
	return svc, notifier, db
}

func pendingSubscription(t *testing.T, db *gorm.DB) (*model.User, *model.Subscription) {
	t.Helper()
	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(50), testutil.WithDuration(30))
	sub := testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithStatus(model.SubscriptionPending))
	return user, sub
}

func TestPaymentReview_SubmitAndApprove(t *testing.T) {
	svc, notifier, db := setupPaymentReview(t)
	ctx := context.Background()

	user, sub := pendingSubscription(t, db)
	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	payment, err := svc.Submit(user.ID, sub.ID, 50, "gcash", "REF-123")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, payment.Status)

	require.NoError(t, svc.Approve(ctx, admin.ID, payment.ID))

	var reloadedSub model.Subscription
	require.NoError(t, db.First(&reloadedSub, sub.ID).Error)
	assert.Equal(t, model.SubscriptionActive, reloadedSub.Status)
	assert.NotNil(t, reloadedSub.EndsAt)

	var reloadedPay model.SubscriptionPayment
	require.NoError(t, db.First(&reloadedPay, payment.ID).Error)
	assert.Equal(t, model.PaymentApproved, reloadedPay.Status)
	require.NotNil(t, reloadedPay.ReviewedBy)
	assert.Equal(t, admin.ID, *reloadedPay.ReviewedBy)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, user.ID, notifier.raised[0].userID)
	assert.Equal(t, "Subscription Payment Approved", notifier.raised[0].subject)
}

func TestPaymentReview_Reject(t *testing.T) {
	svc, notifier, db := setupPaymentReview(t)
	ctx := context.Background()

	user, sub := pendingSubscription(t, db)
	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	payment, err := svc.Submit(user.ID, sub.ID, 50, "bank", "")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, admin.ID, payment.ID, "reference not found"))

	var reloadedSub model.Subscription
	require.NoError(t, db.First(&reloadedSub, sub.ID).Error)
	assert.Equal(t, model.SubscriptionCanceled, reloadedSub.Status)

	require.Len(t, notifier.raised, 1)
	assert.Equal(t, "Subscription Payment Rejected", notifier.raised[0].subject)
	assert.Contains(t, notifier.raised[0].message, "reference not found")
}

func TestPaymentReview_DoubleReviewRejected(t *testing.T) {
	svc, _, db := setupPaymentReview(t)
	ctx := context.Background()

	user, sub := pendingSubscription(t, db)
	admin := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	payment, err := svc.Submit(user.ID, sub.ID, 50, "gcash", "")
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, admin.ID, payment.ID))
	assert.Equal(t, ErrPaymentNotReview, svc.Approve(ctx, admin.ID, payment.ID))
	assert.Equal(t, ErrPaymentNotReview, svc.Reject(ctx, admin.ID, payment.ID, ""))
}

func TestPaymentReview_Submit_ForeignSubscriptionRejected(t *testing.T) {
	svc, _, db := setupPaymentReview(t)

	_, sub := pendingSubscription(t, db)
	other := testutil.TestUser(t, db)

	_, err := svc.Submit(other.ID, sub.ID, 50, "gcash", "")
	assert.Equal(t, ErrSubNotFound, err)
}
