package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/boostline-inc/boostline/internal/domain/subscription/valueobjects"
	"github.com/boostline-inc/boostline/internal/shared/biztime"
)

func newActiveCard(t *testing.T, endDate time.Time) *Subscription {
	t.Helper()
	sub, err := NewCardSubscription(42, 7, biztime.NowUTC(), endDate, "sub_remote1")
	require.NoError(t, err)
	return sub
}

func TestNewCardSubscription(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 30)
	sub := newActiveCard(t, end)

	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.IsActive())
	require.NotNil(t, sub.StripeSubscriptionID())
	assert.Equal(t, "sub_remote1", *sub.StripeSubscriptionID())
	assert.Nil(t, sub.PaymentReference())
	assert.True(t, len(sub.SID()) > 4)
}

func TestNewCardSubscription_RequiresRemoteID(t *testing.T) {
	now := biztime.NowUTC()
	_, err := NewCardSubscription(42, 7, now, biztime.AddDays(now, 30), "")
	require.Error(t, err)
}

func TestNewCryptoSubscription_StartsPending(t *testing.T) {
	now := biztime.NowUTC()
	sub, err := NewCryptoSubscription(42, 7, now, biztime.AddDays(now, 30), "cp_abc123")
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPending, sub.Status())
	assert.False(t, sub.IsActive())
	require.NotNil(t, sub.PaymentReference())
	assert.Equal(t, "cp_abc123", *sub.PaymentReference())
}

func TestActivate_PendingToActive(t *testing.T) {
	now := biztime.NowUTC()
	sub, err := NewCryptoSubscription(42, 7, now, biztime.AddDays(now, 30), "cp_abc123")
	require.NoError(t, err)

	require.NoError(t, sub.Activate())
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.IsActive())

	// Repeat activation is a no-op.
	require.NoError(t, sub.Activate())
}

func TestCancel_KeepsServingThroughGracePeriod(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 10)
	sub := newActiveCard(t, end)

	require.NoError(t, sub.Cancel(end))

	assert.Equal(t, vo.StatusCancelled, sub.Status())
	assert.True(t, sub.IsActive(), "cancellation does not cut access immediately")
	assert.True(t, sub.InGracePeriod(biztime.NowUTC()))
	assert.False(t, sub.InGracePeriod(end.Add(time.Hour)))
}

func TestCancel_Twice(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 10)
	sub := newActiveCard(t, end)

	require.NoError(t, sub.Cancel(end))
	assert.Error(t, sub.Cancel(end))
}

func TestDeactivate_OnlyAfterEndDate(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 10)
	sub := newActiveCard(t, end)
	require.NoError(t, sub.Cancel(end))

	assert.Error(t, sub.Deactivate(biztime.NowUTC()), "grace period still running")

	require.NoError(t, sub.Deactivate(end.Add(time.Minute)))
	assert.False(t, sub.IsActive())
	assert.Equal(t, vo.StatusCancelled, sub.Status())

	// Already inactive: no-op.
	require.NoError(t, sub.Deactivate(end.Add(time.Hour)))
}

func TestMarkAsExpired(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 10)
	sub := newActiveCard(t, end)

	require.NoError(t, sub.MarkAsExpired())
	assert.Equal(t, vo.StatusExpired, sub.Status())
	assert.False(t, sub.IsActive())

	// Repeat is a no-op.
	require.NoError(t, sub.MarkAsExpired())
}

func TestNewSubscription_EndBeforeStartRejected(t *testing.T) {
	now := biztime.NowUTC()
	_, err := NewCardSubscription(42, 7, now, now.Add(-time.Hour), "sub_remote1")
	require.Error(t, err)
}

func TestVersionIncrementsOnMutation(t *testing.T) {
	end := biztime.AddDays(biztime.NowUTC(), 10)
	sub := newActiveCard(t, end)
	before := sub.Version()

	require.NoError(t, sub.Cancel(end))
	assert.Equal(t, before+1, sub.Version())
}
