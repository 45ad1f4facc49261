package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/mrmateussiilva/petstory/internal/service"
	"github.com/mrmateussiilva/petstory/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testKey = models.NewOrderKey("Tutor@Example.com ", "Rex")

func newTestLedger(t *testing.T) (*service.PaymentLedger, *mocks.MockGateway, *fakeClock) {
	gateway := mocks.NewMockGateway(t)
	ledger := service.NewPaymentLedger(gateway, config.Ledger{})
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	ledger.Clock = clock.Now
	return ledger, gateway, clock
}

func expectCheckout(gateway *mocks.MockGateway, key models.OrderKey) {
	gateway.EXPECT().
		CreateCheckout(mock.Anything, mock.AnythingOfType("string"), key, 29.90).
		Return(&models.CheckoutSession{PreferenceID: "pref-1", CheckoutURL: "https://mp.test/checkout"}, nil).
		Once()
}

func createSession(t *testing.T, ledger *service.PaymentLedger, gateway *mocks.MockGateway, key models.OrderKey) string {
	expectCheckout(gateway, key)
	session, err := ledger.Create(context.Background(), key, 29.90)
	require.NoError(t, err)
	require.NotEmpty(t, session.Reference)
	return session.Reference
}

func TestLedgerCreate_StoresPendingRecord(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)

	ref := createSession(t, ledger, gateway, testKey)

	record, ok := ledger.Get(ref)
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, record.Status)
	assert.Equal(t, "tutor@example.com", record.Key.Email)
	assert.Equal(t, "pref-1", record.PreferenceID)
	assert.Equal(t, clock.Now().Add(24*time.Hour), record.ExpiresAt)

	_, approved := ledger.LookupApproved(testKey)
	assert.False(t, approved)
}

func TestLedgerCreate_GatewayFailureStoresNothing(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)

	var usedRef string
	gateway.EXPECT().
		CreateCheckout(mock.Anything, mock.AnythingOfType("string"), testKey, 29.90).
		Run(func(ctx context.Context, reference string, key models.OrderKey, amount float64) {
			usedRef = reference
		}).
		Return(nil, errors.New("connection refused")).
		Once()

	session, err := ledger.Create(context.Background(), testKey, 29.90)

	assert.Nil(t, session)
	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
	_, ok := ledger.Get(usedRef)
	assert.False(t, ok)
}

func TestLedgerApplyStatus_ApprovedIsVisibleToLookup(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)

	record, err := ledger.ApplyStatus(ref, models.StatusApproved)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, record.Status)
	found, ok := ledger.LookupApproved(testKey)
	require.True(t, ok)
	assert.Equal(t, ref, found.Reference)
}

func TestLedgerApplyStatus_Idempotent(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)

	first, err := ledger.ApplyStatus(ref, models.StatusApproved)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second, err := ledger.ApplyStatus(ref, models.StatusApproved)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLedgerApplyStatus_ApprovedIsNeverOverwritten(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)
	_, err := ledger.ApplyStatus(ref, models.StatusApproved)
	require.NoError(t, err)

	for _, status := range []models.PaymentStatus{models.StatusRejected, models.StatusExpired} {
		record, err := ledger.ApplyStatus(ref, status)
		assert.ErrorIs(t, err, models.ErrStatusConflict)
		assert.Equal(t, models.StatusApproved, record.Status)
	}

	record, err := ledger.ApplyStatus(ref, models.StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusApproved, record.Status)

	_, ok := ledger.LookupApproved(testKey)
	assert.True(t, ok)
}

func TestLedgerApplyStatus_RejectedCannotBecomeApproved(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)
	_, err := ledger.ApplyStatus(ref, models.StatusRejected)
	require.NoError(t, err)

	_, err = ledger.ApplyStatus(ref, models.StatusApproved)

	assert.ErrorIs(t, err, models.ErrStatusConflict)
	_, ok := ledger.LookupApproved(testKey)
	assert.False(t, ok)
}

func TestLedgerApplyStatus_UnknownReference(t *testing.T) {
	ledger, _, _ := newTestLedger(t)

	record, err := ledger.ApplyStatus("never-created", models.StatusApproved)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestLedgerLookupApproved_IsPerKey(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	other := models.NewOrderKey("tutor@example.com", "Mia")
	ref := createSession(t, ledger, gateway, testKey)
	createSession(t, ledger, gateway, other)
	_, err := ledger.ApplyStatus(ref, models.StatusApproved)
	require.NoError(t, err)

	_, ok := ledger.LookupApproved(other)
	assert.False(t, ok)
	_, ok = ledger.LookupApproved(testKey)
	assert.True(t, ok)
}

func TestLedgerSweepExpirations_OnlyAfterExpiry(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)
	pending := createSession(t, ledger, gateway, testKey)
	approved := createSession(t, ledger, gateway, models.NewOrderKey("b@example.com", "Bob"))
	_, err := ledger.ApplyStatus(approved, models.StatusApproved)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, ledger.SweepExpirations())
	record, _ := ledger.Get(pending)
	assert.Equal(t, models.StatusPending, record.Status)

	clock.Advance(time.Second)
	assert.Equal(t, 1, ledger.SweepExpirations())
	record, _ = ledger.Get(pending)
	assert.Equal(t, models.StatusExpired, record.Status)
	record, _ = ledger.Get(approved)
	assert.Equal(t, models.StatusApproved, record.Status)

	assert.Equal(t, 0, ledger.SweepExpirations())
}

func TestLedgerPurgeOld_RemovesAnyStatusPastRetention(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)
	old := createSession(t, ledger, gateway, testKey)
	_, err := ledger.ApplyStatus(old, models.StatusApproved)
	require.NoError(t, err)

	clock.Advance(6 * 24 * time.Hour)
	recent := createSession(t, ledger, gateway, models.NewOrderKey("c@example.com", "Luna"))

	clock.Advance(24*time.Hour + time.Second)
	assert.Equal(t, 1, ledger.PurgeOld())

	_, ok := ledger.Get(old)
	assert.False(t, ok)
	_, ok = ledger.LookupApproved(testKey)
	assert.False(t, ok)
	_, ok = ledger.Get(recent)
	assert.True(t, ok)

	_, err = ledger.ApplyStatus(old, models.StatusApproved)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestLedgerCreate_AfterPurgeUsesFreshBucket(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)
	createSession(t, ledger, gateway, testKey)
	clock.Advance(8 * 24 * time.Hour)
	require.Equal(t, 1, ledger.PurgeOld())

	ref := createSession(t, ledger, gateway, testKey)
	_, err := ledger.ApplyStatus(ref, models.StatusApproved)

	require.NoError(t, err)
	_, ok := ledger.LookupApproved(testKey)
	assert.True(t, ok)
}

func TestLedgerVerifyDirect_AppliesGatewayStatus(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)

	gateway.EXPECT().
		FetchTransaction(mock.Anything, "tx-42").
		Return(&models.GatewayTransaction{ID: "tx-42", Reference: ref, Status: "approved"}, nil).
		Once()

	record, err := ledger.VerifyDirect(context.Background(), "tx-42")

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, record.Status)
	assert.Equal(t, "tx-42", record.TransactionID)
}

func TestLedgerVerifyDirect_GatewayError(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)

	gateway.EXPECT().
		FetchTransaction(mock.Anything, "tx-42").
		Return(nil, errors.New("timeout")).
		Once()

	_, err := ledger.VerifyDirect(context.Background(), "tx-42")

	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}

func TestLedgerApplyStatus_ConcurrentConflictingReports(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		status := models.StatusApproved
		if i%2 == 1 {
			status = models.StatusRejected
		}
		go func() {
			defer wg.Done()
			_, _ = ledger.ApplyStatus(ref, status)
		}()
	}
	wg.Wait()

	record, ok := ledger.Get(ref)
	require.True(t, ok)
	assert.True(t, record.Status == models.StatusApproved || record.Status == models.StatusRejected)

	final := record.Status
	for i := 0; i < 5; i++ {
		_, _ = ledger.ApplyStatus(ref, models.StatusApproved)
		_, _ = ledger.ApplyStatus(ref, models.StatusRejected)
	}
	record, _ = ledger.Get(ref)
	assert.Equal(t, final, record.Status)
}

func TestLedgerVerifyDirect_ConflictLeavesRecordUntouched(t *testing.T) {
	ledger, gateway, clock := newTestLedger(t)
	ref := createSession(t, ledger, gateway, testKey)

	gateway.EXPECT().
		FetchTransaction(mock.Anything, "tx-A").
		Return(&models.GatewayTransaction{ID: "tx-A", Reference: ref, Status: "approved"}, nil).
		Once()
	gateway.EXPECT().
		FetchTransaction(mock.Anything, "tx-B").
		Return(&models.GatewayTransaction{ID: "tx-B", Reference: ref, Status: "rejected"}, nil).
		Once()

	_, err := ledger.VerifyDirect(context.Background(), "tx-A")
	require.NoError(t, err)
	before, ok := ledger.Get(ref)
	require.True(t, ok)

	clock.Advance(time.Minute)
	_, err = ledger.VerifyDirect(context.Background(), "tx-B")

	assert.ErrorIs(t, err, models.ErrStatusConflict)
	after, ok := ledger.Get(ref)
	require.True(t, ok)
	assert.Equal(t, *before, *after)
	assert.Equal(t, "tx-A", after.TransactionID)
}

func TestLedgerCreate_EmptyGatewaySession(t *testing.T) {
	ledger, gateway, _ := newTestLedger(t)

	gateway.EXPECT().
		CreateCheckout(mock.Anything, mock.AnythingOfType("string"), testKey, 29.90).
		Return(nil, nil).
		Once()

	session, err := ledger.Create(context.Background(), testKey, 29.90)

	assert.Nil(t, session)
	assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
}
