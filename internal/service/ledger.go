package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrmateussiilva/petstory/config"
	"github.com/mrmateussiilva/petstory/internal/metrics"
	"github.com/mrmateussiilva/petstory/internal/models"
	"github.com/sirupsen/logrus"
)

// Gateway defines the payment gateway operations the ledger relies on.
// Implementations talk to the hosted checkout provider.
type Gateway interface {
	CreateCheckout(ctx context.Context, reference string, key models.OrderKey, amount float64) (*models.CheckoutSession, error)
	FetchTransaction(ctx context.Context, transactionID string) (*models.GatewayTransaction, error)
}

// bucket holds every payment record created for one order key. Its mutex makes
// all mutations of that key mutually exclusive. A bucket emptied by the purge is
// marked dead so writers that raced with the purge retry on a fresh one.
type bucket struct {
	mu      sync.Mutex
	dead    bool
	records []*models.PaymentRecord
}

func (b *bucket) find(reference string) *models.PaymentRecord {
	for _, r := range b.records {
		if r.Reference == reference {
			return r
		}
	}
	return nil
}

// PaymentLedger is the in-memory authority for payment state.
//
// Records only ever move from PENDING to a single terminal status. Duplicate
// notifications are no-ops and conflicting ones are logged and ignored, so the
// notification channel, direct verification and the sweeps can race freely.
type PaymentLedger struct {
	Gateway    Gateway
	SessionTTL time.Duration
	Retention  time.Duration
	Clock      func() time.Time

	mu      sync.RWMutex
	buckets map[models.OrderKey]*bucket
	refs    map[string]models.OrderKey
}

// NewPaymentLedger creates an empty ledger backed by the given gateway.
func NewPaymentLedger(gateway Gateway, cfg config.Ledger) *PaymentLedger {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	retention := cfg.Retention
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}
	return &PaymentLedger{
		Gateway:    gateway,
		SessionTTL: ttl,
		Retention:  retention,
		Clock:      time.Now,
		buckets:    make(map[models.OrderKey]*bucket),
		refs:       make(map[string]models.OrderKey),
	}
}

// Create opens a checkout session with the gateway and records it as PENDING.
// Nothing is stored when the gateway call fails.
func (l *PaymentLedger) Create(ctx context.Context, key models.OrderKey, amount float64) (*models.CheckoutSession, error) {
	reference := uuid.NewString()

	session, err := l.Gateway.CreateCheckout(ctx, reference, key, amount)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key.String(), "reference": reference}).
			Errorf("checkout session creation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: empty checkout session for %s", models.ErrGatewayUnavailable, reference)
	}
	session.Reference = reference

	now := l.Clock()
	record := &models.PaymentRecord{
		Reference:    reference,
		PreferenceID: session.PreferenceID,
		Key:          key,
		Amount:       amount,
		Currency:     models.CurrencyBRL,
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(l.SessionTTL),
	}

	for {
		b := l.bucketFor(key)
		b.mu.Lock()
		if b.dead {
			b.mu.Unlock()
			l.dropBucket(key, b)
			continue
		}
		b.records = append(b.records, record)
		l.mu.Lock()
		l.refs[reference] = key
		l.mu.Unlock()
		b.mu.Unlock()
		break
	}

	logrus.WithFields(logrus.Fields{"key": key.String(), "reference": reference}).Info("payment session created")
	return session, nil
}

// ApplyStatus records a status reported for the session identified by reference.
//
// A PENDING record moves to any terminal status. Re-applying the current status
// or a non-terminal one changes nothing. A different terminal status for an
// already settled record is refused with ErrStatusConflict. References the ledger
// does not know, including purged ones, return ErrRecordNotFound and are never
// recreated.
func (l *PaymentLedger) ApplyStatus(reference string, status models.PaymentStatus) (*models.PaymentRecord, error) {
	return l.apply(reference, status, "")
}

func (l *PaymentLedger) apply(reference string, status models.PaymentStatus, transactionID string) (*models.PaymentRecord, error) {
	log := logrus.WithFields(logrus.Fields{"reference": reference, "status": status})

	l.mu.RLock()
	key, ok := l.refs[reference]
	b := l.buckets[key]
	l.mu.RUnlock()
	if !ok || b == nil {
		log.Warn("status reported for unknown or purged payment session, ignoring")
		return nil, fmt.Errorf("%w: %s", models.ErrRecordNotFound, reference)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	record := b.find(reference)
	if b.dead || record == nil {
		log.Warn("status reported for unknown or purged payment session, ignoring")
		return nil, fmt.Errorf("%w: %s", models.ErrRecordNotFound, reference)
	}

	switch {
	case !status.IsTerminal():
		if record.Status == models.StatusPending && transactionID != "" {
			record.TransactionID = transactionID
		}
		log.Debug("non terminal status, nothing to apply")
	case record.Status == status:
		if record.TransactionID == "" && transactionID != "" {
			record.TransactionID = transactionID
		}
		log.Debug("status already applied")
	case record.Status.IsTerminal():
		log.Warnf("refusing to move settled payment from %s to %s", record.Status, status)
		current := *record
		return &current, fmt.Errorf("%w: %s is %s", models.ErrStatusConflict, reference, record.Status)
	default:
		if transactionID != "" {
			record.TransactionID = transactionID
		}
		record.Status = status
		record.UpdatedAt = l.Clock()
		metrics.PaymentTransitionsTotal.WithLabelValues(string(status)).Inc()
		log.Info("payment status updated")
	}

	current := *record
	return &current, nil
}

// LookupApproved returns the most recent APPROVED record for the key.
func (l *PaymentLedger) LookupApproved(key models.OrderKey) (*models.PaymentRecord, bool) {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b == nil {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.records) - 1; i >= 0; i-- {
		if b.records[i].Status == models.StatusApproved {
			found := *b.records[i]
			return &found, true
		}
	}
	return nil, false
}

// Get returns a copy of the record for reference.
func (l *PaymentLedger) Get(reference string) (*models.PaymentRecord, bool) {
	l.mu.RLock()
	key, ok := l.refs[reference]
	b := l.buckets[key]
	l.mu.RUnlock()
	if !ok || b == nil {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	record := b.find(reference)
	if record == nil {
		return nil, false
	}
	found := *record
	return &found, true
}

// VerifyDirect asks the gateway for the current state of a transaction and
// applies it to the session the transaction belongs to. On ErrStatusConflict the
// returned record is the one already stored.
func (l *PaymentLedger) VerifyDirect(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	tx, err := l.Gateway.FetchTransaction(ctx, transactionID)
	if err != nil {
		logrus.WithField("transaction_id", transactionID).Errorf("direct verification failed: %v", err)
		return nil, fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
	if tx.Reference == "" {
		logrus.WithField("transaction_id", transactionID).Warn("transaction carries no session reference")
		return nil, fmt.Errorf("%w: transaction %s has no reference", models.ErrRecordNotFound, transactionID)
	}

	return l.apply(tx.Reference, models.StatusFromGateway(tx.Status), tx.ID)
}

// SweepExpirations moves every PENDING record past its expiry to EXPIRED and
// returns how many were moved.
func (l *PaymentLedger) SweepExpirations() int {
	now := l.Clock()
	expired := 0

	for _, b := range l.snapshot() {
		b.mu.Lock()
		for _, r := range b.records {
			if r.Status == models.StatusPending && now.After(r.ExpiresAt) {
				r.Status = models.StatusExpired
				r.UpdatedAt = now
				expired++
			}
		}
		b.mu.Unlock()
	}

	if expired > 0 {
		metrics.LedgerSweepRecordsTotal.WithLabelValues("expired").Add(float64(expired))
		metrics.PaymentTransitionsTotal.WithLabelValues(string(models.StatusExpired)).Add(float64(expired))
		logrus.Infof("expired %d pending payment sessions", expired)
	}
	return expired
}

// PurgeOld removes every record created more than the retention window ago,
// whatever its status, and returns how many were removed.
func (l *PaymentLedger) PurgeOld() int {
	cutoff := l.Clock().Add(-l.Retention)
	var purgedRefs []string
	emptied := make(map[models.OrderKey]*bucket)

	l.mu.RLock()
	keys := make([]models.OrderKey, 0, len(l.buckets))
	buckets := make([]*bucket, 0, len(l.buckets))
	for k, b := range l.buckets {
		keys = append(keys, k)
		buckets = append(buckets, b)
	}
	l.mu.RUnlock()

	for i, b := range buckets {
		b.mu.Lock()
		kept := b.records[:0]
		for _, r := range b.records {
			if r.CreatedAt.Before(cutoff) {
				purgedRefs = append(purgedRefs, r.Reference)
				continue
			}
			kept = append(kept, r)
		}
		b.records = kept
		if len(b.records) == 0 {
			b.dead = true
			emptied[keys[i]] = b
		}
		b.mu.Unlock()
	}

	if len(purgedRefs) == 0 && len(emptied) == 0 {
		return 0
	}

	l.mu.Lock()
	for _, ref := range purgedRefs {
		delete(l.refs, ref)
	}
	for k, b := range emptied {
		if l.buckets[k] == b {
			delete(l.buckets, k)
		}
	}
	l.mu.Unlock()

	if len(purgedRefs) > 0 {
		metrics.LedgerSweepRecordsTotal.WithLabelValues("purged").Add(float64(len(purgedRefs)))
		logrus.Infof("purged %d payment records older than %v", len(purgedRefs), l.Retention)
	}
	return len(purgedRefs)
}

func (l *PaymentLedger) bucketFor(key models.OrderKey) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b = &bucket{}
	l.buckets[key] = b
	return b
}

func (l *PaymentLedger) dropBucket(key models.OrderKey, b *bucket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets[key] == b {
		delete(l.buckets, key)
	}
}

func (l *PaymentLedger) snapshot() []*bucket {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*bucket, 0, len(l.buckets))
	for _, b := range l.buckets {
		out = append(out, b)
	}
	return out
}
