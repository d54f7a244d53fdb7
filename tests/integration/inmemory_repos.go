package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stablegate/internal/core/domain"
	"stablegate/internal/core/ports"
	"stablegate/internal/money"
)

// --- In-Memory Merchant Repo ---

type inMemoryMerchantRepo struct {
	mu        sync.RWMutex
	merchants map[uuid.UUID]*domain.Merchant
}

func newInMemoryMerchantRepo() *inMemoryMerchantRepo {
	return &inMemoryMerchantRepo{merchants: make(map[uuid.UUID]*domain.Merchant)}
}

func (r *inMemoryMerchantRepo) seed(m *domain.Merchant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merchants[m.ID] = m
}

func (r *inMemoryMerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

func (r *inMemoryMerchantRepo) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if m.APIKeyHash == apiKeyHash {
			return m, nil
		}
	}
	return nil, nil
}

// --- In-Memory Invoice Repo ---

type inMemoryInvoiceRepo struct {
	mu       sync.RWMutex
	invoices map[uuid.UUID]*domain.Invoice
}

func newInMemoryInvoiceRepo() *inMemoryInvoiceRepo {
	return &inMemoryInvoiceRepo{invoices: make(map[uuid.UUID]*domain.Invoice)}
}

func (r *inMemoryInvoiceRepo) Create(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *invoice
	r.invoices[invoice.ID] = &cp
	return nil
}

func (r *inMemoryInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *inMemoryInvoiceRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryInvoiceRepo) GetByMerchantOrderID(ctx context.Context, merchantID uuid.UUID, merchantOrderID string) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.invoices {
		if inv.MerchantID == merchantID && inv.MerchantOrderID == merchantOrderID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryInvoiceRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.InvoiceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil
	}
	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryInvoiceRepo) ListExpirable(ctx context.Context, before time.Time, limit int) ([]domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Invoice
	for _, inv := range r.invoices {
		if inv.CanExpire() && inv.ExpiresAt.Before(before) {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory Intent Repo ---

type inMemoryIntentRepo struct {
	mu      sync.RWMutex
	intents map[uuid.UUID]*domain.PaymentIntent
}

func newInMemoryIntentRepo() *inMemoryIntentRepo {
	return &inMemoryIntentRepo{intents: make(map[uuid.UUID]*domain.PaymentIntent)}
}

func (r *inMemoryIntentRepo) Create(ctx context.Context, tx pgx.Tx, intent *domain.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *intent
	r.intents[intent.ID] = &cp
	return nil
}

func (r *inMemoryIntentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.intents[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (r *inMemoryIntentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.PaymentIntent, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryIntentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]domain.PaymentIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PaymentIntent
	for _, i := range r.intents {
		if i.InvoiceID == invoiceID {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

func (r *inMemoryIntentRepo) ListActiveByDepositAddressForUpdate(ctx context.Context, tx pgx.Tx, chain, depositAddress string) ([]domain.PaymentIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PaymentIntent
	for _, i := range r.intents {
		if i.Chain == chain && i.DepositAddress == depositAddress {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

func (r *inMemoryIntentRepo) UpdateStatusAndCredited(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.IntentStatus, credited money.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.intents[id]
	if !ok {
		return nil
	}
	i.Status = status
	i.CreditedAtomic = credited
	i.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryIntentRepo) ListNonTerminalByInvoiceIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID) ([]domain.PaymentIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.PaymentIntent
	for _, i := range r.intents {
		if i.InvoiceID == invoiceID && !i.Status.IsTerminal() {
			out = append(out, *i)
		}
	}
	return out, nil
}

// --- In-Memory Transfer Repo ---

type inMemoryTransferRepo struct {
	mu        sync.RWMutex
	transfers map[uuid.UUID]*domain.Transfer
	byIntent  map[uuid.UUID][]uuid.UUID // intentID -> transferIDs, populated via IntentFundRepository
}

func newInMemoryTransferRepo() *inMemoryTransferRepo {
	return &inMemoryTransferRepo{
		transfers: make(map[uuid.UUID]*domain.Transfer),
		byIntent:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *inMemoryTransferRepo) Create(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transfers {
		if t.Chain == transfer.Chain && t.TxHash == transfer.TxHash && t.LogIndex == transfer.LogIndex {
			return ports.ErrAlreadyExists
		}
	}
	cp := *transfer
	r.transfers[transfer.ID] = &cp
	return nil
}

func (r *inMemoryTransferRepo) GetByChainEvent(ctx context.Context, chain, txHash string, logIndex int) (*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transfers {
		if t.Chain == chain && t.TxHash == txHash && t.LogIndex == logIndex {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryTransferRepo) ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transfer
	for _, tid := range r.byIntent[intentID] {
		if t, ok := r.transfers[tid]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *inMemoryTransferRepo) UpdateBlockNumber(ctx context.Context, tx pgx.Tx, id uuid.UUID, blockNumber int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil
	}
	t.BlockNumber = blockNumber
	return nil
}

// linkToIntent is called by inMemoryIntentFundRepo.Create so
// ListByIntentID can answer without a join table lookup.
func (r *inMemoryTransferRepo) linkToIntent(intentID, transferID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byIntent[intentID] = append(r.byIntent[intentID], transferID)
}

// --- In-Memory Intent Fund Repo ---

type inMemoryIntentFundRepo struct {
	mu           sync.RWMutex
	funds        map[uuid.UUID]*domain.IntentFund
	transferRepo *inMemoryTransferRepo
}

func newInMemoryIntentFundRepo(transferRepo *inMemoryTransferRepo) *inMemoryIntentFundRepo {
	return &inMemoryIntentFundRepo{funds: make(map[uuid.UUID]*domain.IntentFund), transferRepo: transferRepo}
}

func (r *inMemoryIntentFundRepo) Create(ctx context.Context, tx pgx.Tx, fund *domain.IntentFund) error {
	r.mu.Lock()
	cp := *fund
	r.funds[fund.ID] = &cp
	r.mu.Unlock()
	r.transferRepo.linkToIntent(fund.IntentID, fund.TransferID)
	return nil
}

func (r *inMemoryIntentFundRepo) ListByIntentID(ctx context.Context, intentID uuid.UUID) ([]domain.IntentFund, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.IntentFund
	for _, f := range r.funds {
		if f.IntentID == intentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

// --- In-Memory Outbox Repo ---

type inMemoryOutboxRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.OutboxRecord
}

func newInMemoryOutboxRepo() *inMemoryOutboxRepo {
	return &inMemoryOutboxRepo{records: make(map[uuid.UUID]*domain.OutboxRecord)}
}

func (r *inMemoryOutboxRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.OutboxRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *inMemoryOutboxRepo) ClaimBatch(ctx context.Context, claimToken uuid.UUID, leaseDuration time.Duration, limit int) ([]domain.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var due []*domain.OutboxRecord
	for _, rec := range r.records {
		switch rec.Status {
		case domain.OutboxStatusPending:
			if !rec.NextAttemptAt.After(now) {
				due = append(due, rec)
			}
		case domain.OutboxStatusInFlight:
			if rec.ClaimDeadline != nil && rec.ClaimDeadline.Before(now) {
				due = append(due, rec)
			}
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextAttemptAt.Before(due[j].NextAttemptAt) })
	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]domain.OutboxRecord, 0, len(due))
	deadline := now.Add(leaseDuration)
	for _, rec := range due {
		rec.Status = domain.OutboxStatusInFlight
		token := claimToken
		rec.ClaimToken = &token
		rec.ClaimDeadline = &deadline
		out = append(out, *rec)
	}
	return out, nil
}

func (r *inMemoryOutboxRepo) MarkDone(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.ClaimToken == nil || *rec.ClaimToken != claimToken {
		return nil
	}
	rec.Status = domain.OutboxStatusDone
	return nil
}

func (r *inMemoryOutboxRepo) MarkRetry(ctx context.Context, id uuid.UUID, claimToken uuid.UUID, nextAttemptAt time.Time, attemptCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.ClaimToken == nil || *rec.ClaimToken != claimToken {
		return nil
	}
	rec.Status = domain.OutboxStatusPending
	rec.NextAttemptAt = nextAttemptAt
	rec.AttemptCount = attemptCount
	rec.ClaimToken = nil
	rec.ClaimDeadline = nil
	return nil
}

func (r *inMemoryOutboxRepo) MarkDead(ctx context.Context, id uuid.UUID, claimToken uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.ClaimToken == nil || *rec.ClaimToken != claimToken {
		return nil
	}
	rec.Status = domain.OutboxStatusDead
	return nil
}

// --- In-Memory Idempotency Repo ---

type inMemoryIdempotencyRepo struct {
	mu      sync.RWMutex
	records map[string]*domain.IdempotencyRecord
}

func newInMemoryIdempotencyRepo() *inMemoryIdempotencyRepo {
	return &inMemoryIdempotencyRepo{records: make(map[string]*domain.IdempotencyRecord)}
}

func (r *inMemoryIdempotencyRepo) Get(ctx context.Context, scope domain.IdempotencyScope, key string) (*domain.IdempotencyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryIdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[record.Key]; exists {
		return ports.ErrAlreadyExists
	}
	cp := *record
	r.records[record.Key] = &cp
	return nil
}

// --- In-Memory Idempotency Cache (Redis fast-path stand-in) ---

type inMemoryIdempotencyCache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func newInMemoryIdempotencyCache() *inMemoryIdempotencyCache {
	return &inMemoryIdempotencyCache{values: make(map[string][]byte)}
}

func (c *inMemoryIdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key], nil
}

func (c *inMemoryIdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// --- In-Memory Unmatched Transfer Repo ---

type inMemoryUnmatchedTransferRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*domain.UnmatchedTransfer
}

func newInMemoryUnmatchedTransferRepo() *inMemoryUnmatchedTransferRepo {
	return &inMemoryUnmatchedTransferRepo{records: make(map[uuid.UUID]*domain.UnmatchedTransfer)}
}

func (r *inMemoryUnmatchedTransferRepo) Create(ctx context.Context, tx pgx.Tx, record *domain.UnmatchedTransfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[record.ID] = &cp
	return nil
}

func (r *inMemoryUnmatchedTransferRepo) ListUnresolvedByAddress(ctx context.Context, chain, tokenContract, toAddress string) ([]domain.UnmatchedTransfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.UnmatchedTransfer
	for _, rec := range r.records {
		if !rec.Resolved && rec.Chain == chain && rec.TokenContract == tokenContract && rec.ToAddress == toAddress {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemoryUnmatchedTransferRepo) MarkResolved(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil
	}
	rec.Resolved = true
	return nil
}

// --- In-Memory Lease Repo ---

type inMemoryLeaseRepo struct {
	mu     sync.Mutex
	leases map[string]*domain.Lease
}

func newInMemoryLeaseRepo() *inMemoryLeaseRepo {
	return &inMemoryLeaseRepo{leases: make(map[string]*domain.Lease)}
}

func (r *inMemoryLeaseRepo) TryAcquire(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if l, ok := r.leases[name]; ok && l.Held(now) && l.InstanceID != instanceID {
		return false, nil
	}
	r.leases[name] = &domain.Lease{Name: name, InstanceID: instanceID, AcquiredAt: now, ExpiresAt: now.Add(ttl)}
	return true, nil
}

func (r *inMemoryLeaseRepo) Renew(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leases[name]
	if !ok || l.InstanceID != instanceID {
		return false, nil
	}
	l.ExpiresAt = time.Now().UTC().Add(ttl)
	return true, nil
}

func (r *inMemoryLeaseRepo) Release(ctx context.Context, name, instanceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leases[name]; ok && l.InstanceID == instanceID {
		delete(r.leases, name)
	}
	return nil
}

// --- In-Memory Poison Event Repo ---

type inMemoryPoisonRepo struct {
	mu     sync.Mutex
	events []domain.PoisonEvent
}

func newInMemoryPoisonRepo() *inMemoryPoisonRepo {
	return &inMemoryPoisonRepo{}
}

func (r *inMemoryPoisonRepo) Create(ctx context.Context, event *domain.PoisonEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing — every
// in-memory repo above mutates its map directly rather than through tx,
// so this only needs to satisfy the interface, not do anything.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

// --- Fake external collaborators (out-of-scope per spec §1) ---

// fakeBlockchainReader lets a scenario test drive confirmation depth by
// setting the current block per chain directly.
type fakeBlockchainReader struct {
	mu     sync.RWMutex
	blocks map[string]int64
}

func newFakeBlockchainReader() *fakeBlockchainReader {
	return &fakeBlockchainReader{blocks: make(map[string]int64)}
}

func (f *fakeBlockchainReader) setBlock(chain string, block int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocks[chain] = block
}

func (f *fakeBlockchainReader) CurrentBlock(ctx context.Context, chain string) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.blocks[chain], nil
}

// fakeDepositAddressAllocator hands back sequential deterministic
// addresses, or a pinned one if preset via setNextAddress.
type fakeDepositAddressAllocator struct {
	mu      sync.Mutex
	next    string
	counter int
}

func newFakeDepositAddressAllocator() *fakeDepositAddressAllocator {
	return &fakeDepositAddressAllocator{}
}

func (f *fakeDepositAddressAllocator) setNextAddress(addr string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next = addr
}

func (f *fakeDepositAddressAllocator) Allocate(ctx context.Context, chain, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next != "" {
		addr := f.next
		f.next = ""
		return addr, nil
	}
	f.counter++
	return uuid.NewString(), nil
}

// fakePricingCalculator converts fiat cents to atomic units at a fixed
// ratio, matching the scenarios' stated 6-decimal token amounts (1 cent
// = 10000 atomic units, so $10.00 = 1000 cents -> 10000000 atomic).
type fakePricingCalculator struct {
	ratio int64
}

func newFakePricingCalculator() *fakePricingCalculator {
	return &fakePricingCalculator{ratio: 10000}
}

func (f *fakePricingCalculator) ToAtomicAmount(ctx context.Context, fiatAmountCents money.Amount, currency, token, chain string) (money.Amount, error) {
	return fiatAmountCents.Mul(f.ratio), nil
}
