package integration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, txn *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	r.transactions[txn.ID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) GetByUniqueLink(ctx context.Context, link string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.transactions {
		if t.UniqueLink == link {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// UpdateStatus applies the guarded status change atomically under the repo
// mutex, mirroring the compare-and-set UPDATE the PostgreSQL repo runs.
func (r *inMemoryTransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.TransactionStatus, paymentReference *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return false, fmt.Errorf("transaction not found")
	}
	if t.Status != from {
		return false, nil
	}
	t.Status = to
	if paymentReference != nil {
		t.PaymentReference = paymentReference
	}
	t.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryTransactionRepo) AssignBuyer(ctx context.Context, id uuid.UUID, buyerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return false, fmt.Errorf("transaction not found")
	}
	if t.BuyerID != nil {
		return false, nil
	}
	t.BuyerID = &buyerID
	t.UpdatedAt = time.Now().UTC()
	return true, nil
}

// --- In-Memory Payout Repo ---

type inMemoryPayoutRepo struct {
	mu      sync.RWMutex
	payouts map[uuid.UUID]*domain.Payout
}

func newInMemoryPayoutRepo() *inMemoryPayoutRepo {
	return &inMemoryPayoutRepo{payouts: make(map[uuid.UUID]*domain.Payout)}
}

func (r *inMemoryPayoutRepo) Create(ctx context.Context, p *domain.Payout) (*domain.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.payouts {
		if existing.TransactionID == p.TransactionID {
			cp := *existing
			return &cp, nil
		}
	}
	cp := *p
	r.payouts[p.ID] = &cp
	out := cp
	return &out, nil
}

func (r *inMemoryPayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payouts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *inMemoryPayoutRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payouts {
		if p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryPayoutRepo) GetByTransferReference(ctx context.Context, reference string) (*domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payouts {
		if p.TransferReference != nil && *p.TransferReference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// ClaimProcessing is atomic under the repo mutex, so concurrent claimants
// observe the same winner-takes-all semantics as the guarded UPDATE in
// PostgreSQL.
func (r *inMemoryPayoutRepo) ClaimProcessing(ctx context.Context, id uuid.UUID, from domain.PayoutStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payouts[id]
	if !ok {
		return false, fmt.Errorf("payout not found")
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = domain.PayoutStatusProcessing
	if from == domain.PayoutStatusFailed {
		p.RetryCount++
	}
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryPayoutRepo) SetTransferReference(ctx context.Context, id uuid.UUID, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payouts[id]
	if !ok {
		return fmt.Errorf("payout not found")
	}
	p.TransferReference = &reference
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryPayoutRepo) MarkCompleted(ctx context.Context, tx pgx.Tx, id uuid.UUID, gatewayReference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payouts[id]
	if !ok {
		return false, fmt.Errorf("payout not found")
	}
	if p.Status != domain.PayoutStatusProcessing {
		return false, nil
	}
	p.Status = domain.PayoutStatusCompleted
	p.GatewayReference = &gatewayReference
	p.FailureReason = nil
	p.RetryCount = 0
	p.NextRetryAt = nil
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryPayoutRepo) MarkFailed(ctx context.Context, id uuid.UUID, from domain.PayoutStatus, reason string, nextRetryAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payouts[id]
	if !ok {
		return false, fmt.Errorf("payout not found")
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = domain.PayoutStatusFailed
	p.FailureReason = &reason
	p.NextRetryAt = &nextRetryAt
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryPayoutRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []domain.Payout
	for _, p := range r.payouts {
		if p.Status != domain.PayoutStatusNotReady && p.Status != domain.PayoutStatusFailed {
			continue
		}
		if p.NextRetryAt != nil && p.NextRetryAt.After(now) {
			continue
		}
		due = append(due, *p)
		if len(due) >= limit {
			break
		}
	}
	return due, nil
}

func (r *inMemoryPayoutRepo) ListUnattemptedBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var queue []domain.Payout
	for _, p := range r.payouts {
		if p.SellerID == sellerID && p.Status == domain.PayoutStatusNotReady {
			queue = append(queue, *p)
		}
	}
	return queue, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetBySellerID(ctx context.Context, sellerID uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.SellerID == sellerID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

// GetBySellerIDForUpdate cannot hold a row lock in memory; the ledger's
// read-modify-write is only serialized per call, not across the enclosing
// transaction. Tests that depend on exact balances drive the wallet through
// one writer at a time.
func (r *inMemoryWalletRepo) GetBySellerIDForUpdate(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) (*domain.Wallet, error) {
	return r.GetBySellerID(ctx, sellerID)
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, pending, available decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet not found")
	}
	w.PendingBalance = pending
	w.AvailableBalance = available
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *inMemoryWalletRepo) TouchSettlementCheck(ctx context.Context, sellerID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.SellerID == sellerID {
			w.LastSettlementCheck = &at
			return nil
		}
	}
	return nil
}

// --- In-Memory Seller Repo ---

type inMemorySellerRepo struct {
	mu      sync.RWMutex
	sellers map[uuid.UUID]*domain.Seller
}

func newInMemorySellerRepo() *inMemorySellerRepo {
	return &inMemorySellerRepo{sellers: make(map[uuid.UUID]*domain.Seller)}
}

func (r *inMemorySellerRepo) Create(ctx context.Context, s *domain.Seller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sellers[s.ID]; ok {
		return fmt.Errorf("seller already exists")
	}
	cp := *s
	r.sellers[s.ID] = &cp
	return nil
}

func (r *inMemorySellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sellers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *inMemorySellerRepo) UpdateBankDetails(ctx context.Context, id uuid.UUID, bankCode, accountNumber, accountName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sellers[id]
	if !ok {
		return fmt.Errorf("seller not found")
	}
	s.BankCode = &bankCode
	s.AccountNumber = &accountNumber
	s.AccountName = &accountName
	s.UpdatedAt = time.Now().UTC()
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

// noopTx is a no-op pgx.Tx implementation for in-memory testing. Writes made
// through it apply immediately and are not rolled back.
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

// --- Fake Gateway ---

// fakeGateway implements ports.GatewayClient against process-local state. The
// webhook signature check runs the same HMAC-SHA256 scheme as the real
// client, so tests sign their deliveries with gatewaySecret exactly as the
// provider would.
type fakeGateway struct {
	secret string

	transferCalls atomic.Int64
	failTransfers atomic.Bool

	// onTransfer, when set, runs after the transfer is accepted but before
	// the result returns to the caller. Tests use it to interleave webhook
	// deliveries with the synchronous payout path.
	onTransfer func(req ports.TransferRequest)

	mu        sync.Mutex
	transfers []ports.TransferRequest
}

const gatewaySecret = "sk_test_integration_secret"

func newFakeGateway() *fakeGateway {
	return &fakeGateway{secret: gatewaySecret}
}

func (g *fakeGateway) InitializePayment(ctx context.Context, req ports.InitializePaymentRequest) (*ports.CheckoutSession, error) {
	return &ports.CheckoutSession{
		CheckoutURL: "https://checkout.gateway.test/" + req.Reference,
		Reference:   req.Reference,
	}, nil
}

func (g *fakeGateway) VerifyPayment(ctx context.Context, reference string) (*ports.PaymentVerification, error) {
	return &ports.PaymentVerification{Status: "success"}, nil
}

func (g *fakeGateway) TransferToSeller(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	n := g.transferCalls.Add(1)
	if g.failTransfers.Load() {
		return nil, fmt.Errorf("transfer declined by provider")
	}
	g.mu.Lock()
	g.transfers = append(g.transfers, req)
	g.mu.Unlock()
	if g.onTransfer != nil {
		g.onTransfer(req)
	}
	return &ports.TransferResult{
		Reference:        req.Reference,
		GatewayReference: fmt.Sprintf("TRF_%d", n),
		Status:           "success",
	}, nil
}

func (g *fakeGateway) VerifyWebhookSignature(signatureHeader string, rawBody []byte) bool {
	if signatureHeader == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signatureHeader))
}

func (g *fakeGateway) recordedTransfers() []ports.TransferRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ports.TransferRequest, len(g.transfers))
	copy(out, g.transfers)
	return out
}

// signBody computes the webhook signature the fake gateway expects.
func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(gatewaySecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
