package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"escrow-settlement/internal/adapter/http/handler"
	redisStorage "escrow-settlement/internal/adapter/storage/redis"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the real services against in-memory repos, a miniredis event
// cache and the fake gateway, and serves the full router over HTTP.
type testApp struct {
	server    *httptest.Server
	redis     *miniredis.Miniredis
	gateway   *fakeGateway
	scheduler *service.PayoutScheduler

	txRepo     *inMemoryTransactionRepo
	payoutRepo *inMemoryPayoutRepo
	walletRepo *inMemoryWalletRepo
	sellerRepo *inMemorySellerRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	log := zerolog.Nop()
	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	txRepo := newInMemoryTransactionRepo()
	payoutRepo := newInMemoryPayoutRepo()
	walletRepo := newInMemoryWalletRepo()
	sellerRepo := newInMemorySellerRepo()
	transactor := newInMemoryTransactor()
	gw := newFakeGateway()

	ledger := service.NewLedger(walletRepo, transactor, log)
	stateMach := service.NewStateMachine(txRepo, log)
	payouts := service.NewPayoutService(payoutRepo, sellerRepo, ledger, gw, transactor, nil, service.PayoutConfig{
		Currency:     "NGN",
		RetryBackoff: time.Nanosecond, // failed payouts become due immediately
		MaxBackoff:   time.Minute,
	}, log)
	scheduler := service.NewPayoutScheduler(payoutRepo, walletRepo, payouts, service.SchedulerConfig{
		SweepLimit:    100,
		TransferRate:  10000,
		TransferBurst: 100,
	}, log)
	txnSvc := service.NewTransactionService(txRepo, stateMach, gw, transactor, scheduler, nil, "NGN", log)
	eventCache := redisStorage.NewEventCache(redisClient)
	webhookSvc := service.NewWebhookService(gw, txRepo, payoutRepo, ledger, stateMach, payouts, eventCache, transactor, nil, log)

	router := handler.SetupRouter(handler.RouterDeps{
		TxnSvc:         txnSvc,
		WebhookSvc:     webhookSvc,
		SellerRepo:     sellerRepo,
		WalletRepo:     walletRepo,
		PayoutRepo:     payoutRepo,
		TxnRepo:        txRepo,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(redisClient)},
		Logger:         log,
	})

	return &testApp{
		server:     httptest.NewServer(router),
		redis:      mr,
		gateway:    gw,
		scheduler:  scheduler,
		txRepo:     txRepo,
		payoutRepo: payoutRepo,
		walletRepo: walletRepo,
		sellerRepo: sellerRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
}

// request performs an HTTP call against the test server. A non-empty userID
// is sent in the identity headers the fronting proxy would set.
func (a *testApp) request(t *testing.T, method, path, body string, userID, userEmail string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if userEmail != "" {
		req.Header.Set("X-User-Email", userEmail)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// deliverWebhook posts a signed gateway event to the webhook endpoint.
func (a *testApp) deliverWebhook(t *testing.T, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/webhooks/gateway", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Paystack-Signature", signBody(body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeData decodes the data field of the success envelope into out.
func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// decodeErrorCode drains the error envelope and returns its error_code.
func decodeErrorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var envelope struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.ErrorCode
}

type transactionPayload struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Price       string `json:"price"`
	Commission  string `json:"commission"`
	TotalCharge string `json:"total_charge"`
	UniqueLink  string `json:"unique_link"`
	BuyerID     string `json:"buyer_id"`
}

type walletPayload struct {
	PendingBalance   string `json:"pending_balance"`
	AvailableBalance string `json:"available_balance"`
}

type payoutPayload struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	Amount            string `json:"amount"`
	TransferReference string `json:"transfer_reference"`
	FailureReason     string `json:"failure_reason"`
	RetryCount        int    `json:"retry_count"`
}

// registerSeller creates a seller profile over HTTP and optionally configures
// the payout destination.
func registerSeller(t *testing.T, app *testApp, sellerID uuid.UUID, email string, withBank bool) {
	t.Helper()
	body := fmt.Sprintf(`{"email":"%s","display_name":"Integration Seller"}`, email)
	resp := app.request(t, http.MethodPost, "/api/v1/sellers/me", body, sellerID.String(), email)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	if withBank {
		bank := `{"bank_code":"058","account_number":"0123456789","account_name":"Ada Obi"}`
		resp = app.request(t, http.MethodPut, "/api/v1/sellers/me/bank-details", bank, sellerID.String(), email)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}

// createAndAccept drives a deal to the accepted state: the seller creates it,
// the buyer opens the shared link and accepts.
func createAndAccept(t *testing.T, app *testApp, sellerID, buyerID uuid.UUID, buyerEmail, price string) transactionPayload {
	t.Helper()
	body := fmt.Sprintf(`{"buyer_email":"%s","item_name":"Vintage Camera","price":"%s"}`, buyerEmail, price)
	resp := app.request(t, http.MethodPost, "/api/v1/transactions", body, sellerID.String(), "seller@example.com")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var txn transactionPayload
	decodeData(t, resp, &txn)
	require.NotEmpty(t, txn.UniqueLink)

	resp = app.request(t, http.MethodPost, "/api/v1/links/"+txn.UniqueLink+"/accept", "", buyerID.String(), buyerEmail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &txn)
	require.Equal(t, buyerID.String(), txn.BuyerID)
	return txn
}

// chargeSuccessBody builds the gateway's charge.success delivery payload.
func chargeSuccessBody(reference, transactionID, amount string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"charge.success","data":{"reference":"%s","amount":%s,"metadata":{"transaction_id":"%s"}}}`,
		reference, amount, transactionID))
}

// TestEscrowLifecycle walks one deal end to end: seller onboarding, deal
// creation, buyer acceptance, checkout, the buyer payment webhook (which
// settles the pending credit and immediately pays the seller out), then asset
// transfer and receipt confirmation.
func TestEscrowLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	buyerEmail := "buyer@example.com"
	registerSeller(t, app, sellerID, "seller@example.com", true)

	txn := createAndAccept(t, app, sellerID, buyerID, buyerEmail, "100")
	assert.Equal(t, "100", txn.Price)
	assert.Equal(t, "5", txn.Commission)
	assert.Equal(t, "105", txn.TotalCharge)
	assert.Equal(t, "pending", txn.Status)

	// Anyone holding the link can view the deal without identity headers.
	resp := app.request(t, http.MethodGet, "/api/v1/links/"+txn.UniqueLink, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Buyer starts checkout for price plus commission.
	resp = app.request(t, http.MethodPost, "/api/v1/transactions/"+txn.ID+"/checkout", "", buyerID.String(), buyerEmail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var checkout struct {
		CheckoutURL string `json:"checkout_url"`
		Reference   string `json:"reference"`
	}
	decodeData(t, resp, &checkout)
	assert.Contains(t, checkout.CheckoutURL, checkout.Reference)

	// The gateway confirms the charge. The webhook credits the pending
	// balance, advances the deal to paid and pays the seller out right away.
	resp = app.deliverWebhook(t, chargeSuccessBody("CHG_LIFECYCLE_1", txn.ID, "105"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/v1/links/"+txn.UniqueLink, "", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var paid transactionPayload
	decodeData(t, resp, &paid)
	assert.Equal(t, "paid", paid.Status)

	// Payout completed synchronously, so the pending credit was settled and
	// paid out in the same motion.
	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "seller@example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payout payoutPayload
	decodeData(t, resp, &payout)
	assert.Equal(t, "completed", payout.Status)
	assert.Equal(t, "100", payout.Amount)
	assert.NotEmpty(t, payout.TransferReference)

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "seller@example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)
	assert.Equal(t, "0", wallet.AvailableBalance)

	transfers := app.gateway.recordedTransfers()
	require.Len(t, transfers, 1)
	assert.Equal(t, "100", transfers[0].Amount.String())
	assert.Equal(t, "058", transfers[0].Destination.BankCode)

	// Seller ships, buyer confirms, deal completes.
	resp = app.request(t, http.MethodPost, "/api/v1/transactions/"+txn.ID+"/asset-transferred", "", sellerID.String(), "seller@example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodPost, "/api/v1/transactions/"+txn.ID+"/confirm-receipt", "", buyerID.String(), buyerEmail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/v1/links/"+txn.UniqueLink, "", "", "")
	var done transactionPayload
	decodeData(t, resp, &done)
	assert.Equal(t, "completed", done.Status)
}

// TestWebhook_DuplicateDeliveries verifies the layered dedup: the Redis event
// cache absorbs the first redelivery, and even with the cache wiped the
// non-pending status guard keeps the credit and the transfer from repeating.
func TestWebhook_DuplicateDeliveries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "dup-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "dup-buyer@example.com", "250")

	body := chargeSuccessBody("CHG_DUP_1", txn.ID, "262.5")

	resp := app.deliverWebhook(t, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.EqualValues(t, 1, app.gateway.transferCalls.Load())

	// Redelivery hits the event cache.
	resp = app.deliverWebhook(t, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.EqualValues(t, 1, app.gateway.transferCalls.Load())

	// Wipe the cache: the status guard is authoritative on its own.
	app.redis.FlushAll()
	resp = app.deliverWebhook(t, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.EqualValues(t, 1, app.gateway.transferCalls.Load())

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "dup-seller@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)
}

// TestWebhook_InvalidSignature verifies a tampered delivery is rejected with
// no state change.
func TestWebhook_InvalidSignature(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body := chargeSuccessBody("CHG_FORGED", uuid.New().String(), "100")
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/gateway", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("X-Paystack-Signature", "deadbeef")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SEC_001", decodeErrorCode(t, resp))
	assert.EqualValues(t, 0, app.gateway.transferCalls.Load())
}

// TestPayout_SkippedWithoutBankDetails verifies a buyer payment still settles
// into the pending balance when the seller has no transfer destination; no
// payout row is created until one exists.
func TestPayout_SkippedWithoutBankDetails(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "nobank@example.com", false)
	txn := createAndAccept(t, app, sellerID, buyerID, "nobank-buyer@example.com", "80")

	resp := app.deliverWebhook(t, chargeSuccessBody("CHG_NOBANK_1", txn.ID, "84"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.EqualValues(t, 0, app.gateway.transferCalls.Load())

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "nobank@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "80", wallet.PendingBalance)

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "nobank@example.com")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TXN_404", decodeErrorCode(t, resp))
}

// TestPayout_FailedTransferRetriedBySweep verifies a declined transfer leaves
// the funds in pending, records the failure for the sweep, and that the next
// sweep drives the payout to completion once the gateway recovers.
func TestPayout_FailedTransferRetriedBySweep(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "retry-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "retry-buyer@example.com", "300")

	app.gateway.failTransfers.Store(true)
	resp := app.deliverWebhook(t, chargeSuccessBody("CHG_RETRY_1", txn.ID, "315"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "retry-seller@example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payout payoutPayload
	decodeData(t, resp, &payout)
	assert.Equal(t, "failed", payout.Status)
	assert.Contains(t, payout.FailureReason, "declined")

	// Funds untouched while the transfer keeps failing.
	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "retry-seller@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	require.Equal(t, "300", wallet.PendingBalance)

	// Gateway recovers; the retry sweep finishes the job.
	app.gateway.failTransfers.Store(false)
	time.Sleep(5 * time.Millisecond) // let the nanosecond backoff elapse
	app.scheduler.Sweep(context.Background())

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "retry-seller@example.com")
	payout = payoutPayload{} // fields omitted from the response must not survive from the earlier decode
	decodeData(t, resp, &payout)
	assert.Equal(t, "completed", payout.Status)
	assert.Equal(t, 0, payout.RetryCount, "attempt counter resets once the transfer lands")
	assert.Empty(t, payout.FailureReason)

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "retry-seller@example.com")
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)
}

// TestIdentityRequired verifies protected routes reject requests missing the
// proxy identity headers.
func TestIdentityRequired(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	body := `{"buyer_email":"b@example.com","item_name":"Thing","price":"10"}`
	resp := app.request(t, http.MethodPost, "/api/v1/transactions", body, "", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "AUTH_001", decodeErrorCode(t, resp))
}

// TestAccept_WrongEmailRejected verifies only the invited email can claim the
// shared link.
func TestAccept_WrongEmailRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	registerSeller(t, app, sellerID, "strict-seller@example.com", false)

	body := `{"buyer_email":"invited@example.com","item_name":"Rare Vinyl","price":"55"}`
	resp := app.request(t, http.MethodPost, "/api/v1/transactions", body, sellerID.String(), "strict-seller@example.com")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var txn transactionPayload
	decodeData(t, resp, &txn)

	resp = app.request(t, http.MethodPost, "/api/v1/links/"+txn.UniqueLink+"/accept", "", uuid.New().String(), "intruder@example.com")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "AUTH_002", decodeErrorCode(t, resp))
}

// TestHealthEndpoint verifies the deep health check reports the Redis
// dependency.
func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Dependencies["redis"].Status)
}

// TestTransferReversal verifies a transfer.reversed delivery moves a completed
// payout back to failed and restores the settled funds as available balance.
func TestTransferReversal(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "reversal-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "reversal-buyer@example.com", "120")

	resp := app.deliverWebhook(t, chargeSuccessBody("CHG_REV_1", txn.ID, "126"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "reversal-seller@example.com")
	var payout payoutPayload
	decodeData(t, resp, &payout)
	require.Equal(t, "completed", payout.Status)
	require.NotEmpty(t, payout.TransferReference)

	reversal := []byte(fmt.Sprintf(
		`{"event":"transfer.reversed","data":{"reference":"%s","reason":"beneficiary account closed"}}`,
		payout.TransferReference))
	resp = app.deliverWebhook(t, reversal)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "reversal-seller@example.com")
	decodeData(t, resp, &payout)
	assert.Equal(t, "failed", payout.Status)
	assert.Equal(t, "beneficiary account closed", payout.FailureReason)

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "reversal-seller@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)
	assert.Equal(t, "120", wallet.AvailableBalance)
}

// TestTransferConfirmationDuringPayout delivers transfer.success while the
// synchronous payout path is still between the gateway call and its own
// finalize. The webhook completes and settles the payout first; the payout
// path must accept that outcome instead of demoting the completed payout and
// re-arming it for a second transfer.
func TestTransferConfirmationDuringPayout(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "race-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "race-buyer@example.com", "140")

	var hookErr error
	app.gateway.onTransfer = func(req ports.TransferRequest) {
		body := []byte(fmt.Sprintf(`{"event":"transfer.success","data":{"reference":"%s"}}`, req.Reference))
		httpReq, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/gateway", bytes.NewBuffer(body))
		if err != nil {
			hookErr = err
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-Paystack-Signature", signBody(body))
		hookResp, err := http.DefaultClient.Do(httpReq)
		if err != nil {
			hookErr = err
			return
		}
		hookResp.Body.Close()
	}

	resp := app.deliverWebhook(t, chargeSuccessBody("CHG_RACE_1", txn.ID, "147"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.NoError(t, hookErr)

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "race-seller@example.com")
	var payout payoutPayload
	decodeData(t, resp, &payout)
	assert.Equal(t, "completed", payout.Status)
	assert.Equal(t, 0, payout.RetryCount)
	assert.Empty(t, payout.FailureReason)

	// Settled exactly once.
	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "race-seller@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)

	// Nothing is left due, so a sweep must not touch the gateway again.
	before := app.gateway.transferCalls.Load()
	app.scheduler.Sweep(context.Background())
	assert.Equal(t, before, app.gateway.transferCalls.Load())
	assert.Len(t, app.gateway.recordedTransfers(), 1)
}
