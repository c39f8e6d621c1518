package integration

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentWebhookDeliveries fires the same charge.success delivery many
// times in parallel. The guarded pending->paid transition admits exactly one
// winner, so only one delivery reaches the payout path and the gateway sees
// exactly one transfer.
func TestConcurrentWebhookDeliveries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "conc-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "conc-buyer@example.com", "100")

	body := chargeSuccessBody("CHG_CONC_1", txn.ID, "105")
	signature := signBody(body)

	concurrency := 20
	var wg sync.WaitGroup
	var okCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/gateway", bytes.NewReader(body))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Paystack-Signature", signature)

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)
			if r.StatusCode == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}
	wg.Wait()

	// Duplicate deliveries are acknowledged, never errored: the provider must
	// not keep redelivering an event that was already absorbed.
	assert.EqualValues(t, concurrency, okCount.Load(), "all deliveries should be acknowledged")

	// Exactly one delivery won the status guard and drove the payout.
	assert.EqualValues(t, 1, app.gateway.transferCalls.Load(), "duplicate deliveries must not repeat the transfer")

	resp := app.request(t, http.MethodGet, "/api/v1/links/"+txn.UniqueLink, "", "", "")
	var paid transactionPayload
	decodeData(t, resp, &paid)
	assert.Equal(t, "paid", paid.Status)

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "conc-seller@example.com")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payout payoutPayload
	decodeData(t, resp, &payout)
	assert.Equal(t, "completed", payout.Status)

	// NOTE: with real PostgreSQL the losing deliveries roll their pending
	// credit back together with the failed status transition. The in-memory
	// transactor cannot undo writes, so losers may leave extra pending credit
	// behind; the invariant that survives both backends is that balances
	// never go negative.
	wallet, err := app.walletRepo.GetBySellerID(context.Background(), sellerID)
	require.NoError(t, err)
	require.NotNil(t, wallet)
	t.Logf("pending balance after %d concurrent deliveries: %s", concurrency, wallet.PendingBalance)
	assert.False(t, wallet.PendingBalance.IsNegative(), "pending balance must never go negative")
	assert.False(t, wallet.AvailableBalance.IsNegative(), "available balance must never go negative")
}

// TestConcurrentPayoutRetries sweeps a due payout from many goroutines at
// once. The processing claim is a compare-and-set, so exactly one sweep
// reaches the gateway.
func TestConcurrentPayoutRetries(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerID := uuid.New()
	registerSeller(t, app, sellerID, "sweep-seller@example.com", true)
	txn := createAndAccept(t, app, sellerID, buyerID, "sweep-buyer@example.com", "200")

	// Single delivery against a failing gateway leaves one due payout behind.
	app.gateway.failTransfers.Store(true)
	resp := app.deliverWebhook(t, chargeSuccessBody("CHG_SWEEP_1", txn.ID, "210"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	require.EqualValues(t, 1, app.gateway.transferCalls.Load())

	app.gateway.failTransfers.Store(false)

	concurrency := 10
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.scheduler.Sweep(context.Background())
		}()
	}
	wg.Wait()

	// One failed attempt plus exactly one successful retry.
	assert.EqualValues(t, 2, app.gateway.transferCalls.Load(), "overlapping sweeps must not double-transfer")
	require.Len(t, app.gateway.recordedTransfers(), 1)

	resp = app.request(t, http.MethodGet, "/api/v1/transactions/"+txn.ID+"/payout", "", sellerID.String(), "sweep-seller@example.com")
	var payout payoutPayload
	decodeData(t, resp, &payout)
	assert.Equal(t, "completed", payout.Status)
	assert.Equal(t, 0, payout.RetryCount)

	resp = app.request(t, http.MethodGet, "/api/v1/wallets/me", "", sellerID.String(), "sweep-seller@example.com")
	var wallet walletPayload
	decodeData(t, resp, &wallet)
	assert.Equal(t, "0", wallet.PendingBalance)
}

// TestConcurrentAccepts races many accepts for the same link. The one-shot
// buyer assignment admits a single winner; everyone else gets a conflict.
func TestConcurrentAccepts(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	sellerID := uuid.New()
	buyerEmail := "race-buyer@example.com"
	registerSeller(t, app, sellerID, "race-seller@example.com", false)

	body := `{"buyer_email":"race-buyer@example.com","item_name":"Signed Poster","price":"45"}`
	resp := app.request(t, http.MethodPost, "/api/v1/transactions", body, sellerID.String(), "race-seller@example.com")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var txn transactionPayload
	decodeData(t, resp, &txn)

	// The invited person races themselves, e.g. a double-submitted form from
	// two browser tabs, each session carrying a distinct user id.
	concurrency := 10
	var wg sync.WaitGroup
	var accepted atomic.Int64
	var conflicted atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/links/"+txn.UniqueLink+"/accept", nil)
			if err != nil {
				return
			}
			req.Header.Set("X-User-ID", uuid.New().String())
			req.Header.Set("X-User-Email", buyerEmail)

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)
			switch r.StatusCode {
			case http.StatusOK:
				accepted.Add(1)
			case http.StatusConflict:
				conflicted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, accepted.Load(), "exactly one accept should win")
	assert.EqualValues(t, int64(concurrency-1), conflicted.Load(), "losers should see the already-accepted conflict")
}
