package service

import (
	"context"
	"errors"
	"testing"

	"escrow-settlement/internal/core/domain"
	"escrow-settlement/internal/core/ports"
	"escrow-settlement/internal/core/ports/mocks"
	"escrow-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type txnServiceTestDeps struct {
	svc        *TransactionServiceImpl
	txRepo     *mocks.MockTransactionRepository
	stateMach  *mocks.MockTransactionStateMachine
	gateway    *mocks.MockGatewayClient
	transactor *mocks.MockDBTransactor
	sweeper    *mocks.MockPayoutSweeper
	notifier   *mocks.MockNotificationSink
	ctrl       *gomock.Controller
}

func setupTransactionService(t *testing.T) *txnServiceTestDeps {
	ctrl := gomock.NewController(t)
	d := &txnServiceTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		stateMach:  mocks.NewMockTransactionStateMachine(ctrl),
		gateway:    mocks.NewMockGatewayClient(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		sweeper:    mocks.NewMockPayoutSweeper(ctrl),
		notifier:   mocks.NewMockNotificationSink(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewTransactionService(
		d.txRepo, d.stateMach, d.gateway, d.transactor, d.sweeper, d.notifier,
		"NGN", zerolog.Nop(),
	)
	return d
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestTransactionService_Create(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	sellerID := uuid.New()

	d.txRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, txn *domain.Transaction) error {
			assert.Equal(t, sellerID, txn.SellerID)
			assert.Equal(t, "buyer@example.com", txn.BuyerEmail)
			assert.True(t, txn.Commission.Equal(decimal.RequireFromString("5")))
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			assert.Len(t, txn.UniqueLink, 32)
			assert.NotContains(t, txn.UniqueLink, "-")
			return nil
		})

	txn, err := d.svc.Create(ctx, ports.CreateTransactionRequest{
		SellerID:   sellerID,
		BuyerEmail: "Buyer@Example.COM",
		ItemName:   "camera lens",
		Price:      decimal.RequireFromString("100"),
	})
	require.NoError(t, err)
	assert.True(t, txn.TotalCharge().Equal(decimal.RequireFromString("105")))
}

func TestTransactionService_Create_Validation(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	base := ports.CreateTransactionRequest{
		SellerID:   uuid.New(),
		BuyerEmail: "buyer@example.com",
		ItemName:   "camera lens",
		Price:      decimal.RequireFromString("100"),
	}

	zeroPrice := base
	zeroPrice.Price = decimal.Zero
	_, err := d.svc.Create(ctx, zeroPrice)
	assertAppCode(t, err, "TXN_002")

	negPrice := base
	negPrice.Price = decimal.RequireFromString("-5")
	_, err = d.svc.Create(ctx, negPrice)
	assertAppCode(t, err, "TXN_002")

	noEmail := base
	noEmail.BuyerEmail = ""
	_, err = d.svc.Create(ctx, noEmail)
	assertAppCode(t, err, "TXN_002")

	noItem := base
	noItem.ItemName = ""
	_, err = d.svc.Create(ctx, noItem)
	assertAppCode(t, err, "TXN_002")
}

func TestTransactionService_GetByLink_NotFound(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.txRepo.EXPECT().GetByUniqueLink(ctx, "deadlink").Return(nil, nil)

	_, err := d.svc.GetByLink(ctx, "deadlink")
	assertAppCode(t, err, "TXN_404")
}

func TestTransactionService_Accept(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerEmail = "buyer@example.com"
	txn.UniqueLink = "abc123"

	d.txRepo.EXPECT().GetByUniqueLink(ctx, "abc123").Return(txn, nil)
	d.txRepo.EXPECT().AssignBuyer(ctx, txn.ID, buyerID).Return(true, nil)

	got, err := d.svc.Accept(ctx, "abc123", buyerID, "BUYER@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.BuyerID)
	assert.Equal(t, buyerID, *got.BuyerID)
}

func TestTransactionService_Accept_EmailMismatch(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerEmail = "invited@example.com"
	txn.UniqueLink = "abc123"

	d.txRepo.EXPECT().GetByUniqueLink(ctx, "abc123").Return(txn, nil)

	_, err := d.svc.Accept(ctx, "abc123", uuid.New(), "someoneelse@example.com")
	assertAppCode(t, err, "AUTH_002")
}

func TestTransactionService_Accept_AlreadyAccepted(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	existing := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerEmail = "buyer@example.com"
	txn.UniqueLink = "abc123"
	txn.BuyerID = &existing

	d.txRepo.EXPECT().GetByUniqueLink(ctx, "abc123").Return(txn, nil)

	_, err := d.svc.Accept(ctx, "abc123", uuid.New(), "buyer@example.com")
	assertAppCode(t, err, "TXN_003")
}

func TestTransactionService_Accept_LostAssignRace(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerEmail = "buyer@example.com"
	txn.UniqueLink = "abc123"

	d.txRepo.EXPECT().GetByUniqueLink(ctx, "abc123").Return(txn, nil)
	d.txRepo.EXPECT().AssignBuyer(ctx, txn.ID, buyerID).Return(false, nil)

	_, err := d.svc.Accept(ctx, "abc123", buyerID, "buyer@example.com")
	assertAppCode(t, err, "TXN_003")
}

func TestTransactionService_Accept_NonPending(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := pendingTransaction(uuid.New(), "100")
	txn.Status = domain.TransactionStatusCancelled
	txn.UniqueLink = "abc123"

	d.txRepo.EXPECT().GetByUniqueLink(ctx, "abc123").Return(txn, nil)

	_, err := d.svc.Accept(ctx, "abc123", uuid.New(), "buyer@example.com")
	assertAppCode(t, err, "AUTH_001")
}

func TestTransactionService_Checkout(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.Commission = domain.CommissionFor(txn.Price)
	txn.BuyerEmail = "buyer@example.com"
	txn.BuyerID = &buyerID

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.gateway.EXPECT().InitializePayment(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.InitializePaymentRequest) (*ports.CheckoutSession, error) {
			// Buyer is charged price plus commission.
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("105")))
			assert.Equal(t, "NGN", req.Currency)
			assert.Equal(t, txn.ID, req.TransactionID)
			assert.Equal(t, "buyer@example.com", req.CustomerEmail)
			return &ports.CheckoutSession{CheckoutURL: "https://checkout.paystack.com/x", Reference: req.Reference}, nil
		})

	session, err := d.svc.Checkout(ctx, txn.ID, buyerID)
	require.NoError(t, err)
	assert.NotEmpty(t, session.CheckoutURL)
}

func TestTransactionService_Checkout_WrongBuyer(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerID = &buyerID

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	_, err := d.svc.Checkout(ctx, txn.ID, uuid.New())
	assertAppCode(t, err, "AUTH_001")
}

func TestTransactionService_Checkout_GatewayError(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.BuyerID = &buyerID

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.gateway.EXPECT().InitializePayment(ctx, gomock.Any()).Return(nil, errors.New("paystack 503"))

	_, err := d.svc.Checkout(ctx, txn.ID, buyerID)
	assertAppCode(t, err, "GW_001")
}

func TestTransactionService_Cancel_SellerBeforeAccept(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	sellerID := uuid.New()
	txn := pendingTransaction(sellerID, "100")
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.stateMach.EXPECT().
		Transition(ctx, tx, txn, domain.TransactionStatusCancelled, nil).
		Return(true, nil)

	assert.NoError(t, d.svc.Cancel(ctx, txn.ID, sellerID))
}

func TestTransactionService_Cancel_BuyerCannotCancelBeforeAccept(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := pendingTransaction(uuid.New(), "100")

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	err := d.svc.Cancel(ctx, txn.ID, uuid.New())
	assertAppCode(t, err, "AUTH_001")
}

func TestTransactionService_Cancel_SellerCannotCancelAfterAccept(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	sellerID := uuid.New()
	buyerID := uuid.New()
	txn := pendingTransaction(sellerID, "100")
	txn.BuyerID = &buyerID

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	// Once the buyer is in, the seller cannot walk away unilaterally.
	err := d.svc.Cancel(ctx, txn.ID, sellerID)
	assertAppCode(t, err, "AUTH_001")
}

func TestTransactionService_MarkAssetTransferred(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	sellerID := uuid.New()
	txn := pendingTransaction(sellerID, "100")
	txn.Status = domain.TransactionStatusPaid
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.stateMach.EXPECT().
		Transition(ctx, tx, txn, domain.TransactionStatusAssetTransferred, nil).
		Return(true, nil)

	assert.NoError(t, d.svc.MarkAssetTransferred(ctx, txn.ID, sellerID))
}

func TestTransactionService_MarkAssetTransferred_NotSeller(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := pendingTransaction(uuid.New(), "100")
	txn.Status = domain.TransactionStatusPaid

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)

	err := d.svc.MarkAssetTransferred(ctx, txn.ID, uuid.New())
	assertAppCode(t, err, "AUTH_001")
}

func TestTransactionService_ConfirmReceipt(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	sellerID := uuid.New()
	buyerID := uuid.New()
	txn := pendingTransaction(sellerID, "100")
	txn.Status = domain.TransactionStatusAssetTransferred
	txn.BuyerID = &buyerID
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.stateMach.EXPECT().
		Transition(ctx, tx, txn, domain.TransactionStatusCompleted, nil).
		Return(true, nil)
	d.notifier.EXPECT().Publish(ctx, gomock.Any()).Return(nil)
	d.sweeper.EXPECT().ProcessSellerQueue(ctx, sellerID)

	assert.NoError(t, d.svc.ConfirmReceipt(ctx, txn.ID, buyerID))
}

func TestTransactionService_ConfirmReceipt_GuardMiss(t *testing.T) {
	d := setupTransactionService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	buyerID := uuid.New()
	txn := pendingTransaction(uuid.New(), "100")
	txn.Status = domain.TransactionStatusAssetTransferred
	txn.BuyerID = &buyerID
	tx := &mockTx{}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.stateMach.EXPECT().
		Transition(ctx, tx, txn, domain.TransactionStatusCompleted, nil).
		Return(false, nil)
	// No notice, no queue drain when the transition loses the race.

	err := d.svc.ConfirmReceipt(ctx, txn.ID, buyerID)
	assertAppCode(t, err, "TXN_001")
}
