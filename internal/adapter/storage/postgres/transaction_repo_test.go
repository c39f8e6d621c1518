package postgres

import (
	"context"
	"testing"
	"time"

	"escrow-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(sellerID uuid.UUID) *domain.Transaction {
	price := decimal.RequireFromString("100")
	return &domain.Transaction{
		ID:         uuid.New(),
		SellerID:   sellerID,
		BuyerEmail: "buyer@example.com",
		ItemName:   "camera lens",
		Price:      price,
		Commission: domain.CommissionFor(price),
		Status:     domain.TransactionStatusPending,
		UniqueLink: "f00dcafef00dcafef00dcafef00dcafe",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func transactionTestColumns() []string {
	return []string{"id", "seller_id", "buyer_id", "buyer_email", "item_name", "price", "commission",
		"status", "payment_reference", "unique_link", "created_at", "updated_at"}
}

func transactionRow(tx *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(transactionTestColumns()).AddRow(
		tx.ID, tx.SellerID, tx.BuyerID, tx.BuyerEmail, tx.ItemName, tx.Price, tx.Commission,
		tx.Status, tx.PaymentReference, tx.UniqueLink, tx.CreatedAt, tx.UpdatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(txn.ID, txn.SellerID, txn.BuyerID, txn.BuyerEmail, txn.ItemName, txn.Price, txn.Commission,
			txn.Status, txn.PaymentReference, txn.UniqueLink, txn.CreatedAt, txn.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(txn.ID).
		WillReturnRows(transactionRow(txn))

	result, err := repo.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.True(t, result.Price.Equal(txn.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByUniqueLink(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE unique_link").
		WithArgs(txn.UniqueLink).
		WillReturnRows(transactionRow(txn))

	result, err := repo.GetByUniqueLink(context.Background(), txn.UniqueLink)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByUniqueLink_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE unique_link").
		WithArgs("deadlink").
		WillReturnRows(pgxmock.NewRows(transactionTestColumns()))

	result, err := repo.GetByUniqueLink(context.Background(), "deadlink")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus_Applied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txnID := uuid.New()
	ref := "ESCROW-abc-1"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WithArgs(domain.TransactionStatusPaid, &ref, txnID, domain.TransactionStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	applied, err := repo.UpdateStatus(context.Background(), tx, txnID,
		domain.TransactionStatusPending, domain.TransactionStatusPaid, &ref)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus_GuardMiss(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txnID := uuid.New()

	// Status already moved on by a concurrent writer: zero rows, no error.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WithArgs(domain.TransactionStatusCancelled, (*string)(nil), txnID, domain.TransactionStatusPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	applied, err := repo.UpdateStatus(context.Background(), tx, txnID,
		domain.TransactionStatusPending, domain.TransactionStatusCancelled, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_AssignBuyer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txnID := uuid.New()
	buyerID := uuid.New()

	mock.ExpectExec("UPDATE transactions SET buyer_id").
		WithArgs(buyerID, txnID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assigned, err := repo.AssignBuyer(context.Background(), txnID, buyerID)
	require.NoError(t, err)
	assert.True(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_AssignBuyer_AlreadyAssigned(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txnID := uuid.New()
	buyerID := uuid.New()

	mock.ExpectExec("UPDATE transactions SET buyer_id").
		WithArgs(buyerID, txnID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assigned, err := repo.AssignBuyer(context.Background(), txnID, buyerID)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
