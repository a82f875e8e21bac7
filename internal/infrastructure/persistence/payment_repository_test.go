package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hostelops/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPaymentRepository creates a GormPaymentRepository with a mocked SQL connection
func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds payment with its allocations", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		tenantID := uuid.New()
		dueID := uuid.New()
		now := time.Now()

		paymentRows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "tenant_id", "amount", "method", "paid_at", "period_from", "period_to", "description"}).
			AddRow(paymentID, now, now, 1, tenantID, decimal.NewFromInt(120), "UPI", now, nil, nil, "")

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(paymentRows)

		allocationRows := sqlmock.NewRows([]string{"id", "payment_id", "due_type", "due_id", "amount", "created_at", "updated_at"}).
			AddRow(uuid.New(), paymentID, "RENT", dueID, decimal.NewFromInt(100), now, now)

		mock.ExpectQuery(`SELECT \* FROM "allocations" WHERE "allocations"\."payment_id" = \$1`).
			WithArgs(paymentID).
			WillReturnRows(allocationRows)

		payment, err := repo.FindByID(context.Background(), paymentID)

		assert.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, tenantID, payment.TenantID)
		require.Len(t, payment.Allocations, 1)
		assert.Equal(t, billing.DueTypeRent, payment.Allocations[0].Due.Type)
		assert.Equal(t, dueID, payment.Allocations[0].Due.ID)
		assert.True(t, payment.UnappliedAmount().Equal(decimal.NewFromInt(20)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		payment, err := repo.FindByID(context.Background(), paymentID)

		assert.NoError(t, err)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_SumAllocationsForDue(t *testing.T) {
	t.Run("sums allocations across payments", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		dueID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "allocations" WHERE due_type = \$1 AND due_id = \$2`).
			WithArgs(billing.DueTypeRent, dueID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.NewFromInt(450)))

		total, err := repo.SumAllocationsForDue(context.Background(), billing.RentDueRef(dueID))

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(450)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when the due has no allocations", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		dueID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) as total FROM "allocations" WHERE due_type = \$1 AND due_id = \$2`).
			WithArgs(billing.DueTypeBill, dueID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.Zero))

		total, err := repo.SumAllocationsForDue(context.Background(), billing.BillDueRef(dueID))

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements PaymentRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		var _ billing.PaymentRepository = repo
	})
}
