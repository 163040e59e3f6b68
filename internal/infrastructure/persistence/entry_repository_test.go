package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockEntryRepository creates a GormEntryRepository with a mocked SQL connection
func newMockEntryRepository(t *testing.T) (*GormEntryRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormEntryRepository(gormDB), mock, mockDB
}

func entryColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version", "store_id", "created_by",
		"kind", "description", "amount", "fee_rate", "event_date", "recorded_at",
		"label_id", "payment_method_id", "source_id", "destination_id", "active",
	}
}

func TestNewGormEntryRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormEntryRepository_FindByID(t *testing.T) {
	t.Run("finds existing entry", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()
		storeID := uuid.New()
		methodID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(entryColumns()).
			AddRow(entryID, now, now, 1, storeID, nil,
				"receita", "Venda balcao", decimal.RequireFromString("150.00"), decimal.RequireFromString("2.5"), now, now,
				nil, methodID, uuid.New(), nil, true)

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnRows(rows)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, entryID, entry.ID)
		assert.Equal(t, ledger.EntryKindIncome, entry.Kind)
		assert.True(t, entry.Amount.Equal(decimal.RequireFromString("150.00")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent entry", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEntryRepository_FindByIDForStore(t *testing.T) {
	t.Run("finds entry within store", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()
		storeID := uuid.New()
		methodID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(entryColumns()).
			AddRow(entryID, now, now, 1, storeID, nil,
				"despesa", "Aluguel", decimal.RequireFromString("1200.00"), decimal.Zero, now, now,
				nil, methodID, nil, uuid.New(), true)

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE store_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, entryID, 1).
			WillReturnRows(rows)

		entry, err := repo.FindByIDForStore(context.Background(), storeID, entryID)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, storeID, entry.StoreID)
		assert.Equal(t, ledger.EntryKindExpense, entry.Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when entry belongs to another store", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()
		storeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE store_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByIDForStore(context.Background(), storeID, entryID)

		assert.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEntryRepository_FindForStatement(t *testing.T) {
	t.Run("queries active entries in window ordered by event date then recording time", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		methodID := uuid.New()
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		now := time.Now()

		rows := sqlmock.NewRows(entryColumns()).
			AddRow(uuid.New(), now, now, 1, storeID, nil,
				"receita", "Venda 1", decimal.RequireFromString("100.00"), decimal.Zero, from, now,
				nil, methodID, uuid.New(), nil, true).
			AddRow(uuid.New(), now, now, 1, storeID, nil,
				"despesa", "Compra", decimal.RequireFromString("40.00"), decimal.Zero, to, now,
				nil, methodID, nil, uuid.New(), true)

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE store_id = \$1 AND active = \$2 AND event_date >= \$3 AND event_date <= \$4 ORDER BY event_date ASC, recorded_at ASC`).
			WithArgs(storeID, true, from, to).
			WillReturnRows(rows)

		entries, err := repo.FindForStatement(context.Background(), storeID, from, to)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "Venda 1", entries[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for empty window", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT \* FROM "entries" WHERE store_id = \$1 AND active = \$2`).
			WithArgs(storeID, true, from, to).
			WillReturnRows(sqlmock.NewRows(entryColumns()))

		entries, err := repo.FindForStatement(context.Background(), storeID, from, to)

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEntryRepository_FindInstallmentSources(t *testing.T) {
	t.Run("joins payment methods for installment entries of both kinds", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		eventDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"kind", "amount", "fee_rate", "installments", "event_date"}).
			AddRow(string(ledger.EntryKindIncome), decimal.RequireFromString("900.00"), decimal.RequireFromString("2.5"), 3, eventDate).
			AddRow(string(ledger.EntryKindExpense), decimal.RequireFromString("400.00"), decimal.Zero, 2, eventDate)

		mock.ExpectQuery(`SELECT e\.kind, e\.amount, e\.fee_rate, pm\.installments, e\.event_date FROM "entries" e JOIN payment_methods pm ON pm\.id = e\.payment_method_id WHERE e\.store_id = \$1 AND e\.active = \$2 AND pm\.modality = \$3 ORDER BY e\.event_date ASC`).
			WithArgs(storeID, true, string(ledger.ModalityInstallment)).
			WillReturnRows(rows)

		sources, err := repo.FindInstallmentSources(context.Background(), storeID)

		assert.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, ledger.EntryKindIncome, sources[0].Kind)
		assert.Equal(t, 3, sources[0].Installments)
		assert.True(t, sources[0].Amount.Amount().Equal(decimal.RequireFromString("900.00")))
		assert.True(t, sources[0].FeeRate.Equal(decimal.RequireFromString("2.5")))
		assert.Equal(t, eventDate, sources[0].EventDate)
		assert.Equal(t, ledger.EntryKindExpense, sources[1].Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEntryRepository_CountForStore(t *testing.T) {
	t.Run("counts active entries by default", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "entries" WHERE store_id = \$1 AND active = \$2`).
			WithArgs(storeID, true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountForStore(context.Background(), storeID, ledger.EntryFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts by kind", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()
		kind := ledger.EntryKindExpense

		mock.ExpectQuery(`SELECT count\(\*\) FROM "entries" WHERE store_id = \$1 AND kind = \$2 AND active = \$3`).
			WithArgs(storeID, string(kind), true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountForStore(context.Background(), storeID, ledger.EntryFilter{Kind: &kind})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormEntryRepository_SaveWithLock(t *testing.T) {
	t.Run("creates new entry when no existing row", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entry := newStatementEntry(t, ledger.EntryKindIncome, "100.00")

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "entries" WHERE id = \$1`).
			WithArgs(entry.GetID(), 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects stale version", func(t *testing.T) {
		repo, mock, mockDB := newMockEntryRepository(t)
		defer mockDB.Close()

		entry := newStatementEntry(t, ledger.EntryKindIncome, "100.00")
		// Simulate another writer: stored version is ahead of ours
		storedVersion := entry.GetVersion() + 5

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "entries" WHERE id = \$1`).
			WithArgs(entry.GetID(), 1).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(storedVersion))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), entry)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "modified by another user")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// newStatementEntry builds a valid entry for persistence tests
func newStatementEntry(t *testing.T, kind ledger.EntryKind, amount string) *ledger.Entry {
	t.Helper()

	entry, err := ledger.NewEntry(
		uuid.New(),
		kind,
		"Lancamento de teste",
		valueobject.NewMoneyBRL(decimal.RequireFromString(amount)),
		decimal.Zero,
		time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		uuid.New(),
	)
	require.NoError(t, err)
	require.NoError(t, entry.SetCounterpart(uuid.New()))
	return entry
}
