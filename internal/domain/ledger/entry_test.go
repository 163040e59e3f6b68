package ledger

import (
	"testing"
	"time"

	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry(t *testing.T, kind EntryKind) *Entry {
	t.Helper()
	entry, err := NewEntry(
		uuid.New(),
		kind,
		"venda balcão",
		valueobject.NewMoneyBRLFromFloat(100),
		decimal.NewFromFloat(2.5),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		uuid.New(),
	)
	require.NoError(t, err)
	return entry
}

func TestNewEntry(t *testing.T) {
	t.Run("creates valid income entry", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		assert.Equal(t, EntryKindIncome, entry.Kind)
		assert.True(t, entry.Active)
		assert.Equal(t, 1, entry.GetVersion())
		assert.False(t, entry.RecordedAt.IsZero())
		assert.Len(t, entry.GetDomainEvents(), 1)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKind("transfer"), "x",
			valueobject.NewMoneyBRLFromFloat(10), decimal.Zero, time.Now(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKindExpense, "",
			valueobject.NewMoneyBRLFromFloat(10), decimal.Zero, time.Now(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKindIncome, "x",
			valueobject.ZeroBRL(), decimal.Zero, time.Now(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKindIncome, "x",
			valueobject.NewMoneyBRLFromFloat(-5), decimal.Zero, time.Now(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects negative fee rate", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKindIncome, "x",
			valueobject.NewMoneyBRLFromFloat(10), decimal.NewFromFloat(-1), time.Now(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects nil payment method", func(t *testing.T) {
		_, err := NewEntry(uuid.New(), EntryKindIncome, "x",
			valueobject.NewMoneyBRLFromFloat(10), decimal.Zero, time.Now(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestEntrySetCounterpart(t *testing.T) {
	t.Run("income entry gets a source", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		counterpartID := uuid.New()
		require.NoError(t, entry.SetCounterpart(counterpartID))
		require.NotNil(t, entry.SourceID)
		assert.Equal(t, counterpartID, *entry.SourceID)
		assert.Nil(t, entry.DestinationID)
		assert.NoError(t, entry.ValidateCounterpart())
	})

	t.Run("expense entry gets a destination", func(t *testing.T) {
		entry := validEntry(t, EntryKindExpense)
		counterpartID := uuid.New()
		require.NoError(t, entry.SetCounterpart(counterpartID))
		require.NotNil(t, entry.DestinationID)
		assert.Equal(t, counterpartID, *entry.DestinationID)
		assert.Nil(t, entry.SourceID)
		assert.NoError(t, entry.ValidateCounterpart())
	})

	t.Run("rejects nil counterpart", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		assert.Error(t, entry.SetCounterpart(uuid.Nil))
	})
}

func TestEntryValidateCounterpart(t *testing.T) {
	t.Run("income without source is invalid", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		assert.Error(t, entry.ValidateCounterpart())
	})

	t.Run("income with destination is invalid", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		id := uuid.New()
		entry.SourceID = &id
		entry.DestinationID = &id
		assert.Error(t, entry.ValidateCounterpart())
	})
}

func TestEntryUpdate(t *testing.T) {
	t.Run("updates fields and re-snapshots fee rate", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		newMethod := uuid.New()
		newDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

		err := entry.Update("venda cartão", valueobject.NewMoneyBRLFromFloat(250),
			newDate, newMethod, decimal.NewFromFloat(3.99))
		require.NoError(t, err)

		assert.Equal(t, "venda cartão", entry.Description)
		assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(250)))
		assert.Equal(t, newDate, entry.EventDate)
		assert.Equal(t, newMethod, entry.PaymentMethodID)
		assert.True(t, entry.FeeRate.Equal(decimal.NewFromFloat(3.99)))
	})

	t.Run("rejects update of inactive entry", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		require.NoError(t, entry.Deactivate())
		err := entry.Update("x", valueobject.NewMoneyBRLFromFloat(10),
			time.Now(), uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome)
		err := entry.Update("x", valueobject.ZeroBRL(), time.Now(), uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestEntryDeactivate(t *testing.T) {
	entry := validEntry(t, EntryKindExpense)
	require.NoError(t, entry.Deactivate())
	assert.False(t, entry.Active)

	assert.Error(t, entry.Deactivate())
}

func TestEntryFeeMath(t *testing.T) {
	t.Run("income loses the fee", func(t *testing.T) {
		entry := validEntry(t, EntryKindIncome) // 100 at 2.5%
		assert.Equal(t, "2.50", entry.FeeAmount().StringFixed(2))
		assert.Equal(t, "97.50", entry.NetAmount().StringFixed(2))
		assert.Equal(t, "97.50", entry.SignedNet().StringFixed(2))
		assert.Equal(t, "100.00", entry.SignedGross().StringFixed(2))
	})

	t.Run("expense costs the fee on top", func(t *testing.T) {
		entry := validEntry(t, EntryKindExpense) // 100 at 2.5%
		assert.Equal(t, "2.50", entry.FeeAmount().StringFixed(2))
		assert.Equal(t, "102.50", entry.NetAmount().StringFixed(2))
		assert.Equal(t, "-102.50", entry.SignedNet().StringFixed(2))
		assert.Equal(t, "-100.00", entry.SignedGross().StringFixed(2))
	})

	t.Run("zero fee rate passes gross through", func(t *testing.T) {
		entry, err := NewEntry(uuid.New(), EntryKindIncome, "pix",
			valueobject.NewMoneyBRLFromFloat(59.9), decimal.Zero, time.Now(), uuid.New())
		require.NoError(t, err)
		assert.True(t, entry.NetAmount().Equals(entry.GetAmountMoney()))
	})

	t.Run("fee keeps full precision until rounding", func(t *testing.T) {
		entry, err := NewEntry(uuid.New(), EntryKindIncome, "venda",
			valueobject.NewMoneyBRLFromFloat(10.01), decimal.NewFromFloat(3.33), time.Now(), uuid.New())
		require.NoError(t, err)
		// 10.01 * 3.33 / 100 = 0.333333
		assert.Equal(t, "0.333333", entry.FeeAmount().Amount().String())
		assert.Equal(t, "0.33", entry.FeeAmount().Round(2).StringFixed(2))
	})
}
