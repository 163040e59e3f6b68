package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caixa/backend/internal/domain/ledger"
	"github.com/caixa/backend/internal/domain/shared"
	"github.com/caixa/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEntryRepository is a mock implementation of ledger.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindForStatement(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindInstallmentSources(ctx context.Context, storeID uuid.UUID) ([]ledger.InstallmentSource, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]ledger.InstallmentSource), args.Error(1)
}

func (m *MockEntryRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.EntryFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveWithLock(ctx context.Context, entry *ledger.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockPaymentMethodRepository is a mock implementation of ledger.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.PaymentMethod, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.PaymentMethodFilter) ([]ledger.PaymentMethod, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]ledger.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) FindDefaultForKind(ctx context.Context, storeID uuid.UUID, kind ledger.EntryKind) (*ledger.PaymentMethod, error) {
	args := m.Called(ctx, storeID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.PaymentMethodFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentMethodRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, storeID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentMethodRepository) Save(ctx context.Context, method *ledger.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) SaveWithLock(ctx context.Context, method *ledger.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) SetDefault(ctx context.Context, storeID, methodID uuid.UUID, kind ledger.EntryKind) error {
	args := m.Called(ctx, storeID, methodID, kind)
	return args.Error(0)
}

// MockLabelRepository is a mock implementation of ledger.LabelRepository
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Label, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Label), args.Error(1)
}

func (m *MockLabelRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Label, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Label), args.Error(1)
}

func (m *MockLabelRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.LabelFilter) ([]ledger.Label, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]ledger.Label), args.Error(1)
}

func (m *MockLabelRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.LabelFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLabelRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, storeID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockLabelRepository) Save(ctx context.Context, label *ledger.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) SetDefault(ctx context.Context, storeID, labelID uuid.UUID) error {
	args := m.Called(ctx, storeID, labelID)
	return args.Error(0)
}

// MockCounterpartRepository is a mock implementation of ledger.CounterpartRepository
type MockCounterpartRepository struct {
	mock.Mock
}

func (m *MockCounterpartRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Counterpart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Counterpart), args.Error(1)
}

func (m *MockCounterpartRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*ledger.Counterpart, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Counterpart), args.Error(1)
}

func (m *MockCounterpartRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ledger.CounterpartFilter) ([]ledger.Counterpart, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]ledger.Counterpart), args.Error(1)
}

func (m *MockCounterpartRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter ledger.CounterpartFilter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterpartRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, role ledger.CounterpartRole, name string) (bool, error) {
	args := m.Called(ctx, storeID, role, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCounterpartRepository) Save(ctx context.Context, counterpart *ledger.Counterpart) error {
	args := m.Called(ctx, counterpart)
	return args.Error(0)
}

func (m *MockCounterpartRepository) SetDefault(ctx context.Context, storeID, counterpartID uuid.UUID) error {
	args := m.Called(ctx, storeID, counterpartID)
	return args.Error(0)
}

// ===================== Test Helpers =====================

func moneyBRL(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyBRLFromString(amount)
	require.NoError(t, err)
	return m
}

func newEntryService() (*EntryService, *MockEntryRepository, *MockPaymentMethodRepository, *MockLabelRepository, *MockCounterpartRepository) {
	entryRepo := new(MockEntryRepository)
	methodRepo := new(MockPaymentMethodRepository)
	labelRepo := new(MockLabelRepository)
	counterpartRepo := new(MockCounterpartRepository)
	svc := NewEntryService(entryRepo, methodRepo, labelRepo, counterpartRepo)
	return svc, entryRepo, methodRepo, labelRepo, counterpartRepo
}

func creditCardMethod(storeID uuid.UUID) *ledger.PaymentMethod {
	method, _ := ledger.NewPaymentMethod(storeID, "Cartao de credito", ledger.ModalityInstallment, 3, decimal.RequireFromString("2.5"))
	return method
}

func cashMethod(storeID uuid.UUID) *ledger.PaymentMethod {
	method, _ := ledger.NewPaymentMethod(storeID, "Dinheiro", ledger.ModalityUpfront, 1, decimal.Zero)
	return method
}

func sourceCounterpart(storeID uuid.UUID) *ledger.Counterpart {
	counterpart, _ := ledger.NewCounterpart(storeID, "Cliente balcao", ledger.CounterpartRoleSource)
	return counterpart
}

func destinationCounterpart(storeID uuid.UUID) *ledger.Counterpart {
	counterpart, _ := ledger.NewCounterpart(storeID, "Fornecedor", ledger.CounterpartRoleDestination)
	return counterpart
}

// ===================== Entry Tests =====================

func TestEntryService_CreateEntry_SnapshotsFeeRate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, methodRepo, _, counterpartRepo := newEntryService()

	method := creditCardMethod(storeID)
	counterpart := sourceCounterpart(storeID)

	methodRepo.On("FindByIDForStore", ctx, storeID, method.ID).Return(method, nil)
	counterpartRepo.On("FindByIDForStore", ctx, storeID, counterpart.ID).Return(counterpart, nil)
	entryRepo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.CreateEntry(ctx, storeID, CreateEntryRequest{
		Kind:            "receita",
		Description:     "Venda no cartao",
		Amount:          decimal.RequireFromString("100.00"),
		EventDate:       time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		PaymentMethodID: &method.ID,
		CounterpartID:   counterpart.ID,
	})

	require.NoError(t, err)
	assert.True(t, resp.FeeRate.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "2.5", resp.FeeAmount.String())
	assert.Equal(t, "97.5", resp.NetAmount.String())
	assert.Equal(t, &counterpart.ID, resp.SourceID)
	assert.Nil(t, resp.DestinationID)

	entryRepo.AssertExpectations(t)
}

func TestEntryService_CreateEntry_UsesDefaultMethodWhenOmitted(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, methodRepo, _, counterpartRepo := newEntryService()

	method := cashMethod(storeID)
	counterpart := destinationCounterpart(storeID)

	methodRepo.On("FindDefaultForKind", ctx, storeID, ledger.EntryKindExpense).Return(method, nil)
	counterpartRepo.On("FindByIDForStore", ctx, storeID, counterpart.ID).Return(counterpart, nil)
	entryRepo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.CreateEntry(ctx, storeID, CreateEntryRequest{
		Kind:          "despesa",
		Description:   "Compra de farinha",
		Amount:        decimal.RequireFromString("50.00"),
		EventDate:     time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		CounterpartID: counterpart.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, method.ID, resp.PaymentMethodID)
	assert.True(t, resp.FeeRate.IsZero())
	assert.Equal(t, &counterpart.ID, resp.DestinationID)
	assert.Nil(t, resp.SourceID)
}

func TestEntryService_CreateEntry_NoDefaultMethod(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, _, methodRepo, _, _ := newEntryService()

	methodRepo.On("FindDefaultForKind", ctx, storeID, ledger.EntryKindIncome).Return(nil, nil)

	_, err := svc.CreateEntry(ctx, storeID, CreateEntryRequest{
		Kind:          "receita",
		Description:   "Venda",
		Amount:        decimal.RequireFromString("10.00"),
		EventDate:     time.Now(),
		CounterpartID: uuid.New(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NO_DEFAULT_METHOD", domainErr.Code)
}

func TestEntryService_CreateEntry_CounterpartRoleMismatch(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, _, methodRepo, _, counterpartRepo := newEntryService()

	method := cashMethod(storeID)
	counterpart := destinationCounterpart(storeID)

	methodRepo.On("FindByIDForStore", ctx, storeID, method.ID).Return(method, nil)
	counterpartRepo.On("FindByIDForStore", ctx, storeID, counterpart.ID).Return(counterpart, nil)

	_, err := svc.CreateEntry(ctx, storeID, CreateEntryRequest{
		Kind:            "receita",
		Description:     "Venda",
		Amount:          decimal.RequireFromString("10.00"),
		EventDate:       time.Now(),
		PaymentMethodID: &method.ID,
		CounterpartID:   counterpart.ID,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_COUNTERPART", domainErr.Code)
}

func TestEntryService_CreateEntry_InvalidKind(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newEntryService()

	_, err := svc.CreateEntry(ctx, uuid.New(), CreateEntryRequest{
		Kind:          "transferencia",
		Description:   "x",
		Amount:        decimal.RequireFromString("10.00"),
		EventDate:     time.Now(),
		CounterpartID: uuid.New(),
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_KIND", domainErr.Code)
}

func TestEntryService_UpdateEntry_ResnapshotsFeeRate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, methodRepo, _, counterpartRepo := newEntryService()

	oldMethod := cashMethod(storeID)
	newMethod := creditCardMethod(storeID)
	counterpart := sourceCounterpart(storeID)

	entry, err := ledger.NewEntry(storeID, ledger.EntryKindIncome, "Venda",
		moneyBRL(t, "80.00"), oldMethod.FeeRate, time.Now(), oldMethod.ID)
	require.NoError(t, err)
	require.NoError(t, entry.SetCounterpart(counterpart.ID))

	entryRepo.On("FindByIDForStore", ctx, storeID, entry.ID).Return(entry, nil)
	methodRepo.On("FindByIDForStore", ctx, storeID, newMethod.ID).Return(newMethod, nil)
	counterpartRepo.On("FindByIDForStore", ctx, storeID, counterpart.ID).Return(counterpart, nil)
	entryRepo.On("SaveWithLock", ctx, entry).Return(nil)

	resp, err := svc.UpdateEntry(ctx, storeID, entry.ID, UpdateEntryRequest{
		Description:     "Venda no cartao",
		Amount:          decimal.RequireFromString("80.00"),
		EventDate:       time.Now(),
		PaymentMethodID: newMethod.ID,
		CounterpartID:   counterpart.ID,
	})

	require.NoError(t, err)
	assert.True(t, resp.FeeRate.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, newMethod.ID, resp.PaymentMethodID)
}

func TestEntryService_UpdateEntry_SameMethodKeepsFeeSnapshot(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, methodRepo, _, counterpartRepo := newEntryService()

	method := creditCardMethod(storeID)
	counterpart := sourceCounterpart(storeID)

	entry, err := ledger.NewEntry(storeID, ledger.EntryKindIncome, "Venda",
		moneyBRL(t, "80.00"), method.FeeRate, time.Now(), method.ID)
	require.NoError(t, err)
	require.NoError(t, entry.SetCounterpart(counterpart.ID))

	// The method's rate was edited after the entry was recorded.
	method.FeeRate = decimal.RequireFromString("4.0")

	entryRepo.On("FindByIDForStore", ctx, storeID, entry.ID).Return(entry, nil)
	methodRepo.On("FindByIDForStore", ctx, storeID, method.ID).Return(method, nil)
	counterpartRepo.On("FindByIDForStore", ctx, storeID, counterpart.ID).Return(counterpart, nil)
	entryRepo.On("SaveWithLock", ctx, entry).Return(nil)

	resp, err := svc.UpdateEntry(ctx, storeID, entry.ID, UpdateEntryRequest{
		Description:     "Venda ajustada",
		Amount:          decimal.RequireFromString("90.00"),
		EventDate:       time.Now(),
		PaymentMethodID: method.ID,
		CounterpartID:   counterpart.ID,
	})

	require.NoError(t, err)
	assert.True(t, resp.FeeRate.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, method.ID, resp.PaymentMethodID)
}

func TestEntryService_GetEntryByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	id := uuid.New()
	svc, entryRepo, _, _, _ := newEntryService()

	entryRepo.On("FindByIDForStore", ctx, storeID, id).Return(nil, nil)

	_, err := svc.GetEntryByID(ctx, storeID, id)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestEntryService_DeactivateEntry(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, _, _, _ := newEntryService()

	method := cashMethod(storeID)
	entry, err := ledger.NewEntry(storeID, ledger.EntryKindIncome, "Venda",
		moneyBRL(t, "10.00"), decimal.Zero, time.Now(), method.ID)
	require.NoError(t, err)

	entryRepo.On("FindByIDForStore", ctx, storeID, entry.ID).Return(entry, nil)
	entryRepo.On("SaveWithLock", ctx, entry).Return(nil)

	require.NoError(t, svc.DeactivateEntry(ctx, storeID, entry.ID))
	assert.False(t, entry.Active)

	// Second deactivation fails in the domain
	err = svc.DeactivateEntry(ctx, storeID, entry.ID)
	require.Error(t, err)
}

func TestEntryService_ListEntries(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	svc, entryRepo, _, _, _ := newEntryService()

	method := cashMethod(storeID)
	entry, err := ledger.NewEntry(storeID, ledger.EntryKindExpense, "Aluguel",
		moneyBRL(t, "1200.00"), decimal.Zero, time.Now(), method.ID)
	require.NoError(t, err)

	entryRepo.On("FindAllForStore", ctx, storeID, mock.Anything).Return([]ledger.Entry{*entry}, nil)
	entryRepo.On("CountForStore", ctx, storeID, mock.Anything).Return(int64(1), nil)

	responses, total, err := svc.ListEntries(ctx, storeID, EntryListFilter{Kind: "despesa", Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "despesa", responses[0].Kind)
}
