package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kofiannan/biztrack-api/internal/application/dto"
	"github.com/kofiannan/biztrack-api/internal/application/ledger"
	"github.com/kofiannan/biztrack-api/internal/domain"
	"github.com/kofiannan/biztrack-api/internal/domain/entity"
	"github.com/kofiannan/biztrack-api/internal/domain/repository"
)

var errTxBroken = errors.New("tx broken")

type stubSaleRepo struct {
	repository.SaleRepository
	byID     *entity.Sale
	created  []*entity.Sale
	reversed []string
}

func (f *stubSaleRepo) GetByID(_ context.Context, _, _ string) (*entity.Sale, error) {
	return f.byID, nil
}

func (f *stubSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	f.created = append(f.created, sale)
	return nil
}

func (f *stubSaleRepo) MarkReversed(_ context.Context, _, id string, _ time.Time, _ string) error {
	f.reversed = append(f.reversed, id)
	return nil
}

type stubInventoryRepo struct {
	repository.InventoryRepository
	movements []*entity.InventoryMovement
}

func (f *stubInventoryRepo) CreateMovement(_ context.Context, m *entity.InventoryMovement) error {
	f.movements = append(f.movements, m)
	return nil
}

type stubProductRepo struct {
	repository.ProductRepository
	products   []entity.Product
	adjusted   []decimal.Decimal
	statCalls  int
	statListed decimal.Decimal
}

func (f *stubProductRepo) List(_ context.Context, _ string) ([]entity.Product, error) {
	return f.products, nil
}

func (f *stubProductRepo) AdjustStock(_ context.Context, _ string, delta decimal.Decimal) error {
	f.adjusted = append(f.adjusted, delta)
	return nil
}

func (f *stubProductRepo) RecordSaleStats(_ context.Context, _ string, qty decimal.Decimal, _ time.Time) error {
	f.statCalls++
	f.statListed = qty
	return nil
}

type stubBusinessRepo struct {
	repository.BusinessRepository
}

func (f *stubBusinessRepo) GetByUserID(_ context.Context, _ string) (*entity.Business, error) {
	return nil, nil
}

// stubTxRunner hands the fakes to fn, or fails without running it.
type stubTxRunner struct {
	sales    *stubSaleRepo
	inv      *stubInventoryRepo
	products *stubProductRepo
	err      error
	ran      bool
}

func (f *stubTxRunner) Run(_ context.Context, fn func(
	repository.SaleRepository,
	repository.InventoryRepository,
	repository.ProductRepository,
) error) error {
	if f.err != nil {
		return f.err
	}
	f.ran = true
	return fn(f.sales, f.inv, f.products)
}

type countingBus struct {
	published int
}

func (b *countingBus) Publish() { b.published++ }

func TestRecordRejectsInvalidInput(t *testing.T) {
	uc := ledger.NewRecordSaleUseCase(&stubTxRunner{}, &stubProductRepo{}, &stubBusinessRepo{}, &countingBus{})

	cases := []dto.RecordSaleRequest{
		{ProductName: "", Amount: d("10"), Quantity: d("1")},
		{ProductName: "Milo Tin", Amount: d("0"), Quantity: d("1")},
		{ProductName: "Milo Tin", Amount: d("10"), Quantity: d("-2")},
		{ProductName: "Milo Tin", Amount: d("10"), Quantity: d("1"), PaymentMethod: "barter"},
		{ProductName: "Milo Tin", Amount: d("10"), Quantity: d("1"), OutstandingCredit: d("-1")},
		{ProductName: "Milo Tin", Amount: d("10"), Quantity: d("1"), OutstandingCredit: d("11")},
	}
	for _, in := range cases {
		_, err := uc.Record(context.Background(), "u1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRecordWritesSaleAndSoldMovement(t *testing.T) {
	sales := &stubSaleRepo{}
	inv := &stubInventoryRepo{}
	products := &stubProductRepo{products: []entity.Product{{ID: "p1", Name: "milo tin"}}}
	tx := &stubTxRunner{sales: sales, inv: inv, products: products}
	bus := &countingBus{}
	uc := ledger.NewRecordSaleUseCase(tx, products, &stubBusinessRepo{}, bus)

	out, err := uc.Record(context.Background(), "u1", dto.RecordSaleRequest{
		ProductName: "Milo  Tin",
		Amount:      d("100"),
		Quantity:    d("4"),
	})
	require.NoError(t, err)
	require.Len(t, sales.created, 1)
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)

	require.Len(t, inv.movements, 1)
	m := inv.movements[0]
	assert.Equal(t, entity.MovementSold, m.Type)
	assert.Equal(t, "-4", m.Quantity.String())
	assert.Equal(t, "25", m.UnitPrice.String())

	// Name resolution goes through normalization, so the counter updates too.
	assert.Equal(t, 1, products.statCalls)
	assert.Equal(t, "4", products.statListed.String())
	assert.Equal(t, 1, bus.published)
}

func TestRecordUnknownProductStillLands(t *testing.T) {
	sales := &stubSaleRepo{}
	inv := &stubInventoryRepo{}
	products := &stubProductRepo{}
	tx := &stubTxRunner{sales: sales, inv: inv, products: products}
	uc := ledger.NewRecordSaleUseCase(tx, products, &stubBusinessRepo{}, &countingBus{})

	_, err := uc.Record(context.Background(), "u1", dto.RecordSaleRequest{
		ProductName: "Unlisted Thing",
		Amount:      d("5"),
		Quantity:    d("1"),
	})
	require.NoError(t, err)
	assert.Len(t, sales.created, 1)
	assert.Equal(t, 0, products.statCalls)
}

func TestRecordDoesNotPublishWhenTxFails(t *testing.T) {
	tx := &stubTxRunner{err: errTxBroken}
	bus := &countingBus{}
	uc := ledger.NewRecordSaleUseCase(tx, &stubProductRepo{}, &stubBusinessRepo{}, bus)

	_, err := uc.Record(context.Background(), "u1", dto.RecordSaleRequest{
		ProductName: "Milo Tin",
		Amount:      d("10"),
		Quantity:    d("1"),
	})
	require.ErrorIs(t, err, errTxBroken)
	assert.Equal(t, 0, bus.published)
}

func TestReverseNotFound(t *testing.T) {
	sales := &stubSaleRepo{}
	uc := ledger.NewReverseSaleUseCase(&stubTxRunner{}, sales, &stubProductRepo{}, &countingBus{})

	err := uc.Reverse(context.Background(), "u1", "missing", "typo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseTwiceConflicts(t *testing.T) {
	sales := &stubSaleRepo{byID: &entity.Sale{ID: "s1", ProductName: "Milo Tin", Reversed: true}}
	tx := &stubTxRunner{}
	bus := &countingBus{}
	uc := ledger.NewReverseSaleUseCase(tx, sales, &stubProductRepo{}, bus)

	err := uc.Reverse(context.Background(), "u1", "s1", "again")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, tx.ran)
	assert.Equal(t, 0, bus.published)
}

func TestReverseRestoresStock(t *testing.T) {
	sale := &entity.Sale{ID: "s1", ProductName: "Milo Tin", Amount: d("100"), Quantity: d("4")}
	sales := &stubSaleRepo{byID: sale}
	inv := &stubInventoryRepo{}
	products := &stubProductRepo{products: []entity.Product{{ID: "p1", Name: "Milo Tin"}}}
	tx := &stubTxRunner{sales: sales, inv: inv, products: products}
	bus := &countingBus{}
	uc := ledger.NewReverseSaleUseCase(tx, sales, products, bus)

	err := uc.Reverse(context.Background(), "u1", "s1", "customer returned")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, sales.reversed)

	require.Len(t, inv.movements, 1)
	m := inv.movements[0]
	assert.Equal(t, entity.MovementAdjusted, m.Type)
	assert.Equal(t, "4", m.Quantity.String())

	require.Len(t, products.adjusted, 1)
	assert.Equal(t, "4", products.adjusted[0].String())
	assert.Equal(t, 1, bus.published)
}

func TestReverseDoesNotPublishWhenTxFails(t *testing.T) {
	sales := &stubSaleRepo{byID: &entity.Sale{ID: "s1", ProductName: "Milo Tin", Amount: d("10"), Quantity: d("1")}}
	tx := &stubTxRunner{err: errTxBroken}
	bus := &countingBus{}
	uc := ledger.NewReverseSaleUseCase(tx, sales, &stubProductRepo{}, bus)

	err := uc.Reverse(context.Background(), "u1", "s1", "oops")
	require.ErrorIs(t, err, errTxBroken)
	assert.Equal(t, 0, bus.published)
}
