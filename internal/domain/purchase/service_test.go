package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/apperror"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/id"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/core/types"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/product"
)

type fakePurchaseRepo struct {
	byID map[id.ID]*ProductPurchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{byID: map[id.ID]*ProductPurchase{}}
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *ProductPurchase) error {
	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, purchaseID id.ID) (*ProductPurchase, error) {
	p, ok := f.byID[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID.String())
	}
	copied := *p
	return &copied, nil
}

func (f *fakePurchaseRepo) Update(_ context.Context, p *ProductPurchase) error {
	if _, ok := f.byID[p.ID]; !ok {
		return apperror.NewNotFound("purchase", p.ID.String())
	}
	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakePurchaseRepo) Delete(_ context.Context, purchaseID id.ID) error {
	delete(f.byID, purchaseID)
	return nil
}

func (f *fakePurchaseRepo) ListByDateRange(context.Context, types.Date, types.Date) ([]*ProductPurchase, error) {
	return nil, nil
}

type fakeProductRepo struct {
	stock map[id.ID]int
}

func newFakeProductRepo(ids ...id.ID) *fakeProductRepo {
	f := &fakeProductRepo{stock: map[id.ID]int{}}
	for _, productID := range ids {
		f.stock[productID] = 0
	}
	return f
}

func (f *fakeProductRepo) Create(context.Context, *product.Product) error { return nil }

func (f *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	stock, ok := f.stock[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return &product.Product{ID: productID, Stock: stock}, nil
}

func (f *fakeProductRepo) Update(context.Context, *product.Product) error { return nil }
func (f *fakeProductRepo) Delete(context.Context, id.ID) error            { return nil }
func (f *fakeProductRepo) List(context.Context) ([]*product.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, productID id.ID, delta int) error {
	if _, ok := f.stock[productID]; !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	f.stock[productID] += delta
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakePurchaseRepo, products *fakeProductRepo) *Service {
	return NewService(repo, products, passthroughTxManager{}, nil)
}

func linkedPurchase(productID id.ID, qty int) *ProductPurchase {
	p := NewProductPurchase("caixa de refrigerante", types.MustMoney("120.00"), qty, types.MustDate("2024-05-10"))
	p.ProductID = &productID
	return p
}

func TestCreateLinkedPurchaseRaisesStock(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	svc := newTestService(newFakePurchaseRepo(), products)

	require.NoError(t, svc.Create(context.Background(), linkedPurchase(productA, 5)))
	assert.Equal(t, 5, products.stock[productA])
}

func TestUpdateSameProductAdjustsByDifference(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := linkedPurchase(productA, 5)
	require.NoError(t, svc.Create(context.Background(), p))

	p.Quantity = 8
	require.NoError(t, svc.Update(context.Background(), p))
	assert.Equal(t, 8, products.stock[productA])
}

func TestUpdateRelinkMovesStockBetweenProducts(t *testing.T) {
	productA := id.New()
	productB := id.New()
	products := newFakeProductRepo(productA, productB)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := linkedPurchase(productA, 5)
	require.NoError(t, svc.Create(context.Background(), p))
	require.Equal(t, 5, products.stock[productA])

	p.ProductID = &productB
	require.NoError(t, svc.Update(context.Background(), p))

	assert.Equal(t, 0, products.stock[productA])
	assert.Equal(t, 5, products.stock[productB])
}

func TestUpdateUnlinkRestoresStock(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := linkedPurchase(productA, 4)
	require.NoError(t, svc.Create(context.Background(), p))

	p.ProductID = nil
	require.NoError(t, svc.Update(context.Background(), p))
	assert.Equal(t, 0, products.stock[productA])
}

func TestUpdateLinkAppliesStock(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := NewProductPurchase("fardo avulso", types.MustMoney("80.00"), 3, types.MustDate("2024-05-10"))
	require.NoError(t, svc.Create(context.Background(), p))
	require.Equal(t, 0, products.stock[productA])

	p.ProductID = &productA
	require.NoError(t, svc.Update(context.Background(), p))
	assert.Equal(t, 3, products.stock[productA])
}

func TestUpdateRelinkToMissingProductFails(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := linkedPurchase(productA, 5)
	require.NoError(t, svc.Create(context.Background(), p))

	missing := id.New()
	p.ProductID = &missing
	err := svc.Update(context.Background(), p)
	assert.Error(t, err)
}

func TestDeleteLinkedPurchaseRestoresStock(t *testing.T) {
	productA := id.New()
	products := newFakeProductRepo(productA)
	repo := newFakePurchaseRepo()
	svc := newTestService(repo, products)

	p := linkedPurchase(productA, 5)
	require.NoError(t, svc.Create(context.Background(), p))

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.Equal(t, 0, products.stock[productA])
}
