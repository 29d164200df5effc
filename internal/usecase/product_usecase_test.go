package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

type repoMock struct {
	products  map[int64]*domain.Product
	nextID    int64
	createErr error
	creates   int
}

func newRepoMock() *repoMock {
	return &repoMock{products: make(map[int64]*domain.Product), nextID: 1}
}

func (m *repoMock) ListAll(context.Context) ([]*domain.Product, error) {
	result := make([]*domain.Product, 0, len(m.products))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *repoMock) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return p, nil
}

func (m *repoMock) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}

	stored := *product
	stored.ID = m.nextID
	m.nextID++
	m.products[stored.ID] = &stored
	return &stored, nil
}

type imagesMock struct {
	storeErr error
	inline   bool
	stored   []*domain.Image
	cleaned  []*domain.ImageRef
}

func (m *imagesMock) StoreImage(_ context.Context, image *domain.Image) (*domain.ImageRef, error) {
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	m.stored = append(m.stored, image)
	if m.inline {
		return &domain.ImageRef{Data: image.Data}, nil
	}
	return &domain.ImageRef{Key: "image-1-test.png"}, nil
}

func (m *imagesMock) CleanupImage(ref *domain.ImageRef) {
	m.cleaned = append(m.cleaned, ref)
}

func (m *imagesMock) ResolveImage(ref *domain.ImageRef) string {
	if ref.IsInline() {
		return "inline-data"
	}
	return "/uploads/" + ref.Key
}

func (m *imagesMock) ImageExists(context.Context, *domain.ImageRef) (bool, error) {
	return true, nil
}

func (m *imagesMock) WaitForCleanup(context.Context) error { return nil }

func newUC(repo ProductRepository, imgs ImagesInfra) *ProductUseCase {
	return NewProductUC(repo, imgs, nil, nil, logger.NewDiscardLogger(), time.Second)
}

func strPtr(s string) *string { return &s }

func TestCreateProduct_Validation(t *testing.T) {
	repo := newRepoMock()
	uc := newUC(repo, &imagesMock{})

	t.Run("empty name", func(t *testing.T) {
		_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("   ", nil, 1999, nil))
		if !errors.Is(err, e.ErrProductNameRequired) {
			t.Fatalf("expected ErrProductNameRequired, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", nil, -1, nil))
		if !errors.Is(err, e.ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
	})

	if repo.creates != 0 {
		t.Errorf("repository must not be reached on validation failure, got %d creates", repo.creates)
	}
}

func TestCreateProduct_ThenGet(t *testing.T) {
	uc := newUC(newRepoMock(), &imagesMock{})

	created, err := uc.CreateProduct(context.Background(),
		NewCreateProductReq("Widget", strPtr("A widget"), 1999, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected database-assigned id")
	}
	if created.Image != nil {
		t.Errorf("expected nil image, got %v", *created.Image)
	}

	got, err := uc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Widget" || got.PriceCents != 1999 || got.Description == nil || *got.Description != "A widget" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestCreateProduct_ZeroPriceAllowed(t *testing.T) {
	uc := newUC(newRepoMock(), &imagesMock{})

	created, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Freebie", nil, 0, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PriceCents != 0 {
		t.Errorf("expected zero price, got %d", created.PriceCents)
	}
}

func TestCreateProduct_WithImage_ResolvesURL(t *testing.T) {
	imgs := &imagesMock{}
	uc := newUC(newRepoMock(), imgs)

	image := domain.NewImage([]byte{1, 2, 3}, "image/png", 3, "photo.png")
	created, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", nil, 1999, image))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Image == nil || *created.Image != "/uploads/image-1-test.png" {
		t.Errorf("expected resolved image URL, got %v", created.Image)
	}
	if len(imgs.stored) != 1 {
		t.Errorf("expected 1 stored image, got %d", len(imgs.stored))
	}
}

func TestCreateProduct_InsertFailure_CleansUpStoredImage(t *testing.T) {
	repo := newRepoMock()
	repo.createErr = errors.New("connection reset")
	imgs := &imagesMock{}
	uc := newUC(repo, imgs)

	image := domain.NewImage([]byte{1, 2, 3}, "image/png", 3, "photo.png")
	_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", nil, 1999, image))
	if err == nil {
		t.Fatal("expected error")
	}

	if len(imgs.cleaned) != 1 {
		t.Fatalf("expected 1 cleanup call, got %d", len(imgs.cleaned))
	}
	if imgs.cleaned[0].Key != "image-1-test.png" {
		t.Errorf("unexpected cleaned ref: %+v", imgs.cleaned[0])
	}
}

func TestCreateProduct_InsertFailure_InlineRefNotCleaned(t *testing.T) {
	repo := newRepoMock()
	repo.createErr = errors.New("connection reset")
	imgs := &imagesMock{inline: true}
	uc := newUC(repo, imgs)

	image := domain.NewImage([]byte{1, 2, 3}, "image/png", 3, "photo.png")
	_, err := uc.CreateProduct(context.Background(), NewCreateProductReq("Widget", nil, 1999, image))
	if err == nil {
		t.Fatal("expected error")
	}

	if len(imgs.cleaned) != 0 {
		t.Errorf("inline refs have nothing to clean up, got %d calls", len(imgs.cleaned))
	}
}

func TestListProducts_EmptyTable(t *testing.T) {
	uc := newUC(newRepoMock(), &imagesMock{})

	products, err := uc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty slice, got %v", products)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := newUC(newRepoMock(), &imagesMock{})

	_, err := uc.GetProduct(context.Background(), 999999)
	if !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
