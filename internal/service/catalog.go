package service

import (
	"context"
	"sync"
	"time"

	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/models"

	"github.com/rs/zerolog"
)

// CatalogService читает каталог из БД с кэшем в памяти. Каталог меняется
// редко, а запрашивается на каждое нажатие кнопки.
type CatalogService struct {
	repo   domain.Repository
	logger *zerolog.Logger
	ttl    time.Duration

	mu         sync.RWMutex
	categories []*models.Category
	products   map[int64][]*models.Product
	cachedAt   time.Time
}

func NewCatalogService(repo domain.Repository, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		logger:   logger,
		ttl:      models.CatalogCacheTTL * time.Second,
		products: make(map[int64][]*models.Product),
	}
}

func (s *CatalogService) cacheValid() bool {
	return !s.cachedAt.IsZero() && time.Since(s.cachedAt) < s.ttl
}

func (s *CatalogService) Categories(ctx context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	if s.cacheValid() && s.categories != nil {
		cached := s.categories
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	categories, err := s.repo.ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = categories
	s.products = make(map[int64][]*models.Product)
	s.cachedAt = time.Now()
	s.mu.Unlock()

	return categories, nil
}

func (s *CatalogService) Products(ctx context.Context, categoryID int64) ([]*models.Product, error) {
	s.mu.RLock()
	if s.cacheValid() {
		if cached, ok := s.products[categoryID]; ok {
			s.mu.RUnlock()
			return cached, nil
		}
	}
	s.mu.RUnlock()

	products, err := s.repo.ListProducts(ctx, categoryID, true)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cachedAt.IsZero() || !s.cacheValid() {
		s.products = make(map[int64][]*models.Product)
		s.cachedAt = time.Now()
	}
	s.products[categoryID] = products
	s.mu.Unlock()

	return products, nil
}

// Product читает товар напрямую: карточка товара должна показывать
// актуальную цену.
func (s *CatalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *CatalogService) ProductByName(ctx context.Context, name string) (*models.Product, error) {
	return s.repo.GetProductByName(ctx, name)
}

func (s *CatalogService) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return s.repo.GetCategoryByName(ctx, name)
}

// Invalidate сбрасывает кэш. Дергается после правок каталога через API.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.categories = nil
	s.products = make(map[int64][]*models.Product)
	s.cachedAt = time.Time{}
	s.mu.Unlock()
}
