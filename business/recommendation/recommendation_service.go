package recommendation

import (
	"context"
	"fmt"
	"sort"

	"solestride/domain"
	"solestride/pkg/logger"
)

// DefaultTopK is the number of products returned when the caller does not
// ask for a specific count.
const DefaultTopK = 4

// OrdersRepository contract interface
type OrdersRepository interface {
	FindByUserAndStatuses(ctx context.Context, userID string, statuses []string) ([]domain.Order, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindCandidates(ctx context.Context, excludedProductIDs []string) ([]domain.Product, error)
}

type Service struct {
	ordersRepo  OrdersRepository
	productRepo ProductRepository
}

func NewService(ordersRepo OrdersRepository, productRepo ProductRepository) *Service {
	return &Service{
		ordersRepo:  ordersRepo,
		productRepo: productRepo,
	}
}

type scoredProduct struct {
	product domain.Product
	score   float64
}

// Recommend returns up to topK in-stock products the user has not bought,
// ranked by cosine similarity against the profile built from their honored
// purchase history. Fully deterministic for a given database state, and a
// pure read. An empty userID or an empty history yields an empty list.
func (s *Service) Recommend(ctx context.Context, userID string, topK int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == "" {
		return []domain.Product{}, nil
	}

	if topK <= 0 {
		topK = DefaultTopK
	}

	orders, err := s.ordersRepo.FindByUserAndStatuses(ctx, userID, domain.HonoredStatuses)
	if err != nil {
		logger.Error("Failed to load purchase history", err)
		return nil, err
	}

	history := make([]domain.OrderItem, 0)
	purchasedIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			history = append(history, item)
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				purchasedIDs = append(purchasedIDs, item.ProductID)
			}
		}
	}

	profile, ok := buildProfile(history)
	if !ok {
		return []domain.Product{}, nil
	}
	profileVec := encode(profile)

	candidates, err := s.productRepo.FindCandidates(ctx, purchasedIDs)
	if err != nil {
		logger.Error("Failed to load candidate products", err)
		return nil, err
	}
	if len(candidates) == 0 {
		return []domain.Product{}, nil
	}

	scored := make([]scoredProduct, 0, len(candidates))
	for _, candidate := range candidates {
		sim := cosineSimilarity(profileVec, encode(productTraits(candidate)))
		scored = append(scored, scoredProduct{product: candidate, score: sim})
	}

	// Stable keeps the original candidate order on score ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if topK > len(scored) {
		topK = len(scored)
	}

	result := make([]domain.Product, 0, topK)
	for _, sp := range scored[:topK] {
		result = append(result, sp.product)
	}

	return result, nil
}
