package service

import (
	"context"
	"fmt"
	"time"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

type LayoutService interface {
	RunAutoRefresh(ctx context.Context) error
	ListCards(ctx context.Context) ([]*model.CardConfig, error)
}

type layoutServiceImpl struct {
	cardRepo     repository.CardConfigRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewLayoutService(
	cardRepo repository.CardConfigRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) LayoutService {
	return &layoutServiceImpl{
		cardRepo:     cardRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

var parentCategorySlugs = []string{"fashion", "luggage", "computers", "electronics", "video-games"}

var categoryCardCopy = map[string]struct{ Title, LinkText string }{
	"fashion":     {"Latest in Fashion", "Shop Fashion"},
	"luggage":     {"Best Luggage for Travel", "Explore Luggage"},
	"computers":   {"Hot Picks in Computers", "View All Computers"},
	"electronics": {"Trending Electronics Deals", "Browse Electronics"},
	"video-games": {"Top Video Games Today", "See All Games"},
}

// RunAutoRefresh rebuilds the auto-generated homepage cards from the catalog.
// A failed latest-products fetch aborts the run before anything is touched;
// per-category failures only drop that category's card. The run claims the
// settings marker by compare-and-swap first, so overlapping runs cannot both
// mutate the card set.
func (s *layoutServiceImpl) RunAutoRefresh(ctx context.Context) error {
	settings, err := s.cardRepo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load card settings: %w", err)
	}

	if !settings.UseAuto {
		logger.Info().Msg("auto card refresh skipped, useAuto is off")
		return nil
	}

	latest, err := s.productRepo.Latest(ctx, 4)
	if err != nil {
		return fmt.Errorf("fetch latest products: %w", err)
	}
	if len(latest) == 0 {
		logger.Warn().Msg("auto card refresh skipped, no latest products")
		return nil
	}

	claimed, err := s.cardRepo.ClaimRun(ctx, settings, "auto", time.Now())
	if err != nil {
		return fmt.Errorf("claim refresh run: %w", err)
	}
	if !claimed {
		logger.Info().Msg("auto card refresh skipped, another run claimed it")
		return nil
	}

	cards := []*model.CardConfig{
		{
			Type:      "singleImage",
			Source:    "auto",
			Title:     "New Arrival",
			LinkText:  "Shop latest",
			ProductID: latest[0].ID,
		},
	}

	for _, slug := range parentCategorySlugs {
		category, err := s.categoryRepo.FindBySlug(ctx, slug)
		if err != nil {
			logger.Warn().Err(err).Str("slug", slug).Msg("skipping category card")
			continue
		}
		if len(category.Subcategories) == 0 {
			logger.Warn().Str("slug", slug).Msg("no subcategories, skipping category card")
			continue
		}

		subcategories := category.Subcategories
		if len(subcategories) > 4 {
			subcategories = subcategories[:4]
		}
		categoryIDs := make([]string, len(subcategories))
		for i, sub := range subcategories {
			categoryIDs[i] = sub.ID
		}

		copyFor, ok := categoryCardCopy[slug]
		if !ok {
			copyFor = struct{ Title, LinkText string }{
				Title:    fmt.Sprintf("Top Picks in %s", category.Name),
				LinkText: fmt.Sprintf("Explore %s", category.Name),
			}
		}

		cards = append(cards, &model.CardConfig{
			Type:        "grid",
			Source:      "auto",
			Title:       copyFor.Title,
			LinkText:    copyFor.LinkText,
			CategoryIDs: categoryIDs,
		})
	}

	if err := s.cardRepo.ReplaceAuto(ctx, cards); err != nil {
		return fmt.Errorf("replace auto cards: %w", err)
	}

	logger.Info().Int("cards", len(cards)).Msg("auto-refreshed card layout")
	return nil
}

func (s *layoutServiceImpl) ListCards(ctx context.Context) ([]*model.CardConfig, error) {
	return s.cardRepo.FindAll(ctx)
}
