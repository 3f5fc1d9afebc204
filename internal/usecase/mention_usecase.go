package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
)

// MentionAnalyzer scans articles against the stock catalog and aggregates
// mention counts.
type MentionAnalyzer interface {
	Analyze(ctx context.Context, articles []*entity.ArticleRecord) (map[entity.StockKey]int, error)
}

type mentionUseCase struct {
	catalogRepo repository.StockCatalogRepository
	market      string
}

// NewMentionUseCase creates a mention analyzer restricted to one market
// segment of the catalog.
func NewMentionUseCase(catalogRepo repository.StockCatalogRepository, market string) MentionAnalyzer {
	return &mentionUseCase{catalogRepo: catalogRepo, market: market}
}

func (uc *mentionUseCase) Analyze(ctx context.Context, articles []*entity.ArticleRecord) (map[entity.StockKey]int, error) {
	catalog, err := uc.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stock catalog: %w", err)
	}
	return CountMentions(articles, FilterCatalog(catalog, uc.market)), nil
}

// FilterCatalog keeps entities in the given market segment that carry a
// non-empty industry. An empty market keeps all segments.
func FilterCatalog(catalog []entity.StockEntity, market string) []entity.StockEntity {
	filtered := make([]entity.StockEntity, 0, len(catalog))
	for _, e := range catalog {
		if market != "" && e.Market != market {
			continue
		}
		if e.Industry == "" {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// CountMentions scans every catalog entity's name and code as case-sensitive
// substrings of each article's title and content. An article contributes at
// most one count per entity no matter how often it mentions it.
//
// O(articles x catalog); acceptable at reference scale. A multi-pattern
// automaton over catalog terms is the scale-up path.
func CountMentions(articles []*entity.ArticleRecord, catalog []entity.StockEntity) map[entity.StockKey]int {
	counts := make(map[entity.StockKey]int)
	for _, article := range articles {
		text := article.Title + article.Content

		matched := make(map[entity.StockKey]struct{})
		for _, stock := range catalog {
			if strings.Contains(text, stock.Name) || strings.Contains(text, stock.Code) {
				matched[stock.Key()] = struct{}{}
			}
		}
		for key := range matched {
			counts[key]++
		}
	}
	return counts
}

// TopMentions returns the n highest counts in descending order, ties broken
// by stock code for stable output.
func TopMentions(counts map[entity.StockKey]int, n int) []entity.MentionCount {
	result := make([]entity.MentionCount, 0, len(counts))
	for key, count := range counts {
		result = append(result, entity.MentionCount{
			Code:     key.Code,
			Name:     key.Name,
			Industry: key.Industry,
			Count:    count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Code < result[j].Code
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// IndustryCounts sums mention counts per industry.
func IndustryCounts(counts map[entity.StockKey]int) map[string]int {
	industries := make(map[string]int)
	for key, count := range counts {
		industries[key.Industry] += count
	}
	return industries
}
