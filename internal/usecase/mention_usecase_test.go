package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stocknews-service/internal/entity"
)

type fakeCatalog struct {
	entities []entity.StockEntity
	err      error
}

func (c *fakeCatalog) List(context.Context) ([]entity.StockEntity, error) {
	return c.entities, c.err
}

func testCatalog() []entity.StockEntity {
	return []entity.StockEntity{
		{Code: "2330", Name: "台積電", Industry: "半導體業", Market: "上市"},
		{Code: "2317", Name: "鴻海", Industry: "電子零組件業", Market: "上市"},
		{Code: "2454", Name: "聯發科", Industry: "半導體業", Market: "上市"},
		{Code: "6547", Name: "高端疫苗", Industry: "生技醫療業", Market: "上櫃"},
	}
}

func mentionArticle(newsID int64, title, content string) *entity.ArticleRecord {
	a := articleAt(newsID, mustParse("2025-07-01 10:00:00"))
	a.Title = title
	a.Content = content
	return a
}

func TestCountMentions_OncePerArticle(t *testing.T) {
	articles := []*entity.ArticleRecord{
		// Name in the title, code in the body: still a single count.
		mentionArticle(1, "台積電法說會登場", "外資持續加碼 2330，台積電盤中創高。"),
	}

	counts := CountMentions(articles, testCatalog())

	require.Len(t, counts, 1)
	for key, count := range counts {
		assert.Equal(t, "2330", key.Code)
		assert.Equal(t, 1, count)
	}
}

func TestCountMentions_AccumulatesAcrossArticles(t *testing.T) {
	articles := []*entity.ArticleRecord{
		mentionArticle(1, "台積電擴廠", "先進製程需求強勁。"),
		mentionArticle(2, "半導體雙雄", "台積電與聯發科同步走揚。"),
		mentionArticle(3, "組裝大廠動態", "鴻海釋出利多。"),
	}

	counts := CountMentions(articles, testCatalog())

	byCode := make(map[string]int)
	for key, count := range counts {
		byCode[key.Code] = count
	}
	assert.Equal(t, 2, byCode["2330"])
	assert.Equal(t, 1, byCode["2454"])
	assert.Equal(t, 1, byCode["2317"])
}

func TestCountMentions_CodeMatch(t *testing.T) {
	articles := []*entity.ArticleRecord{
		mentionArticle(1, "盤後籌碼", "三大法人買超 2317 逾萬張。"),
	}

	counts := CountMentions(articles, testCatalog())

	require.Len(t, counts, 1)
	for key := range counts {
		assert.Equal(t, "鴻海", key.Name)
	}
}

func TestCountMentions_NoMatches(t *testing.T) {
	articles := []*entity.ArticleRecord{
		mentionArticle(1, "國際油價走勢", "布蘭特原油小幅收漲。"),
	}
	assert.Empty(t, CountMentions(articles, testCatalog()))
}

func TestFilterCatalog(t *testing.T) {
	catalog := append(testCatalog(), entity.StockEntity{
		Code: "0050", Name: "元大台灣50", Industry: "", Market: "上市",
	})

	listed := FilterCatalog(catalog, "上市")
	require.Len(t, listed, 3)
	for _, e := range listed {
		assert.Equal(t, "上市", e.Market)
		assert.NotEmpty(t, e.Industry, "entities without an industry are excluded")
	}

	assert.Len(t, FilterCatalog(catalog, ""), 4, "empty market keeps every segment")
}

func TestAnalyze_FiltersByMarket(t *testing.T) {
	uc := NewMentionUseCase(&fakeCatalog{entities: testCatalog()}, "上市")

	counts, err := uc.Analyze(context.Background(), []*entity.ArticleRecord{
		mentionArticle(1, "生技與半導體", "高端疫苗與台積電皆有進展。"),
	})

	require.NoError(t, err)
	require.Len(t, counts, 1, "off-market mentions are not counted")
	for key := range counts {
		assert.Equal(t, "2330", key.Code)
	}
}

func TestAnalyze_CatalogErrorPropagates(t *testing.T) {
	uc := NewMentionUseCase(&fakeCatalog{err: errStoreDown}, "上市")
	_, err := uc.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestTopMentions(t *testing.T) {
	counts := map[entity.StockKey]int{
		{Code: "2330", Name: "台積電", Industry: "半導體業"}:   5,
		{Code: "2454", Name: "聯發科", Industry: "半導體業"}:   2,
		{Code: "2317", Name: "鴻海", Industry: "電子零組件業"}:  2,
		{Code: "6547", Name: "高端疫苗", Industry: "生技醫療業"}: 1,
	}

	top := TopMentions(counts, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "2330", top[0].Code)
	assert.Equal(t, 5, top[0].Count)
	// Equal counts order by code for stable output.
	assert.Equal(t, "2317", top[1].Code)
	assert.Equal(t, "2454", top[2].Code)
}

func TestIndustryCounts(t *testing.T) {
	counts := map[entity.StockKey]int{
		{Code: "2330", Name: "台積電", Industry: "半導體業"}:  5,
		{Code: "2454", Name: "聯發科", Industry: "半導體業"}:  2,
		{Code: "2317", Name: "鴻海", Industry: "電子零組件業"}: 2,
	}

	industries := IndustryCounts(counts)

	assert.Equal(t, 7, industries["半導體業"])
	assert.Equal(t, 2, industries["電子零組件業"])
}
