package twse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/stocknews-service/internal/entity"
)

const (
	listedBoardURL = "https://isin.twse.com.tw/isin/C_public.jsp?strMode=2"
	otcBoardURL    = "https://isin.twse.com.tw/isin/C_public.jsp?strMode=4"

	// The ISIN pages render securities as 7-column table rows; the first
	// column holds "code name" separated by whitespace.
	securityColumnCount = 7
	marketColumnIndex   = 3
	industryColumnIndex = 4
)

// CatalogImpl provides a concrete implementation of the
// StockCatalogRepository interface by scraping the TWSE ISIN pages for the
// listed and OTC boards.
type CatalogImpl struct {
	httpClient *http.Client
	boardURLs  []string
}

// NewCatalog creates a catalog scraper over the default listed + OTC pages.
func NewCatalog() *CatalogImpl {
	return &CatalogImpl{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		boardURLs:  []string{listedBoardURL, otcBoardURL},
	}
}

// NewCatalogWithURLs creates a catalog scraper over custom board pages.
func NewCatalogWithURLs(urls ...string) *CatalogImpl {
	return &CatalogImpl{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		boardURLs:  urls,
	}
}

// List fetches every configured board and merges the results.
func (c *CatalogImpl) List(ctx context.Context) ([]entity.StockEntity, error) {
	var catalog []entity.StockEntity
	for _, boardURL := range c.boardURLs {
		entities, err := c.fetchBoard(ctx, boardURL)
		if err != nil {
			return nil, fmt.Errorf("fetching stock board %s: %w", boardURL, err)
		}
		catalog = append(catalog, entities...)
	}
	return catalog, nil
}

func (c *CatalogImpl) fetchBoard(ctx context.Context, boardURL string) ([]entity.StockEntity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, boardURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock board returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing stock board: %w", err)
	}

	var entities []entity.StockEntity
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != securityColumnCount {
			return
		}
		fields := make([]string, 0, securityColumnCount)
		cells.Each(func(_ int, cell *goquery.Selection) {
			fields = append(fields, strings.TrimSpace(cell.Text()))
		})

		// "code name" in one cell; header and section rows do not split
		// into two fields and are dropped here.
		codeName := strings.Fields(fields[0])
		if len(codeName) < 2 {
			return
		}
		entities = append(entities, entity.StockEntity{
			Code:     codeName[0],
			Name:     strings.Join(codeName[1:], " "),
			Market:   fields[marketColumnIndex],
			Industry: fields[industryColumnIndex],
		})
	})
	return entities, nil
}
