package twse

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/stocknews-service/internal/entity"
)

var csvHeader = []string{"stock_code", "stock_name", "industry", "market"}

// CSVCatalog provides a StockCatalogRepository backed by a previously
// downloaded catalog file, so runs do not re-scrape the boards.
type CSVCatalog struct {
	path string
}

// NewCSVCatalog creates a catalog reader for the given file path.
func NewCSVCatalog(path string) *CSVCatalog {
	return &CSVCatalog{path: path}
}

// List reads all catalog records from the CSV file.
func (c *CSVCatalog) List(_ context.Context) ([]entity.StockEntity, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("opening stock list file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading stock list file: %w", err)
	}

	entities := make([]entity.StockEntity, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 4 {
			continue
		}
		entities = append(entities, entity.StockEntity{
			Code:     row[0],
			Name:     row[1],
			Industry: row[2],
			Market:   row[3],
		})
	}
	return entities, nil
}

// SaveCSV writes a catalog to path, creating parent directories as needed.
func SaveCSV(path string, entities []entity.StockEntity) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating stock list directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating stock list file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entities {
		if err := w.Write([]string{e.Code, e.Name, e.Industry, e.Market}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
