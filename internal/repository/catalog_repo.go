package repository

import (
	"context"

	"github.com/user/stocknews-service/internal/entity"
)

// StockCatalogRepository provides the reference catalog of listed
// securities scanned for mentions.
type StockCatalogRepository interface {
	List(ctx context.Context) ([]entity.StockEntity, error)
}
