package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/stocknews-service/internal/entity"
)

// ArticleStoreImpl provides a concrete implementation of the
// ArticleStoreRepository interface using PostgreSQL. The news table carries
// a unique constraint on news_id; the batch insert treats a conflicting row
// as a no-op so a concurrent gateway inserting the same article is harmless.
type ArticleStoreImpl struct {
	db *pgxpool.Pool
}

// NewArticleStore creates a new instance of ArticleStoreImpl.
func NewArticleStore(db *pgxpool.Pool) *ArticleStoreImpl {
	return &ArticleStoreImpl{db: db}
}

const articleColumns = `news_id, url, title, content, summary, keyword, publish_at, category_name, category_id`

// FindExistingNewsIDs returns the subset of the given news IDs already in
// the store.
func (r *ArticleStoreImpl) FindExistingNewsIDs(ctx context.Context, newsIDs []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{})
	if len(newsIDs) == 0 {
		return existing, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT news_id FROM news WHERE news_id = ANY($1);`, newsIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = struct{}{}
	}
	return existing, rows.Err()
}

// FindByContent reports whether a document with the exact substantive tuple
// already exists, regardless of its news_id.
func (r *ArticleStoreImpl) FindByContent(ctx context.Context, article *entity.ArticleRecord) (bool, error) {
	query := `
		SELECT 1 FROM news
		WHERE url = $1 AND title = $2 AND content = $3 AND keyword = $4 AND publish_at = $5
		LIMIT 1;
	`
	var one int
	err := r.db.QueryRow(ctx, query,
		article.URL,
		article.Title,
		article.Content,
		article.Keyword,
		article.PublishAt,
	).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertMany inserts the batch in one round trip and returns the assigned
// row IDs. Rows losing a news_id conflict return no ID and are skipped.
func (r *ArticleStoreImpl) InsertMany(ctx context.Context, articles []*entity.ArticleRecord) ([]int64, error) {
	if len(articles) == 0 {
		return []int64{}, nil
	}

	query := `
		INSERT INTO news (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (news_id) DO NOTHING
		RETURNING id;
	`
	batch := &pgx.Batch{}
	for _, a := range articles {
		batch.Queue(query,
			a.NewsID, a.URL, a.Title, a.Content, a.Summary,
			a.Keyword, a.PublishAt, a.CategoryName, a.CategoryID)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	ids := make([]int64, 0, len(articles))
	for range articles {
		var id int64
		err := results.QueryRow().Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the unique-key race; the article is already stored.
			continue
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FindByNewsIDs retrieves articles by their business keys.
func (r *ArticleStoreImpl) FindByNewsIDs(ctx context.Context, newsIDs []int64) ([]*entity.ArticleRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+articleColumns+` FROM news WHERE news_id = ANY($1) ORDER BY publish_at DESC;`,
		newsIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// FindBetween retrieves articles published inside [start, end], newest
// first.
func (r *ArticleStoreImpl) FindBetween(ctx context.Context, start, end time.Time) ([]*entity.ArticleRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+articleColumns+` FROM news WHERE publish_at BETWEEN $1 AND $2 ORDER BY publish_at DESC;`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// DeleteByNewsIDs removes articles by business key and returns the number
// of rows deleted.
func (r *ArticleStoreImpl) DeleteByNewsIDs(ctx context.Context, newsIDs []int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE news_id = ANY($1);`, newsIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanArticles(rows pgx.Rows) ([]*entity.ArticleRecord, error) {
	var articles []*entity.ArticleRecord
	for rows.Next() {
		var a entity.ArticleRecord
		if err := rows.Scan(
			&a.NewsID,
			&a.URL,
			&a.Title,
			&a.Content,
			&a.Summary,
			&a.Keyword,
			&a.PublishAt,
			&a.CategoryName,
			&a.CategoryID,
		); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}
