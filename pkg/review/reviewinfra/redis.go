package reviewinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wesleysanjose/ocr/pkg/kernel"
	"github.com/wesleysanjose/ocr/pkg/logx"
	"github.com/wesleysanjose/ocr/pkg/review"
)

// CachedPageReader fronts a PageReader with a redis cache. OCR page text
// is immutable once written, so cached entries only expire, never
// invalidate. Cache failures degrade to the inner reader.
type CachedPageReader struct {
	inner  review.PageReader
	client *redis.Client
	ttl    time.Duration
}

func NewCachedPageReader(inner review.PageReader, client *redis.Client, ttl time.Duration) *CachedPageReader {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedPageReader{inner: inner, client: client, ttl: ttl}
}

func pageCacheKey(caseID kernel.CaseID, docID kernel.DocumentID, page int) string {
	return fmt.Sprintf("ocr:page:%s:%s:%d", caseID.String(), docID.String(), page)
}

func (c *CachedPageReader) ReadPage(ctx context.Context, caseID kernel.CaseID, docID kernel.DocumentID, page int) (string, error) {
	key := pageCacheKey(caseID, docID, page)

	text, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return text, nil
	}
	if err != redis.Nil {
		logx.WithError(err).WithField("key", key).Warn("Page cache read failed, falling through")
	}

	text, err = c.inner.ReadPage(ctx, caseID, docID, page)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
		logx.WithError(err).WithField("key", key).Warn("Page cache write failed")
	}
	return text, nil
}
