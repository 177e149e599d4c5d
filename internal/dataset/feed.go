package dataset

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/huntiq/lightcharts/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Feed Activity Source
// ════════════════════════════════════════════════════════════════════

// FeedActivity fetches an RSS/Atom feed and buckets item publication
// times into a per-day count series covering the last `days` days,
// oldest first — the "community activity" panel of the dashboard.
func FeedActivity(ctx context.Context, url string, days int) (*models.Dataset, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", url, err)
	}
	return bucketFeedActivity(feed, time.Now(), days), nil
}

// dayOf returns midnight of t's calendar day in t's location.
// Truncate would cut on UTC epoch boundaries instead, which shifts
// items near midnight into the wrong day outside UTC.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// bucketFeedActivity counts feed items per calendar day, in now's
// location. Items without a parsed publication date, or outside the
// window, are ignored.
func bucketFeedActivity(feed *gofeed.Feed, now time.Time, days int) *models.Dataset {
	if days <= 0 {
		days = 7
	}

	today := dayOf(now)
	start := today.AddDate(0, 0, -(days - 1))

	counts := make([]float64, days)
	for _, item := range feed.Items {
		ts := item.PublishedParsed
		if ts == nil {
			ts = item.UpdatedParsed
		}
		if ts == nil {
			continue
		}
		day := dayOf(ts.In(now.Location()))
		// Round instead of truncate so DST-shortened days still land
		// on the right bucket.
		offset := int(math.Round(day.Sub(start).Hours() / 24))
		if offset < 0 || offset >= days {
			continue
		}
		counts[offset]++
	}

	series := make(models.Series, days)
	for i := range counts {
		series[i] = models.DataPoint{
			Name:  start.AddDate(0, 0, i).Format("Jan 02"),
			Value: counts[i],
		}
	}

	title := feed.Title
	if title == "" {
		title = "Feed Activity"
	}
	return &models.Dataset{
		Name:   "feed-activity",
		Title:  title,
		Chart:  models.ChartArea,
		Series: series,
	}
}
