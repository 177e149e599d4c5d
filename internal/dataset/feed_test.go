package dataset

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/huntiq/lightcharts/pkg/models"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>HUNTIQ Community</title>
  <item>
    <title>Season opener</title>
    <pubDate>Mon, 17 Aug 2026 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>New territory listed</title>
    <pubDate>Mon, 17 Aug 2026 15:30:00 +0000</pubDate>
  </item>
  <item>
    <title>Harvest report</title>
    <pubDate>Wed, 19 Aug 2026 11:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Stale post outside the window</title>
    <pubDate>Tue, 01 Jul 2025 11:00:00 +0000</pubDate>
  </item>
  <item>
    <title>No date</title>
  </item>
</channel>
</rss>`

func parseSample(t *testing.T) *gofeed.Feed {
	t.Helper()
	feed, err := gofeed.NewParser().ParseString(sampleRSS)
	if err != nil {
		t.Fatalf("parsing sample feed: %v", err)
	}
	return feed
}

func TestBucketFeedActivity(t *testing.T) {
	feed := parseSample(t)
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	ds := bucketFeedActivity(feed, now, 7)
	if ds.Title != "HUNTIQ Community" {
		t.Errorf("title = %s", ds.Title)
	}
	if ds.Chart != models.ChartArea {
		t.Errorf("chart = %s, want area", ds.Chart)
	}
	if len(ds.Series) != 7 {
		t.Fatalf("series length = %d, want 7", len(ds.Series))
	}

	// Window is Aug 15..21; Aug 17 has two items, Aug 19 one.
	byDay := map[string]float64{}
	var total float64
	for _, p := range ds.Series {
		byDay[p.Name] = p.Value
		total += p.Value
	}
	if byDay["Aug 17"] != 2 {
		t.Errorf("Aug 17 = %v, want 2", byDay["Aug 17"])
	}
	if byDay["Aug 19"] != 1 {
		t.Errorf("Aug 19 = %v, want 1", byDay["Aug 19"])
	}
	if total != 3 {
		t.Errorf("total = %v, want 3 (stale and dateless items ignored)", total)
	}

	// Oldest day first.
	if ds.Series[0].Name != "Aug 15" || ds.Series[6].Name != "Aug 21" {
		t.Errorf("window = %s..%s, want Aug 15..Aug 21", ds.Series[0].Name, ds.Series[6].Name)
	}
}

func TestBucketFeedActivity_LocalMidnight(t *testing.T) {
	// An item published shortly after local midnight is still the same
	// UTC day as the evening before; bucketing must follow the local
	// calendar day, not UTC.
	const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>HUNTIQ Community</title>
  <item>
    <title>Night post</title>
    <pubDate>Fri, 21 Aug 2026 00:30:00 +0200</pubDate>
  </item>
</channel>
</rss>`
	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("parsing feed: %v", err)
	}

	loc := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2026, 8, 21, 1, 0, 0, 0, loc)

	ds := bucketFeedActivity(feed, now, 7)
	if got := ds.Series[6].Name; got != "Aug 21" {
		t.Fatalf("last bucket = %s, want Aug 21", got)
	}
	if got := ds.Series[6].Value; got != 1 {
		t.Errorf("Aug 21 = %v, want 1 (item is Aug 20 in UTC but Aug 21 locally)", got)
	}
	if got := ds.Series[5].Value; got != 0 {
		t.Errorf("Aug 20 = %v, want 0", got)
	}
}

func TestBucketFeedActivity_DefaultWindow(t *testing.T) {
	feed := parseSample(t)
	ds := bucketFeedActivity(feed, time.Now(), 0)
	if len(ds.Series) != 7 {
		t.Errorf("zero days should default to a week, got %d", len(ds.Series))
	}
}

func TestBucketFeedActivity_EmptyFeed(t *testing.T) {
	ds := bucketFeedActivity(&gofeed.Feed{}, time.Now(), 5)
	if len(ds.Series) != 5 {
		t.Fatalf("series length = %d, want 5", len(ds.Series))
	}
	for _, p := range ds.Series {
		if p.Value != 0 {
			t.Errorf("empty feed should bucket to zeros, got %v on %s", p.Value, p.Name)
		}
	}
	if ds.Title != "Feed Activity" {
		t.Errorf("fallback title = %s", ds.Title)
	}
}
