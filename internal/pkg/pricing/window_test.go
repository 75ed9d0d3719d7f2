package pricing

import (
	"testing"
	"time"

	"github.com/keysai/keysai/app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{name: "plain", start: date(2024, time.January, 15), months: 2, want: date(2024, time.March, 15)},
		{name: "year rollover", start: date(2024, time.November, 10), months: 3, want: date(2025, time.February, 10)},
		{name: "clamp to leap february", start: date(2024, time.January, 31), months: 1, want: date(2024, time.February, 29)},
		{name: "clamp to short february", start: date(2025, time.January, 31), months: 1, want: date(2025, time.February, 28)},
		{name: "clamp to thirty days", start: date(2024, time.March, 31), months: 1, want: date(2024, time.April, 30)},
		{name: "twelve months", start: date(2024, time.February, 29), months: 12, want: date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.start, tt.months); !got.Equal(tt.want) {
				t.Fatalf("AddMonths(%s, %d) = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestAddMonthsPreservesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 31, 13, 45, 30, 0, time.UTC)
	got := AddMonths(start, 1)
	want := time.Date(2024, time.February, 29, 13, 45, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("AddMonths = %s, want %s", got, want)
	}
}

func TestPromoEndFor(t *testing.T) {
	start := date(2024, time.January, 15)

	withPromo := &models.Agent{BasePriceCents: 30000, PromoPriceCents: int64Ptr(25000), PromoDurationMonths: intPtr(2)}
	end := PromoEndFor(withPromo, start)
	if end == nil || !end.Equal(date(2024, time.March, 15)) {
		t.Fatalf("expected promo end 2024-03-15, got %v", end)
	}

	withoutPromo := &models.Agent{BasePriceCents: 45000}
	if end := PromoEndFor(withoutPromo, start); end != nil {
		t.Fatalf("expected nil promo end, got %v", end)
	}
}
