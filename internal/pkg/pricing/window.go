package pricing

import (
	"time"

	"github.com/keysai/keysai/app/models"
)

// AddMonths advances t by whole calendar months, clamping the day to the last
// day of the target month: Jan 31 + 1 month is Feb 29 in a leap year and
// Feb 28 otherwise, never Mar 2. Time of day and location are preserved.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// PromoEndFor computes the promo-expiry instant for a subscription started at
// start against the given catalog entry. Entries without a complete promo
// yield nil, i.e. no promo window.
func PromoEndFor(agent *models.Agent, start time.Time) *time.Time {
	if !agent.HasPromo() {
		return nil
	}
	end := AddMonths(start, *agent.PromoDurationMonths)
	return &end
}
