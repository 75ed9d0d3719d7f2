package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/keysai/keysai/app/models"
	"github.com/keysai/keysai/app/repository"
	"github.com/keysai/keysai/internal/pkg/cache"
	"github.com/keysai/keysai/internal/pkg/database"
)

const (
	CacheKeyUsersTotal         = "statistics:users:total"
	CacheKeySubscriptionsTotal = "statistics:subscriptions:total"
	CacheKeySubscriptionsPromo = "statistics:subscriptions:promo"
	CacheKeyMonthlyRevenue     = "statistics:revenue:monthly_cents"
	CacheExpiration            = 30 * time.Minute
)

// Data holds the aggregates rendered on the admin dashboard.
type Data struct {
	TotalUsers          int
	ActiveSubscriptions int
	PromoSubscriptions  int
	MonthlyRevenueCents int64
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// UpdateCacheIfNeeded refreshes the cache when the refresh interval elapsed.
// Called on dashboard reads; there is no background scheduler.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) < cacheUpdateInterval {
		return
	}
	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("Failed to update statistics cache: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// UpdateStatisticsCache recomputes all aggregates and writes them to Redis.
// Mutating handlers call this in a goroutine after a successful write.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var activeSubs int64
	if err := db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusActive).
		Count(&activeSubs).Error; err != nil {
		return err
	}

	promoSubs, err := repository.GetGlobalRepositories().Subscription.CountWithPromoWindow()
	if err != nil {
		return err
	}

	// Monthly recurring revenue: promo price while the window is open,
	// base price otherwise. Mirrors the per-subscription classifier.
	var mrrCents int64
	row := db.Raw(`
		SELECT COALESCE(SUM(CASE
			WHEN s.promo_end_date IS NOT NULL AND s.promo_end_date > NOW() THEN COALESCE(a.promo_price_cents, a.base_price_cents)
			ELSE a.base_price_cents
		END), 0)
		FROM subscriptions s
		JOIN agents a ON a.id = s.agent_id
		WHERE s.status = ?`, models.SubscriptionStatusActive).Row()
	if err := row.Scan(&mrrCents); err != nil {
		return err
	}

	if err := cache.Set(CacheKeyUsersTotal, totalUsers, CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeySubscriptionsTotal, activeSubs, CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeySubscriptionsPromo, promoSubs, CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyMonthlyRevenue, strconv.FormatInt(mrrCents, 10), CacheExpiration)
}

// GetStatistics reads the cached aggregates, refreshing the cache if a key is
// missing or expired.
func GetStatistics() Data {
	data, ok := readCached()
	if ok {
		return data
	}

	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("Failed to rebuild statistics cache: %v", err)
		return Data{}
	}

	data, _ = readCached()
	return data
}

func readCached() (Data, bool) {
	totalUsers, err := cache.GetInt(CacheKeyUsersTotal)
	if err != nil {
		return Data{}, false
	}
	activeSubs, err := cache.GetInt(CacheKeySubscriptionsTotal)
	if err != nil {
		return Data{}, false
	}
	promoSubs, err := cache.GetInt(CacheKeySubscriptionsPromo)
	if err != nil {
		return Data{}, false
	}
	mrrCents, err := cache.GetInt64(CacheKeyMonthlyRevenue)
	if err != nil {
		return Data{}, false
	}

	return Data{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		PromoSubscriptions:  promoSubs,
		MonthlyRevenueCents: mrrCents,
	}, true
}
