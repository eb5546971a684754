package places

import (
	"strings"
	"time"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/patrickmn/go-cache"
)

// CenterCache remembers geocoded city centres across requests.
type CenterCache struct {
	c *cache.Cache
}

// NewCenterCache creates a cache whose entries expire after ttl. Expired
// entries are swept hourly.
func NewCenterCache(ttl time.Duration) *CenterCache {
	return &CenterCache{c: cache.New(ttl, 1*time.Hour)}
}

func (cc *CenterCache) Get(city string) (domain.Location, bool) {
	v, ok := cc.c.Get(cityKey(city))
	if !ok {
		return domain.Location{}, false
	}
	loc, ok := v.(domain.Location)
	return loc, ok
}

func (cc *CenterCache) Set(city string, loc domain.Location) {
	cc.c.SetDefault(cityKey(city), loc)
}

func (cc *CenterCache) Len() int {
	return cc.c.ItemCount()
}

func cityKey(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
