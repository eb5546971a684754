package places

import (
	"testing"
	"time"

	"github.com/alexanderramin/outing/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCenterCache_NormalisesCity(t *testing.T) {
	cc := NewCenterCache(time.Hour)
	lisbon := domain.Location{Lat: 38.7223, Lng: -9.1393}

	cc.Set("  Lisbon ", lisbon)

	got, ok := cc.Get("lisbon")
	assert.True(t, ok)
	assert.Equal(t, lisbon, got)

	_, ok = cc.Get("Porto")
	assert.False(t, ok)
	assert.Equal(t, 1, cc.Len())
}

func TestCenterCache_Expires(t *testing.T) {
	cc := NewCenterCache(10 * time.Millisecond)
	cc.Set("Lisbon", domain.Location{Lat: 1, Lng: 2})

	time.Sleep(30 * time.Millisecond)

	_, ok := cc.Get("Lisbon")
	assert.False(t, ok)
}
