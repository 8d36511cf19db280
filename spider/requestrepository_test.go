package spider

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReqHistory(t *testing.T) {
	h := NewReqHistoryRepository()
	a := NewRequest("https://www.wannasurf.com/spot/Europe/France/", "France", 1)

	assert.False(t, h.HasVisited(a))
	assert.True(t, h.TryVisit(a))
	assert.False(t, h.TryVisit(a))
	assert.True(t, h.HasVisited(a))

	// 首次失败允许重试，且会清除访问标记
	assert.True(t, h.AddFailures(a))
	assert.False(t, h.HasVisited(a))
	assert.False(t, h.AddFailures(a))

	h.DeleteFailures(a)
	assert.True(t, h.AddFailures(a))
}

func TestTryVisitConcurrent(t *testing.T) {
	h := NewReqHistoryRepository()
	req := NewRequest("https://www.wannasurf.com/spot/Africa/", "Africa", 1)

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h.TryVisit(req) {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}
