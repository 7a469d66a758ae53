package cursesdrv

import (
	"fmt"
	"strings"

	"github.com/golang/groupcache/lru"
)

// PairPolicy selects how the pair cache recycles indices once every
// curses color pair is in use.
type PairPolicy int

const (
	// PolicySingleSlot keeps pairs 1..254 for the first colors requested
	// and recycles slot 255 for every color after that.
	PolicySingleSlot PairPolicy = iota
	// PolicyLRU recycles the least recently used pair.
	PolicyLRU
)

func (p PairPolicy) String() string {
	switch p {
	case PolicySingleSlot:
		return "single-slot"
	case PolicyLRU:
		return "lru"
	default:
		return "unknown"
	}
}

// ParsePairPolicy parses "single-slot" or "lru".
func ParsePairPolicy(s string) (PairPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single-slot", "single":
		return PolicySingleSlot, nil
	case "lru":
		return PolicyLRU, nil
	default:
		return PolicySingleSlot, fmt.Errorf("unknown pair policy %q", s)
	}
}

const (
	// maxPairs is the number of curses color pairs.
	maxPairs = 256
	// defaultKey is the quantized value of the terminal default color,
	// permanently bound to pair 0.
	defaultKey int16 = -1
)

// pairCache maps a quantized color to the curses pair index that renders
// it. Pair 0 is reserved for the default colors and never recycled.
type pairCache struct {
	policy PairPolicy
	index  map[int16]int16

	// recent orders non-reserved keys for PolicyLRU.
	recent  *lru.Cache
	evicted int16
}

func newPairCache(policy PairPolicy) *pairCache {
	c := &pairCache{
		policy: policy,
		index:  map[int16]int16{defaultKey: 0},
	}
	if policy == PolicyLRU {
		c.recent = lru.New(0)
		c.recent.OnEvicted = func(key lru.Key, value interface{}) {
			k := key.(int16)
			c.evicted = c.index[k]
			delete(c.index, k)
		}
	}
	return c
}

// get returns the pair for key. fresh reports that the index was newly
// bound (or rebound) to key, so the caller must initialize the pair.
func (c *pairCache) get(key int16) (idx int16, fresh bool) {
	if idx, ok := c.index[key]; ok {
		if c.recent != nil && key != defaultKey {
			c.recent.Get(key)
		}
		return idx, false
	}

	if used := len(c.index) - 1; used < maxPairs-1 {
		idx = int16(used + 1)
	} else {
		idx = c.evict()
	}

	c.index[key] = idx
	if c.recent != nil {
		c.recent.Add(key, idx)
	}
	return idx, true
}

func (c *pairCache) evict() int16 {
	if c.recent != nil {
		c.recent.RemoveOldest()
		return c.evicted
	}

	target := int16(maxPairs - 1)
	for k, v := range c.index {
		if v == target {
			delete(c.index, k)
			break
		}
	}
	return target
}

// size returns the number of bound non-reserved pairs.
func (c *pairCache) size() int {
	return len(c.index) - 1
}
