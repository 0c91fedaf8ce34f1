package store

import (
	"testing"

	"github.com/contribute-dao/weft/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// base is the root of our data, we can layer on top and
	// all queries should work
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assertGet(t, base, k, nil)
	require.NoError(t, base.Set(k, v))
	assertGet(t, base, k, v)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assertGet(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGet(t, cache, k2, v2)
	assertGet(t, base, k2, nil)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assertGet(t, base, k, v)
	assertGet(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assertGet(t, c2, k, v)
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assertGet(t, base, k3, nil)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assertGet(t, c3, k, nil)
	require.NoError(t, c3.Write())

	// make sure it commits proper
	assertGet(t, base, k, nil)
	assertGet(t, base, k2, v2)
	assertGet(t, base, k3, nil)
}

func assertGet(t *testing.T, kv KVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Set([]byte("bb"), []byte("cache-bb")))
	require.NoError(t, cache.Set([]byte("f"), []byte("cache-f")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range ascending": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("base-a")},
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("c"), Value: []byte("cache-c")},
				{Key: []byte("d"), Value: []byte("base-d")},
				{Key: []byte("e"), Value: []byte("base-e")},
				{Key: []byte("f"), Value: []byte("cache-f")},
			},
		},
		"bounded range ascending": {
			start: []byte("b"),
			end:   []byte("e"),
			want: []Model{
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("c"), Value: []byte("cache-c")},
				{Key: []byte("d"), Value: []byte("base-d")},
			},
		},
		"bounded range descending": {
			start:   []byte("a"),
			end:     []byte("d"),
			reverse: true,
			want: []Model{
				{Key: []byte("c"), Value: []byte("cache-c")},
				{Key: []byte("bb"), Value: []byte("cache-bb")},
				{Key: []byte("a"), Value: []byte("base-a")},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Release()

			var got []Model
			for {
				k, v, err := it.Next()
				if errors.ErrIteratorDone.Is(err) {
					break
				}
				require.NoError(t, err)
				got = append(got, Model{Key: k, Value: v})
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("vault:trig"), []byte("1")))

	block := base.CacheWrap()
	tx := block.CacheWrap()
	require.NoError(t, tx.Set([]byte("vault:nft"), []byte("2")))
	require.NoError(t, tx.Delete([]byte("vault:trig")))
	assertGet(t, block, []byte("vault:nft"), nil)
	assertGet(t, block, []byte("vault:trig"), []byte("1"))

	// a set after a delete of the same key wins
	require.NoError(t, tx.Set([]byte("vault:trig"), []byte("3")))
	require.NoError(t, tx.Write())
	assertGet(t, block, []byte("vault:trig"), []byte("3"))
	assertGet(t, base, []byte("vault:nft"), nil)

	require.NoError(t, block.Write())
	assertGet(t, base, []byte("vault:nft"), []byte("2"))
	assertGet(t, base, []byte("vault:trig"), []byte("3"))
}
