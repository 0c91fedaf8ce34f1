package store

import (
	"bytes"

	"github.com/contribute-dao/weft/errors"
)

// mergeIterator walks the cached entries and the parent iterator side by
// side. A cached entry replaces the parent value of the same key, a
// deleted one removes it.
type mergeIterator struct {
	cached    []entry
	parent    Iterator
	ascending bool

	// next parent pair, valid when pending is set
	key, value []byte
	pending    bool
	exhausted  bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{cached: cached, parent: parent, ascending: ascending}
}

// fill loads the next parent pair unless one is pending.
func (m *mergeIterator) fill() error {
	if m.pending || m.exhausted {
		return nil
	}
	k, v, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.exhausted = true
		return nil
	case err != nil:
		return err
	}
	m.key, m.value, m.pending = k, v, true
	return nil
}

// cmp compares two keys in iteration order.
func (m *mergeIterator) cmp(a, b []byte) int {
	if m.ascending {
		return bytes.Compare(a, b)
	}
	return bytes.Compare(b, a)
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.fill(); err != nil {
			return nil, nil, err
		}
		if len(m.cached) == 0 {
			if !m.pending {
				return nil, nil, errors.ErrIteratorDone
			}
			m.pending = false
			return m.key, m.value, nil
		}

		next := m.cached[0]
		if m.pending {
			switch c := m.cmp(m.key, next.key); {
			case c < 0:
				m.pending = false
				return m.key, m.value, nil
			case c == 0:
				m.pending = false
			}
		}
		m.cached = m.cached[1:]
		if !next.deleted {
			return next.key, next.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.cached = nil
	m.parent.Release()
}
