package sheet

import (
	"sort"
	"sync"
)

// Locker serializes mutating operations per logical table. Reads stay
// unlocked — a stale read is acceptable, a stale index used for a write is
// not, so every writer takes the table lock and re-resolves its row index
// inside the critical section.
type Locker struct {
	mu     sync.Mutex
	tables map[string]*sync.Mutex
}

func NewLocker() *Locker {
	return &Locker{tables: make(map[string]*sync.Mutex)}
}

func (l *Locker) forTable(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.tables[name]
	if !ok {
		m = &sync.Mutex{}
		l.tables[name] = m
	}
	return m
}

// Lock acquires the locks for the given tables in name order (stable order
// prevents deadlock when two writers touch a primary/trash pair) and returns
// the release function.
func (l *Locker) Lock(tables ...string) func() {
	names := make([]string, len(tables))
	copy(names, tables)
	sort.Strings(names)

	held := make([]*sync.Mutex, 0, len(names))
	for i, name := range names {
		if i > 0 && name == names[i-1] {
			continue
		}
		m := l.forTable(name)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
