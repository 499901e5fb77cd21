package storage

import "sync"

// Table names used for change notification.
const (
	TableCategories   = "categories"
	TableTransactions = "transactions"
)

// notifier is a per-table publish/subscribe registry. Each successful write
// signals every watcher registered for the touched table. Signal channels
// have capacity one and sends never block, so rapid writes coalesce into a
// single pending signal and writers never wait on subscribers.
type notifier struct {
	watchers map[int]*watcher
	mu       sync.Mutex
	nextID   int
	closed   bool
}

type watcher struct {
	ch     chan struct{}
	tables map[string]bool
}

func newNotifier() *notifier {
	return &notifier{watchers: make(map[int]*watcher)}
}

// subscribe registers a watcher for the given tables (all tables when none
// are named) and returns its signal channel plus an idempotent cancel func.
func (n *notifier) subscribe(tables ...string) (<-chan struct{}, func()) {
	w := &watcher{
		ch:     make(chan struct{}, 1),
		tables: make(map[string]bool, len(tables)),
	}
	for _, t := range tables {
		w.tables[t] = true
	}

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	if n.closed {
		close(w.ch)
	} else {
		n.watchers[id] = w
	}
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if _, ok := n.watchers[id]; ok {
				delete(n.watchers, id)
				close(w.ch)
			}
			n.mu.Unlock()
		})
	}
	return w.ch, cancel
}

// notify signals every watcher interested in table.
func (n *notifier) notify(table string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, w := range n.watchers {
		if len(w.tables) > 0 && !w.tables[table] {
			continue
		}
		select {
		case w.ch <- struct{}{}:
		default: // a signal is already pending; coalesce
		}
	}
}

// closeAll drops every watcher. Used on storage close.
func (n *notifier) closeAll() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for id, w := range n.watchers {
		delete(n.watchers, id)
		close(w.ch)
	}
}
