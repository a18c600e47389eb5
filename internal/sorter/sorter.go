// Package sorter provides named ordering strategies for resource traversal.
//
// A site node resolves `walk_resources_sorted_by_<name>` style requests
// against this registry. Unknown names are simply absent; callers fall back
// to unsorted traversal.
package sorter

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Item is the view of a resource a strategy sorts by.
type Item interface {
	SortName() string
	SortTitle() string
	MetaField(key string) (string, bool)
}

// Strategy orders items in place.
type Strategy func(items []Item)

// Registry maps strategy names to strategies.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry pre-populated with the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register("name", byName)
	r.Register("title", byTitle)
	r.Register("created", byCreated)
	return r
}

// Register adds or replaces a strategy.
func (r *Registry) Register(name string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[name] = s
}

// Lookup returns the named strategy, or false if none is registered.
func (r *Registry) Lookup(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide strategy registry.
func Default() *Registry { return defaultRegistry }

func byName(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortName() < items[j].SortName()
	})
}

func byTitle(items []Item) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(items[i].SortTitle(), items[j].SortTitle()) < 0
	})
}

// createdFormats are accepted date layouts for the created/date meta fields.
var createdFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func byCreated(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := createdAt(items[i])
		tj, jok := createdAt(items[j])
		if iok != jok {
			// Undated resources sort last.
			return iok
		}
		if !iok {
			return items[i].SortName() < items[j].SortName()
		}
		return ti.Before(tj)
	})
}

func createdAt(item Item) (time.Time, bool) {
	raw, ok := item.MetaField("created")
	if !ok {
		raw, ok = item.MetaField("date")
	}
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range createdFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
