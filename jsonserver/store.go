package jsonserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
)

var errDuplicateID = errors.New("duplicate id")

// Item is one stored record. Numbers are kept as json.Number.
type Item map[string]any

// Store holds collections of items keyed by resource name. It is safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Item
}

// NewStore creates a store seeded with data. The seed is copied.
func NewStore(seed map[string][]Item) *Store {
	s := &Store{collections: make(map[string][]Item, len(seed))}
	for name, items := range seed {
		copied := make([]Item, 0, len(items))
		for _, it := range items {
			copied = append(copied, cloneItem(it))
		}
		s.collections[name] = copied
	}
	return s
}

// LoadStore reads a json-server style database: a JSON object mapping each
// resource name to an array of objects.
func LoadStore(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var seed map[string][]Item
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("jsonserver: decode database: %w", err)
	}
	return NewStore(seed), nil
}

// LoadStoreFile reads a database file. See LoadStore.
func LoadStoreFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonserver: read database: %w", err)
	}
	return LoadStore(bytes.NewReader(data))
}

// Resources returns the sorted collection names.
func (s *Store) Resources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns copies of all items of a collection and whether it exists.
func (s *Store) List(resource string) ([]Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.collections[resource]
	if !ok {
		return nil, false
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out, true
}

// Get returns a copy of the item with the given id.
func (s *Store) Get(resource, id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(resource, id)
	if i < 0 {
		return nil, false
	}
	return cloneItem(s.collections[resource][i]), true
}

// Create appends item to a collection, creating the collection if needed.
// Without an id the next integer id is assigned. A duplicate id is an error.
func (s *Store) Create(resource string, item Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item = cloneItem(item)
	if raw, ok := item["id"]; ok && raw != nil {
		if s.indexOf(resource, valueString(raw)) >= 0 {
			return nil, fmt.Errorf("%w: %s %s", errDuplicateID, resource, valueString(raw))
		}
	} else {
		item["id"] = json.Number(strconv.FormatUint(s.nextID(resource), 10))
	}
	s.collections[resource] = append(s.collections[resource], item)
	return cloneItem(item), nil
}

// Replace swaps the item with the given id for item, keeping the stored id.
func (s *Store) Replace(resource, id string, item Item) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(resource, id)
	if i < 0 {
		return nil, false
	}
	item = cloneItem(item)
	item["id"] = s.collections[resource][i]["id"]
	s.collections[resource][i] = item
	return cloneItem(item), true
}

// Delete removes the item with the given id.
func (s *Store) Delete(resource, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(resource, id)
	if i < 0 {
		return false
	}
	items := s.collections[resource]
	s.collections[resource] = append(items[:i:i], items[i+1:]...)
	return true
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(resource, id string) int {
	for i, it := range s.collections[resource] {
		if valueString(it["id"]) == id {
			return i
		}
	}
	return -1
}

// nextID must be called with the lock held.
func (s *Store) nextID(resource string) uint64 {
	var highest uint64
	for _, it := range s.collections[resource] {
		if n, err := strconv.ParseUint(valueString(it["id"]), 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func cloneItem(it Item) Item {
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}

// valueString renders a scalar the way it appears in a URL or query string.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
