package interceptor

import (
	"encoding/json"
	"time"

	"github.com/viant/mcp-lambda/internal/collection"
)

// Entry holds raw tool arguments captured from the inbound stream
type Entry struct {
	Arguments  json.RawMessage
	RequestID  interface{}
	CaptureID  string
	CapturedAt time.Time
}

// Cache holds at most one pending entry per tool name; a newer capture replaces an older one
type Cache struct {
	entries *collection.SyncMap[string, *Entry]
}

// Put stores entry, returns true if it replaced an unconsumed one
func (c *Cache) Put(toolName string, entry *Entry) bool {
	_, replaced := c.entries.Swap(toolName, entry)
	return replaced
}

// Restore puts back a taken entry unless a newer capture already replaced it
func (c *Cache) Restore(toolName string, entry *Entry) bool {
	return c.entries.PutIfAbsent(toolName, entry)
}

// Get returns entry without consuming it
func (c *Cache) Get(toolName string) (*Entry, bool) {
	return c.entries.Get(toolName)
}

// Take returns and removes entry
func (c *Cache) Take(toolName string) (*Entry, bool) {
	return c.entries.Take(toolName)
}

// Delete removes entry
func (c *Cache) Delete(toolName string) {
	c.entries.Delete(toolName)
}

// Len returns number of pending entries
func (c *Cache) Len() int {
	return c.entries.Len()
}

// NewCache creates a cache
func NewCache() *Cache {
	return &Cache{entries: collection.NewSyncMap[string, *Entry]()}
}
