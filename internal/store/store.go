package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/myreads/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSearch = []byte("search")
)

// searchRecord is the stored form of one search response
type searchRecord struct {
	StoredAt int64         `json:"stored_at"` // Unix seconds
	Books    []domain.Book `json:"books"`
}

// SearchStore implements domain.SearchCache using BoltDB.
type SearchStore struct {
	db  *bolt.DB
	now func() time.Time

	mu    sync.RWMutex      // Protects memory cache
	cache map[string][]byte // In-memory cache for hot-path reads (promoted on access)
}

// NewSearchStore opens the cache under baseCacheDir, one database per server.
// An empty baseCacheDir gives a memory-only store.
func NewSearchStore(baseCacheDir, serverURL string) (*SearchStore, error) {
	if baseCacheDir == "" {
		return &SearchStore{now: time.Now, cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "myreads.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSearch)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SearchStore{db: db, now: time.Now, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// searchKey uses the exact term; the catalog may treat case and spacing as significant
func searchKey(term string) string {
	return "term:" + term
}

func (s *SearchStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Search responses ===

func (s *SearchStore) GetSearch(term string, maxAge time.Duration) ([]domain.Book, bool) {
	var rec searchRecord
	if !s.get(bucketSearch, searchKey(term), &rec) {
		return nil, false
	}
	if maxAge > 0 && s.now().Sub(time.Unix(rec.StoredAt, 0)) > maxAge {
		return nil, false
	}
	return rec.Books, true
}

func (s *SearchStore) SaveSearch(term string, books []domain.Book) error {
	return s.set(bucketSearch, searchKey(term), searchRecord{
		StoredAt: s.now().Unix(),
		Books:    books,
	})
}

func (s *SearchStore) InvalidateSearch(term string) {
	s.delete(bucketSearch, searchKey(term))
}

func (s *SearchStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSearch)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Generic helpers ===

func (s *SearchStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SearchStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *SearchStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}
