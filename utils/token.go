package utils

import (
	"sync"
	"time"
)

// Blacklist menyimpan token yang sudah logout sampai waktu kadaluarsanya.
type Blacklist struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
	now    func() time.Time
}

func NewBlacklist() *Blacklist {
	return &Blacklist{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (b *Blacklist) Add(token string, until time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pruneLocked()
	b.tokens[token] = until
}

func (b *Blacklist) IsBlacklisted(token string) bool {
	b.mu.RLock()
	expiry, exists := b.tokens[token]
	b.mu.RUnlock()

	return exists && b.now().Before(expiry)
}

func (b *Blacklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tokens)
}

// Hapus token kadaluarsa; dipanggil saat Add supaya map tidak tumbuh terus.
func (b *Blacklist) pruneLocked() {
	now := b.now()
	for token, expiry := range b.tokens {
		if !now.Before(expiry) {
			delete(b.tokens, token)
		}
	}
}
