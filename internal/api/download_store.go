package api

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type resultDownload struct {
	filePath  string
	fileName  string
	expiresAt time.Time
}

// resultDownloadStore 一次性下载令牌表，带过期清理
type resultDownloadStore struct {
	mu    sync.Mutex
	items map[string]resultDownload
}

func newResultDownloadStore() *resultDownloadStore {
	return &resultDownloadStore{
		items: make(map[string]resultDownload),
	}
}

func (s *resultDownloadStore) put(filePath, fileName string, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = newRandomToken(24)
	s.items[token] = resultDownload{
		filePath:  filePath,
		fileName:  fileName,
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *resultDownloadStore) get(token string) (resultDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	v, ok := s.items[token]
	if !ok {
		return resultDownload{}, false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return resultDownload{}, false
	}
	return v, true
}

func (s *resultDownloadStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *resultDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
