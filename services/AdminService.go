package services

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminSecret is used when no admin password hash is configured.
// It gates the admin UI; it is not an authorization boundary.
const DefaultAdminSecret = "tommy2025"

const adminHashCost = 8

var defaultAdminHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminSecret), adminHashCost)
	if err != nil {
		panic(err)
	}
	return h
})

// HashAdminPassword returns a bcrypt hash suitable for admin.password_hash.
func HashAdminPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	return string(h), err
}

// AdminLogin reports whether password matches. On success the admin flag is
// persisted and the order watcher is started.
func (s *Store) AdminLogin(password string) bool {
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		s.log.Info("admin login rejected")
		return false
	}
	s.mu.Lock()
	s.adminAuthenticated = true
	s.startWatcherLocked()
	s.mu.Unlock()
	s.persist()
	s.log.Info("admin logged in")
	return true
}

func (s *Store) AdminLogout() {
	s.mu.Lock()
	s.adminAuthenticated = false
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	s.persist()
	s.log.Info("admin logged out")
}

func (s *Store) IsAdminAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminAuthenticated
}

func (s *Store) startWatcherLocked() {
	if s.watcher != nil {
		return
	}
	s.watcher = NewOrderWatcher(s.pollInterval, s.refreshOrders, s.onNewOrders, s.log)
	s.watcher.Start()
	s.log.Debug("order watcher started", zap.Duration("interval", s.pollInterval))
}
