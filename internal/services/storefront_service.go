// internal/services/storefront_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lojinha/lojinha-backend/internal/cache"
	"github.com/lojinha/lojinha-backend/internal/config"
	"github.com/lojinha/lojinha-backend/internal/models"
)

var ErrStorefrontNotFound = errors.New("storefront not found")

// StorefrontService owns the durable storefront records and the in-memory
// draft sessions editing them. The database row is canonical; a session's
// local draft must converge to it on flush or be discarded.
type StorefrontService struct {
	db        *gorm.DB
	cfg       *config.Config
	pageCache *cache.PageCache

	mu       sync.Mutex
	sessions map[uuid.UUID]*DraftSession
}

func NewStorefrontService(db *gorm.DB, cfg *config.Config, pageCache *cache.PageCache) *StorefrontService {
	s := &StorefrontService{
		db:        db,
		cfg:       cfg,
		pageCache: pageCache,
		sessions:  make(map[uuid.UUID]*DraftSession),
	}

	go s.cleanupSessions()

	return s
}

// GetByUserID loads and normalizes the owner's storefront.
func (s *StorefrontService) GetByUserID(userID uuid.UUID) (*models.Storefront, error) {
	var storefront models.Storefront
	if err := s.db.Where("user_id = ?", userID).First(&storefront).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStorefrontNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	storefront.Normalize()
	return &storefront, nil
}

// GetByUsername loads an active storefront for public serving, consulting the
// page cache first.
func (s *StorefrontService) GetByUsername(ctx context.Context, username string) (*models.Storefront, error) {
	if cached, err := s.pageCache.GetStorefront(ctx, username); err != nil {
		logrus.WithError(err).Warn("Page cache read failed, falling back to database")
	} else if cached != nil {
		return cached, nil
	}

	var storefront models.Storefront
	if err := s.db.Where("username = ? AND is_active = ?", username, true).First(&storefront).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStorefrontNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	storefront.Normalize()

	if err := s.pageCache.SetStorefront(ctx, &storefront); err != nil {
		logrus.WithError(err).Warn("Page cache write failed")
	}

	return &storefront, nil
}

// Session returns the draft session for a user, creating one from the stored
// record on first use.
func (s *StorefrontService) Session(userID uuid.UUID) (*DraftSession, error) {
	s.mu.Lock()
	if session, ok := s.sessions[userID]; ok {
		s.mu.Unlock()
		return session, nil
	}
	s.mu.Unlock()

	storefront, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have created the session meanwhile.
	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}

	editor := NewConfigEditor(storefront, s.persist)
	session := newDraftSession(editor, time.Duration(s.cfg.Editor.DebounceMillis)*time.Millisecond)
	s.sessions[userID] = session
	return session, nil
}

// Refresh reloads the stored record and resynchronizes the session to it.
// Pending local edits win over the refresh.
func (s *StorefrontService) Refresh(userID uuid.UUID) (*models.Storefront, error) {
	storefront, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		session.SyncUpstream(storefront)
		return session.Draft()
	}
	return storefront, nil
}

// CloseSession discards a user's draft session, dropping unsaved edits.
func (s *StorefrontService) CloseSession(userID uuid.UUID) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	if ok {
		delete(s.sessions, userID)
	}
	s.mu.Unlock()
	if ok {
		session.Close()
	}
}

// persist is the replace-style save at the persistence boundary: the whole
// aggregate is written, the canonical row is read back and the public-page
// cache entry is dropped.
func (s *StorefrontService) persist(storefront *models.Storefront) (*models.Storefront, error) {
	if err := s.db.Save(storefront).Error; err != nil {
		return nil, fmt.Errorf("failed to save storefront: %w", err)
	}

	var canonical models.Storefront
	if err := s.db.First(&canonical, storefront.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload storefront: %w", err)
	}
	canonical.Normalize()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.pageCache.Invalidate(ctx, canonical.Username); err != nil {
		logrus.WithError(err).Warn("Page cache invalidation failed")
	}

	return &canonical, nil
}

// cleanupSessions drops idle draft sessions. Unflushed edits in an expired
// session are discarded; the stored record stays canonical.
func (s *StorefrontService) cleanupSessions() {
	ttl := time.Duration(s.cfg.Editor.SessionTTLMinutes) * time.Minute
	for {
		time.Sleep(time.Minute)

		s.mu.Lock()
		var expired []*DraftSession
		for userID, session := range s.sessions {
			if time.Since(session.idleSince()) > ttl {
				expired = append(expired, session)
				delete(s.sessions, userID)
			}
		}
		s.mu.Unlock()

		for _, session := range expired {
			session.Close()
		}
	}
}
