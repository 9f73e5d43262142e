package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

// SessionService manages open tabs. Sessions are opened implicitly by the
// first dine-in submission for a table and closed here once settled.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// ListOpen returns the open sessions with their orders, newest first.
// Closed sessions disappear immediately.
func (s *SessionService) ListOpen() ([]models.TableSession, error) {
	var sessions []models.TableSession
	err := s.DB.
		Preload("Orders.Items.Options").
		Preload("Orders.Items.Addons").
		Where("status = ?", models.SessionStatusOpen).
		Order("opened_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, &apperr.TransportError{Op: "list open sessions", Err: err}
	}
	return sessions, nil
}

// Close closes a tab. Every order in the session must be cancelled or
// paid; otherwise UnsettledOrdersError lists the blockers and the session
// stays open. The check runs inside the same transaction that flips the
// status, so a concurrent append cannot slip in.
func (s *SessionService) Close(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Orders").First(&session, sessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return &apperr.TransportError{Op: "load table session", Err: err}
		}
		if !session.Open() {
			return &apperr.SessionClosedError{SessionID: session.ID}
		}

		if unsettled := session.UnsettledOrderIDs(); len(unsettled) > 0 {
			return &apperr.UnsettledOrdersError{SessionID: session.ID, OrderIDs: unsettled}
		}

		now := time.Now()
		session.Status = models.SessionStatusClosed
		session.ClosedAt = &now
		if err := tx.Model(&session).Updates(map[string]interface{}{
			"status":    models.SessionStatusClosed,
			"closed_at": now,
		}).Error; err != nil {
			return &apperr.TransportError{Op: "close table session", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	live.BroadcastSessionUpdate(session)
	return &session, nil
}
