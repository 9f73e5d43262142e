package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

func TestCloseRequiresAllOrdersSettled(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	orders := NewOrderService(db, nil)
	sessions := NewSessionService(db)

	first, err := orders.Submit(burgerSubmission(t, product, "T5"))
	require.NoError(t, err)
	sessionID := *first.TableSessionID

	second, err := orders.SubmitToSession(sessionID, burgerSubmission(t, product, ""))
	require.NoError(t, err)

	// both unsettled: close must fail and list both
	_, err = sessions.Close(sessionID)
	var unsettled *apperr.UnsettledOrdersError
	require.ErrorAs(t, err, &unsettled)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, unsettled.OrderIDs)

	var session models.TableSession
	require.NoError(t, db.First(&session, sessionID).Error)
	assert.Equal(t, models.SessionStatusOpen, session.Status, "failed close leaves the session open")

	// settle one by payment, the other stays pending
	method := "cash"
	_, err = orders.SetPaymentStatus(first.ID, models.PaymentStatusPaid, &method)
	require.NoError(t, err)

	_, err = sessions.Close(sessionID)
	require.ErrorAs(t, err, &unsettled)
	assert.Equal(t, []uint{second.ID}, unsettled.OrderIDs)

	// cancelling the remaining order satisfies the invariant
	_, err = orders.SetStatus(second.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	closed, err := sessions.Close(sessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
}

func TestClosedSessionsLeaveOpenListImmediately(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	orders := NewOrderService(db, nil)
	sessions := NewSessionService(db)

	first, err := orders.Submit(burgerSubmission(t, product, "T6"))
	require.NoError(t, err)

	open, err := sessions.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "T6", open[0].TableLabel)
	require.Len(t, open[0].Orders, 1)

	method := "card"
	_, err = orders.SetPaymentStatus(first.ID, models.PaymentStatusPaid, &method)
	require.NoError(t, err)
	_, err = sessions.Close(*first.TableSessionID)
	require.NoError(t, err)

	open, err = sessions.ListOpen()
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAppendToClosedSessionFails(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	orders := NewOrderService(db, nil)
	sessions := NewSessionService(db)

	first, err := orders.Submit(burgerSubmission(t, product, "T7"))
	require.NoError(t, err)

	method := "cash"
	_, err = orders.SetPaymentStatus(first.ID, models.PaymentStatusPaid, &method)
	require.NoError(t, err)
	_, err = sessions.Close(*first.TableSessionID)
	require.NoError(t, err)

	_, err = orders.SubmitToSession(*first.TableSessionID, burgerSubmission(t, product, ""))
	var closed *apperr.SessionClosedError
	require.ErrorAs(t, err, &closed)
	assert.Equal(t, *first.TableSessionID, closed.SessionID)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 1, count, "rejected append persists nothing")
}

func TestCloseMissingSession(t *testing.T) {
	db := setupTestDB(t)
	sessions := NewSessionService(db)

	_, err := sessions.Close(4242)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDoubleCloseFails(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	orders := NewOrderService(db, nil)
	sessions := NewSessionService(db)

	first, err := orders.Submit(burgerSubmission(t, product, "T8"))
	require.NoError(t, err)

	method := "cash"
	_, err = orders.SetPaymentStatus(first.ID, models.PaymentStatusPaid, &method)
	require.NoError(t, err)
	_, err = sessions.Close(*first.TableSessionID)
	require.NoError(t, err)

	_, err = sessions.Close(*first.TableSessionID)
	var closed *apperr.SessionClosedError
	assert.ErrorAs(t, err, &closed)
}
