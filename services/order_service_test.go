package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/pkg/apperr"
)

func TestSubmitOpensSessionAndPricesOrder(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	assert.Equal(t, models.OrderTypeDineIn, order.Type)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, order.TotalAmount.Equal(dec("51.00")), "got %s", order.TotalAmount)
	require.NotNil(t, order.TableSessionID)

	var session models.TableSession
	require.NoError(t, db.First(&session, *order.TableSessionID).Error)
	assert.Equal(t, "T1", session.TableLabel)
	assert.Equal(t, models.SessionStatusOpen, session.Status)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Burger", item.ProductName)
	assert.Equal(t, 2, item.Quantity)
	require.Len(t, item.Options, 1)
	assert.Equal(t, "Bread", item.Options[0].OptionName)
	assert.Equal(t, "Wheat", item.Options[0].ValueName)
	require.Len(t, item.Addons, 1)
	assert.Equal(t, "Bacon", item.Addons[0].IngredientName)
	assert.True(t, item.Addons[0].UnitPrice.Equal(dec("4.00")))
}

func TestSubmitFrozenSnapshotSurvivesCatalogChange(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	// reprice the catalog after the sale
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", dec("99.00")).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("name", "Mega Burger").Error)

	reloaded, err := svc.getOrder(order.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalAmount.Equal(dec("51.00")), "contract price must not move")
	assert.Equal(t, "Burger", reloaded.Items[0].ProductName)
}

func TestSubmitValidationLeavesNothingBehind(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	in := burgerSubmission(t, product, "T1")
	in.Items[0].Options = nil // required Bread unmet

	_, err := svc.Submit(in)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	var orders, sessions int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.TableSession{}).Count(&sessions)
	assert.Zero(t, orders)
	assert.Zero(t, sessions, "session rolled back with the failed order")
}

func TestSubmitRejectsEmptyAndMissingTable(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	_, err := svc.Submit(CreateOrderInput{Table: "T1"})
	assert.True(t, apperr.IsValidation(err))

	in := burgerSubmission(t, product, "")
	_, err = svc.Submit(in)
	assert.True(t, apperr.IsValidation(err))
}

func TestSubmitDeliveryOrder(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	in := burgerSubmission(t, product, "")
	in.Type = models.OrderTypeDelivery
	in.DeliveryName = strPtr("Ana")
	in.DeliveryAddress = strPtr("Rua A, 10")
	in.DeliveryPhone = strPtr("555-0100")
	fee := dec("5.00")
	in.DeliveryFee = &fee

	order, err := svc.Submit(in)
	require.NoError(t, err)
	assert.Equal(t, models.OrderTypeDelivery, order.Type)
	assert.Nil(t, order.TableSessionID)
	assert.True(t, order.TotalAmount.Equal(dec("56.00")), "51.00 + 5.00 fee, got %s", order.TotalAmount)
}

func TestSubmitToSessionAppends(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	first, err := svc.Submit(burgerSubmission(t, product, "T2"))
	require.NoError(t, err)

	second, err := svc.SubmitToSession(*first.TableSessionID, burgerSubmission(t, product, ""))
	require.NoError(t, err)
	assert.Equal(t, *first.TableSessionID, *second.TableSessionID)

	var count int64
	db.Model(&models.Order{}).Where("table_session_id = ?", *first.TableSessionID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestSetStatusTotality(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	statuses := []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			order, err := svc.Submit(burgerSubmission(t, product, "T1"))
			require.NoError(t, err)
			require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", from).Error)

			updated, err := svc.SetStatus(order.ID, to)
			require.NoError(t, err, "%s -> %s must be allowed", from, to)
			assert.Equal(t, to, updated.Status)
		}
	}
}

func TestSetStatusRejectsUnknownState(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	_, err = svc.SetStatus(order.ID, "vaporized")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	reloaded, err := svc.getOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status, "state unchanged on rejection")
}

func TestSetPaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	method := "cash"
	paid, err := svc.SetPaymentStatus(order.ID, models.PaymentStatusPaid, &method)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "cash", *paid.PaymentMethod)

	_, err = svc.SetPaymentStatus(order.ID, "iou", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestFinishOnlyFromTerminal(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	_, err = svc.Finish(order.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "pending order cannot be finished")

	_, err = svc.SetStatus(order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	_, err = svc.Finish(order.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = svc.SetStatus(order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	finished, err := svc.Finish(order.ID)
	require.NoError(t, err)
	assert.True(t, finished.Finished)

	// finishing again is a harmless no-op
	again, err := svc.Finish(order.ID)
	require.NoError(t, err)
	assert.True(t, again.Finished)

	active, err := svc.ActiveOrders()
	require.NoError(t, err)
	assert.Empty(t, active, "finished orders leave the active views")
}

func TestFinishFromCancelled(t *testing.T) {
	db := setupTestDB(t)
	product := seedBurger(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.Submit(burgerSubmission(t, product, "T1"))
	require.NoError(t, err)

	_, err = svc.SetStatus(order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	finished, err := svc.Finish(order.ID)
	require.NoError(t, err)
	assert.True(t, finished.Finished)
}
