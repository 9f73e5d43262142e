package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

func sampleDineInOrder() models.Order {
	return models.Order{
		ID:           1,
		Type:         models.OrderTypeDineIn,
		TotalAmount:  dec("51.00"),
		TableSession: &models.TableSession{TableLabel: "T3"},
		Items: []models.OrderItem{{
			ProductName: "Burger",
			Quantity:    2,
			Note:        "no pickles",
			Options: []models.OrderItemOption{
				{OptionName: "Bread", ValueName: "Wheat", PriceIncrement: dec("1.50")},
				{OptionName: "Size", ValueName: "Regular", PriceIncrement: dec("0.00")},
			},
			Addons: []models.OrderItemAddon{
				{IngredientName: "Bacon", Quantity: 2, UnitPrice: dec("4.00")},
			},
		}},
	}
}

func TestBuildTicketDineIn(t *testing.T) {
	p := NewPrinterService("http://localhost:0")
	ticket := p.BuildTicket(sampleDineInOrder())

	assert.Equal(t, "COMANDA", ticket.Kind)
	assert.Equal(t, "T3", ticket.Table)
	assert.Equal(t, "51.00", ticket.Total)
	assert.Empty(t, ticket.Payment)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, "Burger", ticket.Items[0].Name)
	assert.Equal(t, 2, ticket.Items[0].Quantity)
	assert.Equal(t, "no pickles | Bread: Wheat (+R$ 1.50) | Size: Regular (Grátis) | Bacon x2 (+R$ 4.00)", ticket.Items[0].Note)
}

func TestBuildTicketDelivery(t *testing.T) {
	order := sampleDineInOrder()
	order.Type = models.OrderTypeDelivery
	order.TableSession = nil
	order.DeliveryName = strPtr("Carla")
	order.DeliveryAddress = strPtr("Rua C, 33")
	order.PaymentMethod = strPtr("cash")

	p := NewPrinterService("http://localhost:0")
	ticket := p.BuildTicket(order)

	assert.Equal(t, "DELIVERY", ticket.Kind)
	assert.Equal(t, "Carla", ticket.Table)
	assert.Equal(t, "Rua C, 33", ticket.Address)
	assert.Equal(t, "cash", ticket.Payment)
}

func TestPrintPostsTicket(t *testing.T) {
	utils.InitLogger()

	var got Ticket
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPrinterService(srv.URL)
	require.NoError(t, p.Print(sampleDineInOrder()))
	assert.Equal(t, "COMANDA", got.Kind)
	assert.Equal(t, "T3", got.Table)
}

func TestPrintFailureIsReturnedNotFatal(t *testing.T) {
	utils.InitLogger()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPrinterService(srv.URL)
	assert.Error(t, p.Print(sampleDineInOrder()))

	// unreachable bridge: still just an error, nothing panics
	dead := NewPrinterService("http://127.0.0.1:1/print")
	assert.Error(t, dead.Print(sampleDineInOrder()))
}
