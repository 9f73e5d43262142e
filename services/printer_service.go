package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdvapp/restaurant-pos/live"
	"github.com/pdvapp/restaurant-pos/models"
	"github.com/pdvapp/restaurant-pos/utils"
)

// Field names follow the printer bridge's wire contract.
type TicketItem struct {
	Name     string `json:"nome"`
	Quantity int    `json:"quantidade"`
	Note     string `json:"note,omitempty"`
}

type Ticket struct {
	Table   string       `json:"mesa"`
	Kind    string       `json:"tipo"`
	Items   []TicketItem `json:"items"`
	Total   string       `json:"total"`
	Address string       `json:"endereco,omitempty"`
	Payment string       `json:"pagamento"`
}

// PrinterService sends ticket payloads to the receipt printer bridge.
// Printing is fire-and-forget: a dead printer is reported to the staff
// channel and logged, never rolled back into the order flow.
type PrinterService struct {
	URL    string
	Client *http.Client
}

func NewPrinterService(url string) *PrinterService {
	return &PrinterService{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// BuildTicket renders the frozen order snapshot into the bridge payload.
// Option and addon annotations are merged into each item's note line.
func (p *PrinterService) BuildTicket(order models.Order) Ticket {
	ticket := Ticket{
		Kind:  "DELIVERY",
		Total: order.TotalAmount.StringFixed(2),
	}
	if order.Type == models.OrderTypeDineIn {
		ticket.Kind = "COMANDA"
		if order.TableSession != nil {
			ticket.Table = order.TableSession.TableLabel
		}
	} else {
		if order.DeliveryName != nil {
			ticket.Table = *order.DeliveryName
		}
		if order.DeliveryAddress != nil {
			ticket.Address = *order.DeliveryAddress
		}
		if order.PaymentMethod != nil {
			ticket.Payment = *order.PaymentMethod
		}
	}

	for _, item := range order.Items {
		var notes []string
		if item.Note != "" {
			notes = append(notes, item.Note)
		}
		for _, o := range item.Options {
			annotation := fmt.Sprintf("%s: %s", o.OptionName, o.ValueName)
			switch {
			case o.PriceIncrement.IsPositive():
				annotation += fmt.Sprintf(" (+R$ %s)", o.PriceIncrement.StringFixed(2))
			case o.PriceIncrement.IsNegative():
				annotation += fmt.Sprintf(" (-R$ %s)", o.PriceIncrement.Abs().StringFixed(2))
			default:
				annotation += " (Grátis)"
			}
			notes = append(notes, annotation)
		}
		for _, a := range item.Addons {
			annotation := fmt.Sprintf("%s x%d", a.IngredientName, a.Quantity)
			if a.UnitPrice.IsPositive() {
				annotation += fmt.Sprintf(" (+R$ %s)", a.UnitPrice.StringFixed(2))
			}
			notes = append(notes, annotation)
		}

		ti := TicketItem{Name: item.ProductName, Quantity: item.Quantity}
		if len(notes) > 0 {
			ti.Note = joinNotes(notes)
		}
		ticket.Items = append(ticket.Items, ti)
	}

	return ticket
}

// PrintAsync dispatches the ticket after the order transaction committed.
func (p *PrinterService) PrintAsync(order models.Order) {
	go func() {
		if err := p.Print(order); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("printer: %v", err)
			}
			live.BroadcastStaffNotification(fmt.Sprintf("Printer unreachable for order #%d", order.ID))
		}
	}()
}

func (p *PrinterService) Print(order models.Order) error {
	body, err := json.Marshal(p.BuildTicket(order))
	if err != nil {
		return err
	}
	resp, err := p.Client.Post(p.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("printer bridge returned %d", resp.StatusCode)
	}
	return nil
}

func joinNotes(notes []string) string {
	out := notes[0]
	for _, n := range notes[1:] {
		out += " | " + n
	}
	return out
}
