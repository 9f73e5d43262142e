package config

// Capability names one guarded action in the order workflow. Which role may
// perform which transition is decided here, not inside the state machines,
// so the services stay testable without a session.
type Capability string

const (
	CapCatalogWrite    Capability = "catalog.write"
	CapOrderSubmit     Capability = "order.submit"
	CapOrderStatus     Capability = "order.status"
	CapOrderPayment    Capability = "order.payment"
	CapOrderFinish     Capability = "order.finish"
	CapSessionClose    Capability = "session.close"
	CapDeliveryCollect Capability = "delivery.collect"
	CapDeliveryFinish  Capability = "delivery.finish"
)

const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleKitchen = "kitchen"
	RoleDriver  = "driver"
)

var roleCapabilities = map[string][]Capability{
	RoleStaff: {
		CapOrderSubmit,
		CapOrderPayment,
		CapOrderFinish,
		CapSessionClose,
	},
	RoleKitchen: {
		CapOrderStatus,
	},
	RoleDriver: {
		CapDeliveryCollect,
		CapDeliveryFinish,
	},
}

// RoleCan reports whether role is allowed to perform cap. Admin may do
// everything.
func RoleCan(role string, cap Capability) bool {
	if role == RoleAdmin {
		return true
	}
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}
