package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Order statuses as stored in the orders table. Status comparison is
// case-insensitive everywhere; these are the canonical lowercase forms.
const (
	OrderStatusPending      = "pending"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusCancelled    = "cancelled"
)

// Topic for order lifecycle events on the in-process event bus.
const OrderCancelledTopic = "order.cancelled"
