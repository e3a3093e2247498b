package domain

// OrderStatus tracks an order through the kitchen. Only the status may change
// after an order reaches the ledger.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusCancelled
}

// OrderItem is a frozen copy of a cart line at checkout time.
type OrderItem struct {
	LineID     string   `json:"lineId"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	Quantity   int      `json:"quantity"`
	Kind       ItemKind `json:"kind"`
	Size       Size     `json:"size,omitempty"`
	FirstHalf  *Half    `json:"firstHalf,omitempty"`
	SecondHalf *Half    `json:"secondHalf,omitempty"`
}

// Order is the immutable snapshot appended to the sales ledger.
type Order struct {
	ID              string      `json:"id"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	Status          OrderStatus `json:"status"`
	CustomerName    string      `json:"customerName,omitempty"`
	CustomerPhone   string      `json:"customerPhone,omitempty"`
	CustomerAddress string      `json:"customerAddress,omitempty"`
	DeliveryPerson  string      `json:"deliveryPerson,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
	Observations    string      `json:"observations,omitempty"`
}
