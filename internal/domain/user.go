package domain

import "time"

// User is a till operator or customer account.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	OrderHistory  []string  `json:"orderHistory,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
