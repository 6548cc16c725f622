// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// ErrCustomerNotFound indicates that the customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// Customer holds data of a bank customer from the pre-populated directory.
type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
