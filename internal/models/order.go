package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPaid = "paid"
)

// Order records one verified checkout session. It is written exactly
// once, after the payment provider confirms the session as paid.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"session_id" json:"session_id"`
	Items       []CartItem         `bson:"items,omitempty" json:"items,omitempty"`
	AmountTotal int64              `bson:"amount_total" json:"amount_total"`
	Currency    string             `bson:"currency" json:"currency"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
