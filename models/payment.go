package models

import "time"

// PaymentRequest is what the booking flow hands to the payment collaborator.
type PaymentRequest struct {
	PatientID   string
	SessionID   string
	Amount      float64
	Currency    string
	Method      string // "card" for now
	Description string
}

// PaymentReceipt is the collaborator's outcome. Only Status and Amount feed
// back into booking; the rest is kept for display and reconciliation.
type PaymentReceipt struct {
	ReceiptID string    `bson:"receiptId" json:"receiptId"`
	PaymentID string    `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PatientID string    `bson:"patientId" json:"patientId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"` // "paid", "pending", "free_trial"
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
