// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records confirmations.
package queue

// AppointmentConfirmedEvent is published when an admin confirms an
// appointment. It carries enough information for downstream consumers
// to log or notify without querying the primary database.
type AppointmentConfirmedEvent struct {
	AppointmentID  uint64 `json:"appointment_id"`
	UserID         uint64 `json:"user_id"`
	TechnicianID   uint64 `json:"technician_id"`
	TechnicianName string `json:"technician_name"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	Service        string `json:"service"`
	Date           string `json:"date"`
	Slot           string `json:"slot"`
	ConfirmedAt    string `json:"confirmed_at"`
}
