package models

import "time"

const (
	OrderAdmittedTopic  = "orders.admitted"
	OrderCompletedTopic = "orders.completed"
	OrderFailedTopic    = "orders.failed"
	PaymentsDLQTopic    = "payments.dlq"

	PaymentNotificationTopic = "payments.notifications"
)

type OrderEvent struct {
	OrderID   string     `json:"order_id"`
	Email     string     `json:"email"`
	PetName   string     `json:"pet_name"`
	State     OrderState `json:"state"`
	Degraded  bool       `json:"degraded"`
	Reason    string     `json:"reason,omitempty"`
	Photos    int        `json:"photos"`
	Generated int        `json:"generated"`
	Timestamp time.Time  `json:"timestamp"`
}

// PaymentNotificationEvent is the payload relayed from the gateway's notification
// bridge onto Kafka.
type PaymentNotificationEvent struct {
	Reference     string `json:"reference"`
	TransactionID string `json:"transaction_id,omitempty"`
	Status        string `json:"status"`
}

type DLQMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Timestamp     time.Time `json:"timestamp"`
	Attempts      int       `json:"attempts"`
}

func NewOrderEvent(run OrderRun) OrderEvent {
	return OrderEvent{
		OrderID:   run.ID,
		Email:     run.Key.Email,
		PetName:   run.Key.PetName,
		State:     run.State,
		Degraded:  run.Degraded,
		Reason:    run.Reason,
		Photos:    run.Photos,
		Generated: run.Generated,
		Timestamp: time.Now().UTC(),
	}
}

func (e OrderEvent) MessageKey() string {
	return e.OrderID
}
