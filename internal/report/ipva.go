package report

import (
	"github.com/ukydev/fleet-control/internal/models"
)

// IPVALevel classifies the annual vehicle tax due date.
type IPVALevel string

const (
	IPVAOK       IPVALevel = "ok"
	IPVADueSoon  IPVALevel = "due_soon"
	IPVAImminent IPVALevel = "imminent"
	IPVAOverdue  IPVALevel = "overdue"
)

// IPVAStatus is the tax status rendered next to a vehicle.
type IPVAStatus struct {
	Level             IPVALevel   `json:"level"`
	Message           string      `json:"message"`
	DueDate           models.Date `json:"due_date"`
	MonthsUntilDue    int         `json:"months_until_due"`
	ShowPaymentAction bool        `json:"show_payment_action"`
}

// ClassifyIPVA returns nil when the vehicle has no due date.
func ClassifyIPVA(due *models.Date, today models.Date) *IPVAStatus {
	if due == nil || due.IsZero() {
		return nil
	}
	months := due.MonthsSince(today)

	status := &IPVAStatus{DueDate: *due, MonthsUntilDue: months}
	switch {
	case due.Before(today):
		status.Level = IPVAOverdue
		status.Message = "IPVA vencido"
	case months > 3:
		status.Level = IPVAOK
		status.Message = "IPVA em dia"
	case months >= 2:
		status.Level = IPVADueSoon
		status.Message = "IPVA vence em breve"
	default:
		status.Level = IPVAImminent
		status.Message = "IPVA próximo ao vencimento"
	}
	status.ShowPaymentAction = status.Level != IPVAOK
	return status
}

// NextIPVADueDate is the due date after paying the current one.
func NextIPVADueDate(due models.Date) models.Date {
	return due.AddYears(1)
}
