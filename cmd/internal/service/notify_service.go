package service

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"dentalia/cmd/internal/domain/entity"
	"dentalia/cmd/internal/integration/sendgrid"
	"dentalia/cmd/internal/schedule"
	"dentalia/cmd/internal/utils"
)

// EmailNotifier emails patients whenever one of their appointments is
// booked, moved or cancelled. Delivery happens off the request path;
// a failed email is logged, never surfaced to the caller.
type EmailNotifier struct {
	Sender   sendgrid.EmailSender
	Location *time.Location
}

func NewEmailNotifier(sender sendgrid.EmailSender, loc *time.Location) *EmailNotifier {
	return &EmailNotifier{Sender: sender, Location: loc}
}

func (n *EmailNotifier) AppointmentStatusChanged(appt *entity.Appointment, action string) {
	go func() {
		subject, body := n.compose(appt, action)
		html := fmt.Sprintf("<p>%s</p>", body)
		if err := n.Sender.Send(appt.PatientName, appt.PatientEmail, subject, body, html); err != nil {
			log.Errorf("failed to email %s about appointment %s: %v", appt.PatientEmail, appt.ID, err)
		}
	}()
}

func (n *EmailNotifier) compose(appt *entity.Appointment, action string) (subject, body string) {
	day := utils.FormatEpochIn(appt.Date, n.Location, "02/01/2006")
	slot := schedule.SlotLabel(time.UnixMilli(appt.Date).In(n.Location))

	switch action {
	case ActionAdded:
		subject = "Cita confirmada"
		body = fmt.Sprintf("Hola %s, tu cita de %s ha sido confirmada para el %s a las %s.",
			appt.PatientName, appt.Specialty, day, slot)
	case ActionModified:
		subject = "Cita modificada"
		body = fmt.Sprintf("Hola %s, tu cita de %s ha sido modificada. Nueva fecha: %s a las %s.",
			appt.PatientName, appt.Specialty, day, slot)
	case ActionDeleted:
		subject = "Cita cancelada"
		body = fmt.Sprintf("Hola %s, tu cita de %s del %s a las %s ha sido cancelada.",
			appt.PatientName, appt.Specialty, day, slot)
	default:
		subject = "Actualización de tu cita"
		body = fmt.Sprintf("Hola %s, tu cita de %s del %s a las %s ha sido actualizada.",
			appt.PatientName, appt.Specialty, day, slot)
	}
	return subject, body
}
