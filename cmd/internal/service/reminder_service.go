package service

import (
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"dentalia/cmd/internal/integration/sendgrid"
	"dentalia/cmd/internal/schedule"
	"dentalia/cmd/internal/utils"
)

// ReminderService emails every patient with an appointment tomorrow.
// It is meant to run once a day from the cron scheduler.
type ReminderService struct {
	AppointmentRepo AppointmentRepository
	Sender          sendgrid.EmailSender
	Location        *time.Location
}

func NewReminderService(apptRepo AppointmentRepository, sender sendgrid.EmailSender, loc *time.Location) *ReminderService {
	return &ReminderService{AppointmentRepo: apptRepo, Sender: sender, Location: loc}
}

func (r *ReminderService) SendDailyReminders() {
	now := time.Now().In(r.Location)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.Location).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	appts, err := r.AppointmentRepo.FindBetween(tomorrow.UnixMilli(), dayAfter.UnixMilli())
	if err != nil {
		log.Errorf("failed to fetch tomorrow's appointments: %v", err)
		return
	}

	log.Infof("sending %d appointment reminders for %s", len(appts), tomorrow.Format("2006-01-02"))
	for _, appt := range appts {
		when := time.UnixMilli(appt.Date).In(r.Location)
		body := fmt.Sprintf("Hola %s, te recordamos tu cita de %s mañana %s a las %s.",
			appt.PatientName, appt.Specialty, utils.FormatEpochIn(appt.Date, r.Location, "02/01/2006"), schedule.SlotLabel(when))
		html := fmt.Sprintf("<p>%s</p>", body)

		if err := r.Sender.Send(appt.PatientName, appt.PatientEmail, "Recordatorio de cita", body, html); err != nil {
			log.Errorf("failed to send reminder for appointment %s: %v", appt.ID, err)
		}
	}
}
