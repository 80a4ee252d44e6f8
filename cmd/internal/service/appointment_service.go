package service

import (
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"dentalia/cmd/internal/domain/entity"
	"dentalia/cmd/internal/schedule"
	"dentalia/cmd/internal/utils"
	"dentalia/cmd/internal/utils/apierror"
)

// Save outcomes, reported back so the caller knows how to merge the
// record into its own view.
const (
	ActionAdded    = "added"
	ActionModified = "modified"
	ActionDeleted  = "deleted"
)

type AppointmentRepository interface {
	FindByID(id string) (*entity.Appointment, error)
	FindAll() ([]*entity.Appointment, error)
	FindByPatientDni(dni string) ([]*entity.Appointment, error)
	FindBetween(start, end int64) ([]*entity.Appointment, error)
	CountAtSlot(slotStart, slotEnd int64, excludeID string) (int64, error)
	Create(appointment *entity.Appointment) error
	Save(appointment *entity.Appointment) error
	Delete(appointment *entity.Appointment) error
}

// Notifier is told about every booking outcome; implementations must
// not block the request.
type Notifier interface {
	AppointmentStatusChanged(appt *entity.Appointment, action string)
}

// AppointmentRequest is a booking draft. ID is empty for a new
// booking and carries the existing id on an edit. PatientDni is only
// honoured for admin callers; regular patients always book themselves.
type AppointmentRequest struct {
	ID         string `json:"id" validate:"omitempty,uuid4"`
	Name       string `json:"name" validate:"required,min=1,max=10"`
	Specialty  string `json:"specialty" validate:"required,max=40"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Slot       string `json:"slot" validate:"required,slot"`
	PatientDni string `json:"patient_dni" validate:"omitempty,dni"`
	Background string `json:"background" validate:"omitempty,hexcolor"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}

type AppointmentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PatientName  string `json:"patient_name"`
	PatientDni   string `json:"patient_dni"`
	PatientEmail string `json:"patient_email"`
	Specialty    string `json:"specialty"`
	Date         string `json:"date"`
	Slot         string `json:"slot"`
	Background   string `json:"background"`
	Color        string `json:"color"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// SaveResult pairs the canonical record with how the save resolved.
type SaveResult struct {
	Action      string               `json:"action"`
	Appointment *AppointmentResponse `json:"appointment"`
}

type CalendarDayResponse struct {
	Day          *int                   `json:"day"`
	Date         string                 `json:"date,omitempty"`
	CurrentDay   bool                   `json:"current_day"`
	CurrentMonth bool                   `json:"current_month"`
	Events       []*AppointmentResponse `json:"events"`
}

type CalendarResponse struct {
	Label string                 `json:"label"`
	View  string                 `json:"view"`
	Days  []*CalendarDayResponse `json:"days"`
}

type SpecialtyCount struct {
	Specialty string `json:"specialty"`
	Count     int    `json:"count"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	UserRepo        UserRepository
	Validate        *validator.Validate
	Notifier        Notifier
	Location        *time.Location
}

func NewAppointmentService(apptRepo AppointmentRepository, userRepo UserRepository, validate *validator.Validate, notifier Notifier, loc *time.Location) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		AppointmentRepo: apptRepo,
		UserRepo:        userRepo,
		Validate:        validate,
		Notifier:        notifier,
		Location:        loc,
	}
}

// GetAppointments returns every live appointment for admins, and only
// the caller's own bookings for regular patients.
func (a *DefaultAppointmentService) GetAppointments(subId string) ([]*AppointmentResponse, apierror.ErrorResponse) {
	caller, apierr := a.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}

	var appts []*entity.Appointment
	var err error
	if caller.IsAdmin {
		appts, err = a.AppointmentRepo.FindAll()
	} else {
		appts, err = a.AppointmentRepo.FindByPatientDni(caller.Dni)
	}
	if err != nil {
		log.Errorf("failed to find appointments for user %d: %v", caller.ID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		response[i] = a.toAppointmentResponse(appt)
	}
	return response, nil
}

// SaveAppointment validates and normalizes a draft into a canonical
// appointment. A draft without an id becomes a new booking, one with
// an id an edit; the returned action tells the caller which happened.
func (a *DefaultAppointmentService) SaveAppointment(req *AppointmentRequest, subId string) (*SaveResult, apierror.ErrorResponse) {
	caller, apierr := a.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	patient, apierr := a.resolvePatient(req, caller)
	if apierr != nil {
		return nil, apierr
	}

	begin, apierr := a.composeDate(req.Date, req.Slot)
	if apierr != nil {
		return nil, apierr
	}
	if !begin.After(time.Now()) {
		return nil, apierror.AppointmentInPastError
	}

	action := ActionAdded
	var existing *entity.Appointment
	if req.ID != "" {
		action = ActionModified
		var err error
		existing, err = a.AppointmentRepo.FindByID(req.ID)
		if err != nil {
			log.Errorf("failed to fetch appointment %s: %v", req.ID, err)
			return nil, apierror.InternalServerError
		}
		if existing == nil || existing.IsDeleted {
			return nil, apierror.NotFoundError
		}
		if !caller.IsAdmin && existing.PatientDni != caller.Dni {
			return nil, apierror.NotFoundError
		}
	}

	// The slot list shown to the user was computed from an earlier
	// snapshot; recheck occupancy at save time to close the race.
	slotStart := begin.UnixMilli()
	slotEnd := begin.Add(time.Hour).UnixMilli()
	taken, err := a.AppointmentRepo.CountAtSlot(slotStart, slotEnd, req.ID)
	if err != nil {
		log.Errorf("failed to recheck slot %s %s: %v", req.Date, req.Slot, err)
		return nil, apierror.InternalServerError
	}
	if taken > 0 {
		return nil, apierror.SlotTakenError
	}

	now := utils.NowUTC()
	appt := &entity.Appointment{
		ID:           req.ID,
		Name:         req.Name,
		PatientName:  firstName(patient.FullName),
		PatientDni:   patient.Dni,
		PatientEmail: patient.Email,
		Specialty:    req.Specialty,
		Date:         slotStart,
		Background:   defaultColor(req.Background, "#ffffff"),
		Color:        defaultColor(req.Color, "#000000"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if action == ActionAdded {
		appt.ID = uuid.NewString()
		err = a.AppointmentRepo.Create(appt)
	} else {
		appt.CreatedAt = existing.CreatedAt
		err = a.AppointmentRepo.Save(appt)
	}
	if err != nil {
		log.Errorf("failed to save appointment %s: %v", appt.ID, err)
		return nil, apierror.InternalServerError
	}

	a.Notifier.AppointmentStatusChanged(appt, action)
	return &SaveResult{Action: action, Appointment: a.toAppointmentResponse(appt)}, nil
}

func (a *DefaultAppointmentService) DeleteAppointment(id, subId string) (*SaveResult, apierror.ErrorResponse) {
	caller, apierr := a.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}

	appt, err := a.AppointmentRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch appointment by id %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if appt == nil || appt.IsDeleted {
		return nil, apierror.NotFoundError
	}
	if !caller.IsAdmin && appt.PatientDni != caller.Dni {
		return nil, apierror.NotFoundError
	}

	if err := a.AppointmentRepo.Delete(appt); err != nil {
		log.Errorf("failed to delete appointment by id %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	a.Notifier.AppointmentStatusChanged(appt, ActionDeleted)
	return &SaveResult{Action: ActionDeleted, Appointment: a.toAppointmentResponse(appt)}, nil
}

// GetAvailableSlots returns the free catalog slots for a day. When the
// caller is editing an appointment its id is excluded so its own slot
// stays choosable, and its current slot label is kept in the list even
// if it is legacy data outside the catalog.
func (a *DefaultAppointmentService) GetAvailableSlots(dateStr, excludeID string) ([]string, apierror.ErrorResponse) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, a.Location)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD date")
	}

	dayEnd := day.AddDate(0, 0, 1)
	appts, err := a.AppointmentRepo.FindBetween(day.UnixMilli(), dayEnd.UnixMilli())
	if err != nil {
		log.Errorf("failed to fetch appointments for %s: %v", dateStr, err)
		return nil, apierror.InternalServerError
	}

	slots := schedule.AvailableSlots(day, appts, excludeID)

	if excludeID != "" {
		edited, err := a.AppointmentRepo.FindByID(excludeID)
		if err != nil {
			log.Errorf("failed to fetch edited appointment %s: %v", excludeID, err)
		} else if edited != nil && !edited.IsDeleted && edited.Date > 0 {
			editedDate := time.UnixMilli(edited.Date).In(a.Location)
			if schedule.SameDay(editedDate, day) {
				slots = schedule.KeepCurrent(slots, schedule.SlotLabel(editedDate))
			}
		}
	}
	return slots, nil
}

// GetCalendar builds the month or week grid anchored at dateStr (today
// when empty).
func (a *DefaultAppointmentService) GetCalendar(view, dateStr string) (*CalendarResponse, apierror.ErrorResponse) {
	ref := time.Now().In(a.Location)
	if dateStr != "" {
		var err error
		ref, err = time.ParseInLocation("2006-01-02", dateStr, a.Location)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD date")
		}
	}

	appts, err := a.AppointmentRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch appointments for calendar: %v", err)
		return nil, apierror.InternalServerError
	}

	planner := schedule.NewPlanner(ref, schedule.View(view))
	planner.Now = func() time.Time { return time.Now().In(a.Location) }
	cells := planner.Build(appts)

	days := make([]*CalendarDayResponse, len(cells))
	for i, cell := range cells {
		days[i] = a.toCalendarDayResponse(cell)
	}
	return &CalendarResponse{
		Label: planner.Label(),
		View:  string(planner.View()),
		Days:  days,
	}, nil
}

// GetSpecialtyStats counts live appointments per specialty, largest
// first. Admin only.
func (a *DefaultAppointmentService) GetSpecialtyStats(subId string) ([]*SpecialtyCount, apierror.ErrorResponse) {
	caller, apierr := a.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}
	if !caller.IsAdmin {
		return nil, apierror.ForbiddenError
	}

	appts, err := a.AppointmentRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch appointments for stats: %v", err)
		return nil, apierror.InternalServerError
	}

	counts := make(map[string]int)
	for _, appt := range appts {
		specialty := strings.TrimSpace(appt.Specialty)
		if specialty == "" {
			specialty = "Desconocido"
		}
		counts[specialty]++
	}

	stats := make([]*SpecialtyCount, 0, len(counts))
	for specialty, count := range counts {
		stats = append(stats, &SpecialtyCount{Specialty: specialty, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Specialty < stats[j].Specialty
	})
	return stats, nil
}

func (a *DefaultAppointmentService) fetchCaller(subId string) (*entity.User, apierror.ErrorResponse) {
	caller, err := a.UserRepo.FindBySub(subId)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", subId, err)
		return nil, apierror.InternalServerError
	}
	if caller == nil {
		return nil, apierror.InvalidAuthTokenError
	}
	return caller, nil
}

// resolvePatient picks who the appointment is for: admins book any
// registered patient by DNI, everyone else books themselves.
func (a *DefaultAppointmentService) resolvePatient(req *AppointmentRequest, caller *entity.User) (*entity.User, apierror.ErrorResponse) {
	if !caller.IsAdmin {
		return caller, nil
	}
	if req.PatientDni == "" {
		return nil, apierror.NewMissingParamError("patient_dni")
	}
	patient, err := a.UserRepo.FindByDni(req.PatientDni)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", req.PatientDni, err)
		return nil, apierror.InternalServerError
	}
	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}
	return patient, nil
}

// composeDate joins the chosen calendar date and slot hour into the
// single canonical timestamp, minutes and below zeroed.
func (a *DefaultAppointmentService) composeDate(dateStr, slot string) (time.Time, apierror.ErrorResponse) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, a.Location)
	if err != nil {
		return time.Time{}, apierror.MalformedBodyError
	}
	hour, err := schedule.SlotHour(slot)
	if err != nil {
		return time.Time{}, apierror.SlotNotInCatalogError
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, a.Location), nil
}

func (a *DefaultAppointmentService) toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	// Dirty legacy rows may carry a non-exact timestamp; those get no
	// slot label rather than a misleading one.
	slot := ""
	if appt.Date > 0 && utils.IsHourExact(appt.Date) {
		slot = schedule.SlotLabel(time.UnixMilli(appt.Date).In(a.Location))
	}
	return &AppointmentResponse{
		ID:           appt.ID,
		Name:         appt.Name,
		PatientName:  appt.PatientName,
		PatientDni:   appt.PatientDni,
		PatientEmail: appt.PatientEmail,
		Specialty:    appt.Specialty,
		Date:         utils.FormatEpoch(appt.Date),
		Slot:         slot,
		Background:   appt.Background,
		Color:        appt.Color,
		CreatedAt:    utils.FormatEpoch(appt.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(appt.UpdatedAt),
	}
}

func (a *DefaultAppointmentService) toCalendarDayResponse(cell schedule.CalendarDay) *CalendarDayResponse {
	resp := &CalendarDayResponse{
		CurrentDay:   cell.CurrentDay,
		CurrentMonth: cell.CurrentMonth,
		Events:       make([]*AppointmentResponse, 0, len(cell.Events)),
	}
	if cell.Day > 0 {
		day := cell.Day
		resp.Day = &day
		resp.Date = cell.Date.Format("2006-01-02")
	}
	for _, appt := range cell.Events {
		resp.Events = append(resp.Events, a.toAppointmentResponse(appt))
	}
	return resp
}

func firstName(full string) string {
	if name, _, found := strings.Cut(strings.TrimSpace(full), " "); found {
		return name
	}
	return strings.TrimSpace(full)
}

func defaultColor(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
