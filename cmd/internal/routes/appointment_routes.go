package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dentalia/cmd/internal/service"
	"dentalia/cmd/internal/utils"
	"dentalia/cmd/internal/utils/apierror"
)

type AppointmentService interface {
	GetAppointments(subId string) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	SaveAppointment(req *service.AppointmentRequest, subId string) (*service.SaveResult, apierror.ErrorResponse)
	DeleteAppointment(id, subId string) (*service.SaveResult, apierror.ErrorResponse)
	GetAvailableSlots(dateStr, excludeID string) ([]string, apierror.ErrorResponse)
	GetCalendar(view, dateStr string) (*service.CalendarResponse, apierror.ErrorResponse)
	GetSpecialtyStats(subId string) ([]*service.SpecialtyCount, apierror.ErrorResponse)
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	appts, apierr := a.AppointmentService.GetAppointments(data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

// SaveAppointment handles both creation and edits; the body's id field
// decides which. The response carries the resolved action so clients
// can patch their cached views.
func (a *DefaultAppointmentRoute) SaveAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	result, apierr := a.AppointmentService.SaveAppointment(&req, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	status := http.StatusOK
	if result.Action == service.ActionAdded {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id := c.Param("id")

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	result, apierr := a.AppointmentService.DeleteAppointment(id, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, result)
}

// GetAvailableSlots returns the free slots for ?date=YYYY-MM-DD. An
// optional ?exclude=<id> marks the appointment being edited so its own
// slot stays on the list.
func (a *DefaultAppointmentRoute) GetAvailableSlots(c echo.Context) error {
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		apierr := apierror.NewMissingParamError("date")
		return c.JSON(apierr.Code(), apierr)
	}

	if _, err := utils.ParseTokenDataCtx(c); err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	slots, apierr := a.AppointmentService.GetAvailableSlots(dateStr, c.QueryParam("exclude"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"date": dateStr, "slots": slots}
	return c.JSON(http.StatusOK, &resp)
}

// GetCalendar builds the grid for ?view=month|week anchored at
// ?date=YYYY-MM-DD (today when absent).
func (a *DefaultAppointmentRoute) GetCalendar(c echo.Context) error {
	if _, err := utils.ParseTokenDataCtx(c); err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	calendar, apierr := a.AppointmentService.GetCalendar(c.QueryParam("view"), c.QueryParam("date"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, calendar)
}

func (a *DefaultAppointmentRoute) GetSpecialtyStats(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	stats, apierr := a.AppointmentService.GetSpecialtyStats(data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"specialties": stats}
	return c.JSON(http.StatusOK, &resp)
}
