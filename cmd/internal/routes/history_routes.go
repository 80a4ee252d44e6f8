package routes

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dentalia/cmd/internal/service"
	"dentalia/cmd/internal/utils"
	"dentalia/cmd/internal/utils/apierror"
)

type HistoryService interface {
	GetHistory(dni, subId string) ([]*service.HistoryEntryResponse, apierror.ErrorResponse)
	AddEntry(req *service.HistoryEntryRequest, image *multipart.FileHeader, subId string) (*service.HistoryEntryResponse, apierror.ErrorResponse)
}

type DefaultHistoryRoute struct {
	HistoryService HistoryService
}

func NewHistoryDefault(historyService HistoryService) *DefaultHistoryRoute {
	return &DefaultHistoryRoute{HistoryService: historyService}
}

func (h *DefaultHistoryRoute) GetHistory(c echo.Context) error {
	dni := strings.TrimSpace(c.Param("id"))
	if dni == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	entries, apierr := h.HistoryService.GetHistory(dni, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entries": entries}
	return c.JSON(http.StatusOK, &resp)
}

// AddEntry takes the patient DNI from the path and a multipart form
// with a description field plus an optional image file.
func (h *DefaultHistoryRoute) AddEntry(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	req := &service.HistoryEntryRequest{
		PatientDni:  strings.TrimSpace(c.Param("id")),
		Description: c.FormValue("description"),
	}

	// Image is optional; any lookup failure just means none attached.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	entry, apierr := h.HistoryService.AddEntry(req, image, data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, entry)
}
