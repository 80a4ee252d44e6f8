package service

import (
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"dentalia/cmd/internal/domain/entity"
	"dentalia/cmd/internal/storage"
	"dentalia/cmd/internal/utils"
	"dentalia/cmd/internal/utils/apierror"
)

type HistoryRepository interface {
	FindByPatientDni(dni string) ([]*entity.HistoryEntry, error)
	Save(entry *entity.HistoryEntry) error
}

// ImageStore persists uploaded radiographs and returns a public URL.
type ImageStore interface {
	Save(owner string, file *multipart.FileHeader) (string, error)
}

type HistoryEntryRequest struct {
	PatientDni  string `json:"patient_dni" validate:"required,dni"`
	Description string `json:"description" validate:"required,min=1,max=500"`
}

type HistoryEntryResponse struct {
	ID          string `json:"id"`
	PatientDni  string `json:"patient_dni"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type DefaultHistoryService struct {
	HistoryRepo HistoryRepository
	UserRepo    UserRepository
	Validate    *validator.Validate
	Images      ImageStore
}

func NewHistoryService(historyRepo HistoryRepository, userRepo UserRepository, validate *validator.Validate, images ImageStore) *DefaultHistoryService {
	return &DefaultHistoryService{
		HistoryRepo: historyRepo,
		UserRepo:    userRepo,
		Validate:    validate,
		Images:      images,
	}
}

// GetHistory returns a patient's clinical record, newest entry first.
// Admins read anyone's; patients only their own.
func (h *DefaultHistoryService) GetHistory(dni, subId string) ([]*HistoryEntryResponse, apierror.ErrorResponse) {
	caller, apierr := h.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}
	if !caller.IsAdmin && caller.Dni != dni {
		return nil, apierror.ForbiddenError
	}

	entries, err := h.HistoryRepo.FindByPatientDni(dni)
	if err != nil {
		log.Errorf("failed to fetch history for patient %s: %v", dni, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toHistoryEntryResponse(entry)
	}
	return resp, nil
}

// AddEntry appends a treatment note, with an optional image, to a
// patient's record. Admin only.
func (h *DefaultHistoryService) AddEntry(req *HistoryEntryRequest, image *multipart.FileHeader, subId string) (*HistoryEntryResponse, apierror.ErrorResponse) {
	caller, apierr := h.fetchCaller(subId)
	if apierr != nil {
		return nil, apierr
	}
	if !caller.IsAdmin {
		return nil, apierror.ForbiddenError
	}

	utils.Sanitize(req)
	if err := h.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	patient, err := h.UserRepo.FindByDni(req.PatientDni)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", req.PatientDni, err)
		return nil, apierror.InternalServerError
	}
	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}

	imageURL := ""
	if image != nil {
		imageURL, err = h.Images.Save(req.PatientDni, image)
		if err != nil {
			if errors.Is(err, storage.ErrFileTooLarge) || errors.Is(err, storage.ErrInvalidContentType) {
				return nil, apierror.NewSimple(422, err.Error())
			}
			log.Errorf("failed to store image for patient %s: %v", req.PatientDni, err)
			return nil, apierror.InternalServerError
		}
	}

	entry := &entity.HistoryEntry{
		ID:          uuid.NewString(),
		PatientDni:  req.PatientDni,
		Description: req.Description,
		ImageURL:    imageURL,
		CreatedAt:   utils.NowUTC(),
	}
	if err := h.HistoryRepo.Save(entry); err != nil {
		log.Errorf("failed to save history entry for patient %s: %v", req.PatientDni, err)
		return nil, apierror.InternalServerError
	}
	return toHistoryEntryResponse(entry), nil
}

func (h *DefaultHistoryService) fetchCaller(subId string) (*entity.User, apierror.ErrorResponse) {
	caller, err := h.UserRepo.FindBySub(subId)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", subId, err)
		return nil, apierror.InternalServerError
	}
	if caller == nil {
		return nil, apierror.InvalidAuthTokenError
	}
	return caller, nil
}

func toHistoryEntryResponse(entry *entity.HistoryEntry) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		ID:          entry.ID,
		PatientDni:  entry.PatientDni,
		Description: entry.Description,
		ImageURL:    entry.ImageURL,
		CreatedAt:   utils.FormatEpoch(entry.CreatedAt),
	}
}
