package service

import (
	"mime/multipart"
	"testing"

	"github.com/go-playground/validator/v10"

	"dentalia/cmd/internal/domain/entity"
	"dentalia/cmd/internal/utils/apierror"
	"dentalia/cmd/internal/utils/validators"
)

type stubHistoryRepo struct {
	entries []*entity.HistoryEntry
}

func (s *stubHistoryRepo) FindByPatientDni(dni string) ([]*entity.HistoryEntry, error) {
	var out []*entity.HistoryEntry
	for _, e := range s.entries {
		if e.PatientDni == dni {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubHistoryRepo) Save(entry *entity.HistoryEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

type stubImageStore struct {
	saved int
}

func (s *stubImageStore) Save(owner string, file *multipart.FileHeader) (string, error) {
	s.saved++
	return "/files/" + owner + "/test.png", nil
}

func newTestHistoryService(t *testing.T, repo *stubHistoryRepo) (*DefaultHistoryService, *stubImageStore) {
	t.Helper()
	v := validator.New()
	if err := validators.Register(v); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}
	images := &stubImageStore{}
	userRepo := &stubUserRepo{users: []*entity.User{patientAna, adminLucia}}
	return NewHistoryService(repo, userRepo, v, images), images
}

func TestAddEntryRequiresAdmin(t *testing.T) {
	svc, _ := newTestHistoryService(t, &stubHistoryRepo{})

	req := &HistoryEntryRequest{PatientDni: patientAna.Dni, Description: "Limpieza rutinaria"}
	if _, apierr := svc.AddEntry(req, nil, patientAna.SubUUID); apierr != apierror.ForbiddenError {
		t.Fatalf("expected ForbiddenError for non-admin, got %v", apierr)
	}
}

func TestAddEntryAppendsToRecord(t *testing.T) {
	repo := &stubHistoryRepo{}
	svc, _ := newTestHistoryService(t, repo)

	req := &HistoryEntryRequest{PatientDni: patientAna.Dni, Description: "Empaste en molar inferior"}
	entry, apierr := svc.AddEntry(req, nil, adminLucia.SubUUID)
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if entry.ID == "" {
		t.Error("expected a generated entry id")
	}
	if entry.ImageURL != "" {
		t.Errorf("expected no image url, got %q", entry.ImageURL)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(repo.entries))
	}
}

func TestAddEntryUnknownPatient(t *testing.T) {
	svc, _ := newTestHistoryService(t, &stubHistoryRepo{})

	req := &HistoryEntryRequest{PatientDni: "99999999R", Description: "Revision"}
	if _, apierr := svc.AddEntry(req, nil, adminLucia.SubUUID); apierr != apierror.PatientNotFoundError {
		t.Fatalf("expected PatientNotFoundError, got %v", apierr)
	}
}

func TestGetHistoryScopedToOwner(t *testing.T) {
	repo := &stubHistoryRepo{entries: []*entity.HistoryEntry{
		{ID: "1", PatientDni: patientAna.Dni, Description: "Limpieza"},
	}}
	svc, _ := newTestHistoryService(t, repo)

	own, apierr := svc.GetHistory(patientAna.Dni, patientAna.SubUUID)
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if len(own) != 1 {
		t.Errorf("expected own history visible, got %d entries", len(own))
	}

	if _, apierr := svc.GetHistory(adminLucia.Dni, patientAna.SubUUID); apierr != apierror.ForbiddenError {
		t.Errorf("expected ForbiddenError reading another patient, got %v", apierr)
	}

	all, apierr := svc.GetHistory(patientAna.Dni, adminLucia.SubUUID)
	if apierr != nil {
		t.Fatalf("unexpected error: %v", apierr)
	}
	if len(all) != 1 {
		t.Errorf("expected admin to read any record, got %d entries", len(all))
	}
}
