package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petdohod/workshop-api/internal/api/handler"
	"github.com/petdohod/workshop-api/internal/api/middleware"
	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/service"
)

// fakeWorkshopRepo serves a fixed set of workshops.
type fakeWorkshopRepo struct {
	workshops []domain.Workshop
	counts    map[int64]int
}

func (f *fakeWorkshopRepo) Create(ctx context.Context, w *domain.Workshop) error {
	w.ID = int64(len(f.workshops) + 1)
	f.workshops = append(f.workshops, *w)
	return nil
}

func (f *fakeWorkshopRepo) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	for _, w := range f.workshops {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.ErrWorkshopNotFound
}

func (f *fakeWorkshopRepo) ListActive(ctx context.Context) ([]domain.Workshop, error) {
	var active []domain.Workshop
	for _, w := range f.workshops {
		if w.IsActive {
			active = append(active, w)
		}
	}
	return active, nil
}

func (f *fakeWorkshopRepo) Update(ctx context.Context, w *domain.Workshop) error { return nil }
func (f *fakeWorkshopRepo) SoftDelete(ctx context.Context, id int64) error       { return nil }

func (f *fakeWorkshopRepo) CountRegistrations(ctx context.Context, date, location string) (int, error) {
	for _, w := range f.workshops {
		if w.Date == date && w.Location == location {
			return f.counts[w.ID], nil
		}
	}
	return 0, nil
}

// fakeRegistrationRepo stores registrations in memory.
type fakeRegistrationRepo struct {
	regs   []domain.Registration
	nextID int64
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	f.nextID++
	reg.ID = f.nextID
	f.regs = append(f.regs, *reg)
	return nil
}

func (f *fakeRegistrationRepo) SetVariableSymbol(ctx context.Context, id int64, vs string) error {
	for i := range f.regs {
		if f.regs[i].ID == id {
			f.regs[i].VariableSymbol = &vs
			return nil
		}
	}
	return domain.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	for _, reg := range f.regs {
		if reg.ID == id {
			return &reg, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) List(ctx context.Context) ([]domain.Registration, error) {
	return f.regs, nil
}

func (f *fakeRegistrationRepo) ListByStatus(ctx context.Context, status string) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, reg := range f.regs {
		if reg.Status == status {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ExistsActive(ctx context.Context, email, date, location string) (bool, error) {
	for _, reg := range f.regs {
		if reg.Email == email && reg.WorkshopDate == date && reg.WorkshopLocation == location && reg.Status != domain.StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	for i := range f.regs {
		if f.regs[i].ID == id {
			f.regs[i].Status = status
			return nil
		}
	}
	return domain.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id int64) error {
	for i := range f.regs {
		if f.regs[i].ID == id {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return domain.ErrRegistrationNotFound
}

// fakeNewsletterRepo rejects a configured set of already-active emails.
type fakeNewsletterRepo struct {
	active map[string]bool
}

func (f *fakeNewsletterRepo) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	if f.active[email] {
		return nil, domain.ErrAlreadySubscribed
	}
	return &domain.Subscriber{ID: 1, Email: email, IsActive: true}, nil
}

// fakeNotifier swallows all notifications.
type fakeNotifier struct{}

func (fakeNotifier) RegistrationConfirmation(context.Context, *domain.Registration, *domain.Workshop) error {
	return nil
}
func (fakeNotifier) AdminNewRegistration(context.Context, *domain.Registration) error { return nil }
func (fakeNotifier) PaymentConfirmed(context.Context, *domain.Registration) error     { return nil }
func (fakeNotifier) ContactMessage(context.Context, domain.ContactMessage) error      { return nil }

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func activeWorkshop() domain.Workshop {
	return domain.Workshop{
		ID:                   1,
		Date:                 "15. - 16. března 2026",
		Location:             "Praha",
		Type:                 domain.WorkshopTypePublic,
		Capacity:             intPtr(10),
		PriceSingle:          4800,
		VariableSymbolPrefix: strPtr("777"),
		IsActive:             true,
	}
}

func makeJSONRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "ok", resp["data"].(map[string]any)["status"])
}

func TestAuthHandler_Login(t *testing.T) {
	auth := middleware.NewAdminAuth("tajneheslo")
	h := handler.NewAuthHandler(auth)

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, makeJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{"password": "tajneheslo"}))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, true, resp["data"].(map[string]any)["authenticated"])
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Login(rec, makeJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{"password": "spatne"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured secret never matches", func(t *testing.T) {
		h := handler.NewAuthHandler(middleware.NewAdminAuth(""))
		rec := httptest.NewRecorder()
		h.Login(rec, makeJSONRequest(http.MethodPost, "/api/auth/login", map[string]string{"password": ""}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(password, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/registrations", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		middleware.NewAdminAuth(password).Authenticate(next).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, run("tajneheslo", "Bearer tajneheslo").Code)
	assert.Equal(t, http.StatusUnauthorized, run("tajneheslo", "").Code)
	assert.Equal(t, http.StatusUnauthorized, run("tajneheslo", "Basic tajneheslo").Code)
	assert.Equal(t, http.StatusUnauthorized, run("tajneheslo", "Bearer spatne").Code)
	assert.Equal(t, http.StatusInternalServerError, run("", "Bearer cokoli").Code)
}

func TestWorkshopHandler_List(t *testing.T) {
	repo := &fakeWorkshopRepo{
		workshops: []domain.Workshop{activeWorkshop()},
		counts:    map[int64]int{1: 6},
	}
	h := handler.NewWorkshopHandler(service.NewWorkshopService(repo, nil))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/workshops", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp["data"].([]any)
	require.Len(t, data, 1)

	first := data[0].(map[string]any)
	assert.Equal(t, float64(6), first["registrationCount"])
	assert.Equal(t, "nearly_full", first["fillStatus"])
	assert.Equal(t, float64(4), first["remaining"])
}

func TestRegistrationHandler_Submit(t *testing.T) {
	newHandler := func() (*handler.RegistrationHandler, *fakeRegistrationRepo) {
		workshops := &fakeWorkshopRepo{workshops: []domain.Workshop{activeWorkshop()}}
		regs := &fakeRegistrationRepo{}
		svc := service.NewRegistrationService(regs, workshops, fakeNotifier{})
		return handler.NewRegistrationHandler(svc), regs
	}

	validBody := map[string]any{
		"workshopId": 1,
		"firstName":  "Jana",
		"lastName":   "Nováková",
		"email":      "jana@example.com",
		"phone":      "+420777123456",
	}

	t.Run("success", func(t *testing.T) {
		h, _ := newHandler()
		rec := httptest.NewRecorder()
		h.Submit(rec, makeJSONRequest(http.MethodPost, "/api/registrations", validBody))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data := resp["data"].(map[string]any)
		assert.Equal(t, float64(1), data["registrationId"])
		assert.Equal(t, "777001", data["variableSymbol"])
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _ := newHandler()
		rec := httptest.NewRecorder()
		h.Submit(rec, makeJSONRequest(http.MethodPost, "/api/registrations", map[string]any{"workshopId": 1}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Vyplň prosím všechna povinná pole", resp["error"])
	})

	t.Run("duplicate", func(t *testing.T) {
		h, _ := newHandler()

		rec := httptest.NewRecorder()
		h.Submit(rec, makeJSONRequest(http.MethodPost, "/api/registrations", validBody))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.Submit(rec, makeJSONRequest(http.MethodPost, "/api/registrations", validBody))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Na tento termín už jsi registrovaný/á", resp["error"])
	})

	t.Run("unknown workshop", func(t *testing.T) {
		h, _ := newHandler()
		body := map[string]any{}
		for k, v := range validBody {
			body[k] = v
		}
		body["workshopId"] = 99

		rec := httptest.NewRecorder()
		h.Submit(rec, makeJSONRequest(http.MethodPost, "/api/registrations", body))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRegistrationHandler_UpdateStatus(t *testing.T) {
	workshops := &fakeWorkshopRepo{workshops: []domain.Workshop{activeWorkshop()}}
	regs := &fakeRegistrationRepo{regs: []domain.Registration{{ID: 1, Status: domain.StatusPending}}, nextID: 1}
	h := handler.NewRegistrationHandler(service.NewRegistrationService(regs, workshops, fakeNotifier{}))

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, makeJSONRequest(http.MethodPut, "/api/registrations", map[string]any{"id": 1, "status": "confirmed"}))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "confirmed", resp["data"].(map[string]any)["status"])

	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, makeJSONRequest(http.MethodPut, "/api/registrations", map[string]any{"id": 1, "status": "paid"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, makeJSONRequest(http.MethodPut, "/api/registrations", map[string]any{"status": "confirmed"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateStatus(rec, makeJSONRequest(http.MethodPut, "/api/registrations", map[string]any{"id": 99, "status": "confirmed"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkshopHandler_Delete(t *testing.T) {
	repo := &fakeWorkshopRepo{workshops: []domain.Workshop{activeWorkshop()}}
	h := handler.NewWorkshopHandler(service.NewWorkshopService(repo, nil))

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/workshops?id=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/workshops", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistrationHandler_Export(t *testing.T) {
	vs := "777001"
	regs := &fakeRegistrationRepo{regs: []domain.Registration{{
		ID: 1, FirstName: "Jana", LastName: "Nováková", Email: "jana@example.com",
		Phone: "+420777123456", RegistrationType: "single",
		WorkshopDate: "březen", WorkshopLocation: "Praha", Price: "4 800 Kč",
		Status: domain.StatusPending, VariableSymbol: &vs,
	}}, nextID: 1}
	h := handler.NewRegistrationHandler(service.NewRegistrationService(regs, &fakeWorkshopRepo{}, fakeNotifier{}))

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/registrations/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	body := rec.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.True(t, strings.Contains(string(body), "Jana;Nováková"))
}

func TestNewsletterHandler_Subscribe(t *testing.T) {
	h := handler.NewNewsletterHandler(service.NewNewsletterService(
		&fakeNewsletterRepo{active: map[string]bool{"uz@example.com": true}},
	))

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Subscribe(rec, makeJSONRequest(http.MethodPost, "/api/newsletter", map[string]string{"email": "nova@example.com"}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("already subscribed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Subscribe(rec, makeJSONRequest(http.MethodPost, "/api/newsletter", map[string]string{"email": "uz@example.com"}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Email už je přihlášený", resp["error"])
	})

	t.Run("invalid email", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Subscribe(rec, makeJSONRequest(http.MethodPost, "/api/newsletter", map[string]string{"email": "nope"}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "Zadej platný email", resp["error"])
	})
}

func TestContactHandler_Send(t *testing.T) {
	h := handler.NewContactHandler(service.NewContactService(fakeNotifier{}))

	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Send(rec, makeJSONRequest(http.MethodPost, "/api/contact", map[string]string{
			"name":    "Jana",
			"email":   "jana@example.com",
			"message": "Dobrý den",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Send(rec, makeJSONRequest(http.MethodPost, "/api/contact", map[string]string{
			"name":  "Jana",
			"email": "jana@example.com",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
