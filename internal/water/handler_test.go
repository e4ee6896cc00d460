package water

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmate/trainmate-api/internal/auth"
)

type waterRepoMock struct {
	intakes map[string]*Intake
}

var _ waterRepo = (*waterRepoMock)(nil)

func newWaterRepoMock() *waterRepoMock {
	return &waterRepoMock{
		intakes: make(map[string]*Intake),
	}
}

func (m *waterRepoMock) AddQuantity(_ context.Context, _ string, date time.Time, quantity int) (*Intake, error) {
	intake := Intake{Date: date}
	if existing, ok := m.intakes[intake.DocID()]; ok {
		intake = *existing
	}
	intake.Quantity += quantity
	m.intakes[intake.DocID()] = &intake
	return &intake, nil
}

func (m *waterRepoMock) GetForDay(_ context.Context, _ string, date time.Time) (*Intake, error) {
	if intake, ok := m.intakes[Intake{Date: date}.DocID()]; ok {
		return intake, nil
	}
	return &Intake{Date: date}, nil
}

func (m *waterRepoMock) List(_ context.Context, _ string) ([]Intake, error) {
	var list []Intake
	for _, intake := range m.intakes {
		list = append(list, *intake)
	}
	return list, nil
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(auth.ContextWithUserID(req.Context(), "user1"))
}

func TestHandleAdd_accumulates(t *testing.T) {
	repo := newWaterRepoMock()
	handler := NewHandler(repo)

	for _, body := range []string{
		`{"date":"2026-03-10","quantity":250}`,
		`{"date":"2026-03-10","quantity":500}`,
	} {
		req := authedRequest(http.MethodPost, "/water-intake", body)
		rr := httptest.NewRecorder()
		handler.HandleAdd(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	intake, ok := repo.intakes["2026-03-10"]
	require.True(t, ok)
	assert.Equal(t, 750, intake.Quantity)
}

func TestHandleAdd_invalidQuantity(t *testing.T) {
	handler := NewHandler(newWaterRepoMock())

	req := authedRequest(http.MethodPost, "/water-intake", `{"date":"2026-03-10","quantity":0}`)
	rr := httptest.NewRecorder()
	handler.HandleAdd(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetDaily_noIntake(t *testing.T) {
	handler := NewHandler(newWaterRepoMock())

	req := authedRequest(http.MethodGet, "/water-intake/daily?date=2026-03-10", "")
	rr := httptest.NewRecorder()
	handler.HandleGetDaily(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var intake Intake
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &intake))
	assert.Zero(t, intake.Quantity)
}

func TestHandleList_empty(t *testing.T) {
	handler := NewHandler(newWaterRepoMock())

	req := authedRequest(http.MethodGet, "/water-intake", "")
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}
