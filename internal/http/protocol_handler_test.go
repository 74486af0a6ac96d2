package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/service"
)

type mockProtocolRepo struct {
	protocols map[string]domain.Protocol
	events    map[string][]domain.ProtocolEvent
}

func newMockProtocolRepo() *mockProtocolRepo {
	return &mockProtocolRepo{
		protocols: make(map[string]domain.Protocol),
		events:    make(map[string][]domain.ProtocolEvent),
	}
}

func (m *mockProtocolRepo) Create(_ context.Context, protocol domain.Protocol, events []domain.ProtocolEvent) error {
	m.protocols[protocol.ID] = protocol
	m.events[protocol.ID] = events
	return nil
}

func (m *mockProtocolRepo) GetByID(_ context.Context, id string) (domain.Protocol, error) {
	p, ok := m.protocols[id]
	if !ok {
		return domain.Protocol{}, pgx.ErrNoRows
	}
	p.Events = m.events[id]
	return p, nil
}

func (m *mockProtocolRepo) ListByUser(_ context.Context, userID string) ([]domain.Protocol, error) {
	var out []domain.Protocol
	for _, p := range m.protocols {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func setupProtocolRouter(repo *mockProtocolRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewProtocolService(logger, repo, service.NewMemoryReminderQueue())
	h := NewProtocolHandler(logger, svc)

	r := gin.New()
	r.POST("/protocols", h.CreateProtocol)
	r.GET("/protocols", h.ListProtocols)
	r.GET("/protocols/:id", h.GetProtocol)
	return r
}

func validProtocolBody() map[string]any {
	return map[string]any{
		"user_id":            "user-1",
		"type":               "stamets",
		"start_date":         "2025-06-02",
		"cycle_length_weeks": 4,
		"reminder_time":      "08:00",
		"dose": map[string]any{
			"gender":      "male",
			"weight_kg":   70,
			"substance":   "psilocybin",
			"intake_form": "dried_mushrooms",
			"sensitivity": 1.0,
			"goal":        "standard",
		},
	}
}

func TestCreateProtocolEndpoint(t *testing.T) {
	repo := newMockProtocolRepo()
	r := setupProtocolRouter(repo)

	w := postJSON(t, r, "/protocols", validProtocolBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Protocol domain.Protocol `json:"protocol"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Protocol.ID == "" || resp.Protocol.Type != domain.ProtocolStamets {
		t.Fatalf("unexpected protocol: %+v", resp.Protocol)
	}
	if len(resp.Protocol.Events) != 4*7+1 {
		t.Fatalf("expected 29 events, got %d", len(resp.Protocol.Events))
	}
	// stamets arranca con 4 días de dosis
	for i := 0; i < 4; i++ {
		if resp.Protocol.Events[i].Type != domain.EventDose {
			t.Fatalf("event %d: expected dose, got %s", i, resp.Protocol.Events[i].Type)
		}
	}
	if resp.Protocol.Events[4].Type != domain.EventPause {
		t.Fatalf("event 4: expected pause")
	}
}

func TestCreateProtocolEndpoint_DomainViolation(t *testing.T) {
	r := setupProtocolRouter(newMockProtocolRepo())

	body := validProtocolBody()
	body["type"] = "custom"
	body["dose_days"] = []int{0, 1, 2, 3, 4}

	w := postJSON(t, r, "/protocols", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProtocolEndpoint_BadDate(t *testing.T) {
	r := setupProtocolRouter(newMockProtocolRepo())

	body := validProtocolBody()
	body["start_date"] = "06/02/2025"

	w := postJSON(t, r, "/protocols", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetProtocolEndpoint(t *testing.T) {
	repo := newMockProtocolRepo()
	r := setupProtocolRouter(repo)

	w := postJSON(t, r, "/protocols", validProtocolBody())
	var created struct {
		Protocol domain.Protocol `json:"protocol"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protocols/"+created.Protocol.ID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protocols/missing", nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)
	if w3.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w3.Code)
	}
}

func TestListProtocolsEndpoint(t *testing.T) {
	repo := newMockProtocolRepo()
	r := setupProtocolRouter(repo)

	postJSON(t, r, "/protocols", validProtocolBody())

	req := httptest.NewRequest(http.MethodGet, "/protocols?user_id=user-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Protocols []domain.Protocol `json:"protocols"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Protocols) != 1 {
		t.Fatalf("expected 1 protocol, got %d", len(resp.Protocols))
	}
}
