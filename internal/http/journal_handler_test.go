package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/service"
)

type mockJournalRepo struct {
	entries []domain.JournalEntry
}

func (m *mockJournalRepo) Create(_ context.Context, entry domain.JournalEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockJournalRepo) ListByUser(_ context.Context, userID string, from, to *domain.Day) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if from != nil && e.EntryDate.Before(*from) {
			continue
		}
		if to != nil && e.EntryDate.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func setupJournalRouter(repo *mockJournalRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewJournalService(logger, repo)
	h := NewJournalHandler(logger, svc)

	r := gin.New()
	r.POST("/journal", h.CreateEntry)
	r.GET("/journal", h.ListEntries)
	return r
}

func TestCreateJournalEntryEndpoint(t *testing.T) {
	repo := &mockJournalRepo{}
	r := setupJournalRouter(repo)

	w := postJSON(t, r, "/journal", map[string]any{
		"user_id":    "user-1",
		"entry_date": "2025-06-02",
		"mood":       7,
		"dose_taken": true,
		"notes":      "día tranquilo, buena concentración",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected persisted entry")
	}
	if repo.entries[0].EntryDate.String() != "2025-06-02" {
		t.Fatalf("unexpected entry date: %s", repo.entries[0].EntryDate)
	}
}

func TestCreateJournalEntryEndpoint_MoodOutOfRange(t *testing.T) {
	r := setupJournalRouter(&mockJournalRepo{})

	w := postJSON(t, r, "/journal", map[string]any{
		"user_id":    "user-1",
		"entry_date": "2025-06-02",
		"mood":       11,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListJournalEntriesEndpoint_DateRange(t *testing.T) {
	repo := &mockJournalRepo{}
	r := setupJournalRouter(repo)

	for _, date := range []string{"2025-06-01", "2025-06-05", "2025-06-10"} {
		postJSON(t, r, "/journal", map[string]any{
			"user_id":    "user-1",
			"entry_date": date,
			"mood":       5,
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/journal?user_id=user-1&from=2025-06-02&to=2025-06-09", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Entries []domain.JournalEntry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].EntryDate.String() != "2025-06-05" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}
}
