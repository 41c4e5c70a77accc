package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"messmate-api/models"
)

func TestUserStatsAndSearch(t *testing.T) {
	setupDB(t)
	r := newRouter()
	_, admin := tokenFor(t, "admin@example.com", models.UserAdmin)
	_, staff := tokenFor(t, "staff@example.com", models.UserStaff)
	tokenFor(t, "asha@example.com", models.UserStudent)
	tokenFor(t, "ravi@example.com", models.UserStudent)

	if w, _ := doJSON(t, r, http.MethodGet, "/api/users/stats", staff, nil); w.Code != http.StatusForbidden {
		t.Errorf("staff status = %d, want 403", w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/users/stats", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats map[string]int64
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	want := map[string]int64{"totalStudents": 2, "totalStaff": 1, "totalAdmins": 1, "totalUsers": 4}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("%s = %d, want %d", k, stats[k], v)
		}
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/users/search?query=ASHA", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	var users []models.User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 1 || users[0].Email != "asha@example.com" {
		t.Errorf("search result = %+v", users)
	}

	if w, _ := doJSON(t, r, http.MethodGet, "/api/users/search", admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("empty query status = %d, want 400", w.Code)
	}
}
