package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"messmate-api/config"
	"messmate-api/models"
)

func TestBookMeal_CreateThenMerge(t *testing.T) {
	setupDB(t)
	r := newRouter()
	_, token := tokenFor(t, "student@example.com", models.UserStudent)
	_, menu := seedMenu(t, "2024-01-15")

	w, env := doJSON(t, r, http.MethodPost, "/api/menu/book", token, map[string]interface{}{
		"dailyMenuId": menu.ID, "quantity": 2, "specialInstructions": "No onions",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("first booking status = %d, body %s", w.Code, w.Body.String())
	}
	var first models.MealBooking
	if err := json.Unmarshal(env.Data, &first); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if first.Quantity != 2 || first.Status != models.BookingConfirmed {
		t.Errorf("first booking = %+v", first)
	}

	w, env = doJSON(t, r, http.MethodPost, "/api/menu/book", token, map[string]interface{}{
		"dailyMenuId": menu.ID, "quantity": 3, "specialInstructions": "Extra spicy",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("second booking status = %d, body %s", w.Code, w.Body.String())
	}
	var merged models.MealBooking
	if err := json.Unmarshal(env.Data, &merged); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if merged.ID != first.ID || merged.Quantity != 5 {
		t.Errorf("merged booking = %+v, want id %d quantity 5", merged, first.ID)
	}
	if merged.SpecialInstructions != "No onions; Extra spicy" {
		t.Errorf("instructions = %q", merged.SpecialInstructions)
	}
}

func TestBookMeal_ClientErrors(t *testing.T) {
	setupDB(t)
	r := newRouter()
	_, token := tokenFor(t, "student@example.com", models.UserStudent)
	_, menu := seedMenu(t, "2024-01-15")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"zero quantity", fmt.Sprintf(`{"dailyMenuId":%d,"quantity":0}`, menu.ID), http.StatusBadRequest},
		{"negative quantity", fmt.Sprintf(`{"dailyMenuId":%d,"quantity":-1}`, menu.ID), http.StatusBadRequest},
		{"malformed id", `{"dailyMenuId":"abc","quantity":1}`, http.StatusBadRequest},
		{"missing id", `{"quantity":1}`, http.StatusBadRequest},
		{"unknown daily menu", `{"dailyMenuId":99999,"quantity":1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, http.MethodPost, "/api/menu/book", token, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected error envelope, got %s", w.Body.String())
			}
		})
	}

	var rows int64
	config.DB.Model(&models.MealBooking{}).Count(&rows)
	if rows != 0 {
		t.Errorf("booking rows = %d, want 0", rows)
	}
}

func TestBookMeal_RequiresAuth(t *testing.T) {
	setupDB(t)
	w, _ := doJSON(t, newRouter(), http.MethodPost, "/api/menu/book", "", `{"dailyMenuId":1,"quantity":1}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestBookingStats_Endpoints(t *testing.T) {
	setupDB(t)
	r := newRouter()
	_, student := tokenFor(t, "student@example.com", models.UserStudent)
	_, staff := tokenFor(t, "staff@example.com", models.UserStaff)
	_, menu := seedMenu(t, "2024-01-15")

	for _, q := range []int{2, 3} {
		body := fmt.Sprintf(`{"dailyMenuId":%d,"quantity":%d}`, menu.ID, q)
		if w, _ := doJSON(t, r, http.MethodPost, "/api/menu/book", student, body); w.Code != http.StatusOK {
			t.Fatalf("booking status = %d", w.Code)
		}
	}

	if w, _ := doJSON(t, r, http.MethodGet, "/api/menu/bookings/stats", student, nil); w.Code != http.StatusForbidden {
		t.Errorf("student stats status = %d, want 403", w.Code)
	}

	w, env := doJSON(t, r, http.MethodGet, "/api/menu/bookings/stats", staff, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body %s", w.Code, w.Body.String())
	}
	var stats []map[string]interface{}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %v, want one entry", stats)
	}
	s := stats[0]
	if s["menuDate"] != "2024-01-15" || s["mealType"] != "LUNCH" ||
		s["totalQuantity"] != float64(5) || s["totalBookings"] != float64(1) {
		t.Errorf("stats entry = %v", s)
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/menu/bookings/stats/2024-01-15", staff, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats by date status = %d", w.Code)
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats) != 1 || stats[0]["menuItemName"] != "Veg Thali" || stats[0]["totalQuantity"] != float64(5) {
		t.Errorf("stats by date = %v", stats)
	}

	if w, _ := doJSON(t, r, http.MethodGet, "/api/menu/bookings/stats/15-01-2024", staff, nil); w.Code != http.StatusBadRequest {
		t.Errorf("malformed date status = %d, want 400", w.Code)
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	setupDB(t)
	r := newRouter()
	_, staff := tokenFor(t, "staff@example.com", models.UserStaff)

	sqlDB, err := config.DB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.Close()

	w, env := doJSON(t, r, http.MethodGet, "/api/menu/bookings/stats", staff, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if env.Code != "INTERNAL_ERROR" || env.Error != "internal server error" {
		t.Errorf("envelope = %+v", env)
	}
	if env.RequestID == "" || env.RequestID != w.Header().Get("X-Request-ID") {
		t.Errorf("request id %q does not match header %q", env.RequestID, w.Header().Get("X-Request-ID"))
	}
}
