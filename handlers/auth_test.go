package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	setupDB(t)
	r := newRouter()

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"name":"Asha","email":"Asha@Example.com","password":"secret1","rollNumber":"STU042"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	var reg struct {
		Token string `json:"token"`
		User  struct {
			Email    string `json:"email"`
			UserType string `json:"userType"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if reg.Token == "" || reg.User.Email != "asha@example.com" || reg.User.UserType != "STUDENT" {
		t.Errorf("register payload = %+v", reg)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"name":"Asha","email":"asha@example.com","password":"secret1"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"email":"asha@example.com","password":"secret1"}`, http.StatusOK},
		{"wrong password", `{"email":"asha@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"ghost@example.com","password":"secret1"}`, http.StatusUnauthorized},
		{"malformed email", `{"email":"asha","password":"secret1"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w, _ := doJSON(t, r, http.MethodPost, "/api/auth/login", "", tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	setupDB(t)
	w, _ := doJSON(t, newRouter(), http.MethodPost, "/api/auth/register", "",
		`{"name":"Ravi","email":"ravi@example.com","password":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
