package api

import (
	"net/http"
	"strings"
	"testing"

	"fleetdash/internal/model"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user entity in body, got %v", body)
	}
	if user["username"] != "alice" {
		t.Errorf("username = %v, want alice", user["username"])
	}
	if user["is_admin"] != false {
		t.Error("registered users must not be admin")
	}
	if strings.Contains(w.Body.String(), "s3cret") {
		t.Error("response must not contain the password")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)

	w := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "pw",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate username status = %d, want 409", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "pw",
	}, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", w.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	env.createUser(t, "frozen", "frozen@example.com", "pw", false, false)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "pw"},
		{"wrong password", "alice", "wrong"},
		{"inactive account", "frozen", "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
				"username": tt.username,
				"password": tt.password,
			}, nil)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			// All failure modes must be indistinguishable.
			if body := decodeBody(t, w); body["error"] != "Invalid credentials" {
				t.Errorf("error = %v, want %q", body["error"], "Invalid credentials")
			}
		})
	}
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("username = %v, want alice", user["username"])
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogout_InvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", w.Code)
	}
}

func TestProfileUpdate_OwnUsernameNoConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"username": "alice",
	}, cookies)
	if w.Code != http.StatusOK {
		t.Errorf("renaming to own username status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestProfileUpdate_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	env.createUser(t, "bob", "bob@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"username": "bob",
	}, cookies)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestProfileUpdate_AdminEscalationRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]interface{}{
		"is_admin": true,
	}, cookies)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403: %s", w.Code, w.Body.String())
	}

	var reloaded model.User
	if err := env.db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.IsAdmin {
		t.Error("non-admin must not be able to grant itself admin")
	}
}

func TestProfileUpdate_AdminMayToggleAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "root", "root@example.com", "pw", true, true)
	cookies := env.login(t, "root", "pw")

	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]interface{}{
		"is_admin": false,
	}, cookies)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestProfileUpdate_PasswordChange(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	// Missing current password
	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"new_password": "newpw",
	}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing current password status = %d, want 400", w.Code)
	}

	// Wrong current password
	w = env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"current_password": "wrong",
		"new_password":     "newpw",
	}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong current password status = %d, want 400", w.Code)
	}

	// Correct current password
	w = env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"current_password": "pw",
		"new_password":     "newpw",
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("password change status = %d, want 200: %s", w.Code, w.Body.String())
	}

	env.login(t, "alice", "newpw")
}

func TestProfileUpdate_RenameKeepsSession(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "pw", false, true)
	cookies := env.login(t, "alice", "pw")

	w := env.do(t, http.MethodPut, "/api/auth/profile", map[string]string{
		"username": "alicia",
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("rename status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("me after rename status = %d, want 200", w.Code)
	}
	user := decodeBody(t, w)["user"].(map[string]interface{})
	if user["username"] != "alicia" {
		t.Errorf("username = %v, want alicia", user["username"])
	}
}
