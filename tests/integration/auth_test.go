package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	t.Run("register then login", func(t *testing.T) {
		app := setupApp(t)

		accessToken, refreshToken, userID := app.registerUser(t, "shop@example.com", "password123")
		if accessToken == "" || refreshToken == "" || userID == "" {
			t.Fatal("expected tokens and user ID from registration")
		}

		loginAccess, _ := app.loginUser(t, "shop@example.com", "password123")
		rec := app.request("GET", "/api/v1/profile", "", loginAccess)
		if rec.Code != http.StatusOK {
			t.Fatalf("profile fetch failed: %d %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["email"] != "shop@example.com" {
			t.Errorf("expected shop@example.com, got %v", user["email"])
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		app := setupApp(t)
		app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"SHOP@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		app := setupApp(t)
		app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"shop@example.com","password":"wrongpassword"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("account locks after repeated failures", func(t *testing.T) {
		app := setupApp(t)
		app.registerUser(t, "shop@example.com", "password123")

		for i := 0; i < 5; i++ {
			app.request("POST", "/api/v1/auth/login",
				`{"email":"shop@example.com","password":"wrongpassword"}`, "")
		}

		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"shop@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusLocked {
			t.Fatalf("expected 423, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh rotates tokens", func(t *testing.T) {
		app := setupApp(t)
		_, refreshToken, _ := app.registerUser(t, "shop@example.com", "password123")

		body := fmt.Sprintf(`{"refresh_token":%q}`, refreshToken)
		rec := app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		newAccess := result["access_token"].(string)
		if newAccess == "" {
			t.Fatal("expected new access token")
		}

		// The old refresh token was rotated out and no longer works.
		rec = app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for stale refresh token, got %d", rec.Code)
		}
	})

	t.Run("logout revokes refresh token", func(t *testing.T) {
		app := setupApp(t)
		accessToken, refreshToken, _ := app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("POST", "/api/v1/auth/logout", "", accessToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("logout failed: %d %s", rec.Code, rec.Body.String())
		}

		body := fmt.Sprintf(`{"refresh_token":%q}`, refreshToken)
		rec = app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", rec.Code)
		}
	})

	t.Run("protected route requires token", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("GET", "/api/v1/people", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		app := setupApp(t)
		_, refreshToken, _ := app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("GET", "/api/v1/people", "", refreshToken)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("change password revokes session and old password", func(t *testing.T) {
		app := setupApp(t)
		accessToken, refreshToken, _ := app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("PUT", "/api/v1/profile/password",
			`{"current_password":"password123","new_password":"newpassword456"}`, accessToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("change password failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("POST", "/api/v1/auth/login",
			`{"email":"shop@example.com","password":"password123"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected old password rejected, got %d", rec.Code)
		}

		app.loginUser(t, "shop@example.com", "newpassword456")

		body := fmt.Sprintf(`{"refresh_token":%q}`, refreshToken)
		rec = app.request("POST", "/api/v1/auth/refresh", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected old refresh token revoked, got %d", rec.Code)
		}
	})
}
