package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestPersonFlow(t *testing.T) {
	t.Run("create person with group and contacts", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("POST", "/api/v1/groups", `{"name":"Village East"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create group failed: %d %s", rec.Code, rec.Body.String())
		}
		group := parseJSON(t, rec)["group"].(map[string]interface{})
		groupID := group["id"].(string)

		body := fmt.Sprintf(`{"name":"Ravi Kumar","group_id":%q,"contacts":[{"number":"9876543210","tag":"mobile"}]}`, groupID)
		rec = app.request("POST", "/api/v1/people", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create person failed: %d %s", rec.Code, rec.Body.String())
		}
		person := parseJSON(t, rec)["person"].(map[string]interface{})
		if person["group_id"] != groupID {
			t.Errorf("expected group attached, got %v", person["group_id"])
		}
	})

	t.Run("roster reflects balances and totals", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "shop@example.com", "password123")

		raviID := app.createPerson(t, token, "Ravi Kumar")
		app.createPerson(t, token, "Sita Devi")

		app.recordTransaction(t, token, raviID, "borrowed", 500)
		app.recordTransaction(t, token, raviID, "paid", 200)

		rec := app.request("GET", "/api/v1/people", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("list people failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)

		totals := result["totals"].(map[string]interface{})
		if totals["customers"] != float64(2) {
			t.Errorf("expected 2 customers, got %v", totals["customers"])
		}
		if totals["total_owed"] != "300" {
			t.Errorf("expected total owed 300, got %v", totals["total_owed"])
		}

		people := result["people"].([]interface{})
		if len(people) != 2 {
			t.Fatalf("expected 2 people, got %d", len(people))
		}
		for _, p := range people {
			person := p.(map[string]interface{})
			if person["name"] == "Ravi Kumar" && person["balance"] != "300" {
				t.Errorf("expected Ravi balance 300, got %v", person["balance"])
			}
		}
	})

	t.Run("search and sort filter the roster but not totals", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "shop@example.com", "password123")

		raviID := app.createPerson(t, token, "Ravi Kumar")
		sitaID := app.createPerson(t, token, "Sita Devi")

		app.recordTransaction(t, token, raviID, "borrowed", 100)
		app.recordTransaction(t, token, sitaID, "borrowed", 400)

		rec := app.request("GET", "/api/v1/people?search=sita", "", token)
		result := parseJSON(t, rec)
		people := result["people"].([]interface{})
		if len(people) != 1 {
			t.Fatalf("expected 1 match, got %d", len(people))
		}
		totals := result["totals"].(map[string]interface{})
		if totals["total_owed"] != "500" {
			t.Errorf("expected base-wide totals 500, got %v", totals["total_owed"])
		}

		rec = app.request("GET", "/api/v1/people?sort=balance-high", "", token)
		people = parseJSON(t, rec)["people"].([]interface{})
		first := people[0].(map[string]interface{})
		if first["name"] != "Sita Devi" {
			t.Errorf("expected Sita first by balance, got %v", first["name"])
		}
	})

	t.Run("cross owner person is invisible", func(t *testing.T) {
		app := setupApp(t)
		ownerToken, _, _ := app.registerUser(t, "owner@example.com", "password123")
		intruderToken, _, _ := app.registerUser(t, "intruder@example.com", "password123")

		personID := app.createPerson(t, ownerToken, "Ravi Kumar")

		rec := app.request("GET", "/api/v1/people/"+personID, "", intruderToken)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("update person detaches group with empty string", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "shop@example.com", "password123")

		rec := app.request("POST", "/api/v1/groups", `{"name":"Village East"}`, token)
		group := parseJSON(t, rec)["group"].(map[string]interface{})
		groupID := group["id"].(string)

		body := fmt.Sprintf(`{"name":"Ravi Kumar","group_id":%q}`, groupID)
		rec = app.request("POST", "/api/v1/people", body, token)
		person := parseJSON(t, rec)["person"].(map[string]interface{})
		personID := person["id"].(string)

		rec = app.request("PUT", "/api/v1/people/"+personID, `{"group_id":""}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/people/"+personID, "", token)
		person = parseJSON(t, rec)["person"].(map[string]interface{})
		if person["group_id"] != nil {
			t.Errorf("expected group detached, got %v", person["group_id"])
		}
	})

	t.Run("contact update and delete", func(t *testing.T) {
		app := setupApp(t)
		token, _, _ := app.registerUser(t, "shop@example.com", "password123")
		personID := app.createPerson(t, token, "Ravi Kumar")

		rec := app.request("POST", "/api/v1/people/"+personID+"/contacts",
			`{"number":"9876543210","tag":"mobile"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add contact failed: %d %s", rec.Code, rec.Body.String())
		}
		contact := parseJSON(t, rec)["contact"].(map[string]interface{})
		contactID := contact["id"].(string)

		rec = app.request("PUT", "/api/v1/contacts/"+contactID,
			`{"number":"9123456789","tag":"work"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update contact failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("DELETE", "/api/v1/contacts/"+contactID, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete contact failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("PUT", "/api/v1/contacts/"+contactID,
			`{"number":"9123456789"}`, token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
	})
}
