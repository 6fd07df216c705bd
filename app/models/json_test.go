package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shashiranjanraj/zaika/app/models"
)

func jsonKeys(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

// Every model serializes with camelCase keys only: no PascalCase leakage
// from the base columns and no soft-delete marker.
func TestModelJSONShape(t *testing.T) {
	rzp := "order_ABC"
	cases := map[string]interface{}{
		"user":        models.User{ID: 1, Username: "ravi", Email: "ravi@example.com", Password: "hash"},
		"reservation": models.Reservation{ID: 1, FirstName: "Asha"},
		"order":       models.Order{ID: 1, UserID: 1, RazorpayOrderID: &rzp},
	}

	for name, model := range cases {
		keys := jsonKeys(t, model)
		for _, forbidden := range []string{"ID", "CreatedAt", "UpdatedAt", "DeletedAt"} {
			if _, ok := keys[forbidden]; ok {
				t.Errorf("%s: key %q must not appear in JSON", name, forbidden)
			}
		}
		if _, ok := keys["id"]; !ok {
			t.Errorf("%s: expected camelCase id key", name)
		}
		if _, ok := keys["createdAt"]; !ok {
			t.Errorf("%s: expected createdAt key", name)
		}
	}

	if _, ok := jsonKeys(t, models.User{Password: "hash"})["password"]; ok {
		t.Error("user: password hash must never serialize")
	}
}
