package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dreamhome/internal/domain"
	"dreamhome/internal/http/handlers"
)

func TestContactOwner(t *testing.T) {
	env := newTestEnv(t, handlers.AppOptions{})
	ctx := context.Background()
	pid, err := env.stores.Properties.Insert(ctx, &domain.PropertyRecord{Title: "Sea Flat", PropertyType: "Flat"})
	if err != nil {
		t.Fatal(err)
	}

	resp, body := env.do(t, "POST", "/api/contact-owner", map[string]string{
		"name": "Ravi", "contact_no": "100", "message": "Is it available?", "property_id": pid,
	}, "")
	if resp.StatusCode != http.StatusOK || body["message"] != "Query submitted successfully" || body["query_id"] == "" {
		t.Fatalf("submit: %d %v", resp.StatusCode, body)
	}

	bad := []struct {
		name   string
		req    map[string]string
		status int
		detail string
	}{
		{"no name", map[string]string{"message": "hi", "property_id": pid}, http.StatusBadRequest, "Name is required"},
		{"no message", map[string]string{"name": "Ravi", "property_id": pid}, http.StatusBadRequest, "Message is required"},
		{"separators in number", map[string]string{"name": "Ravi", "message": "hi", "contact_no": "98765 43210", "property_id": pid}, http.StatusBadRequest, "Contact number must contain only digits"},
		{"letters in number", map[string]string{"name": "Ravi", "message": "hi", "contact_no": "call me", "property_id": pid}, http.StatusBadRequest, "Contact number must contain only digits"},
		{"unknown listing", map[string]string{"name": "Ravi", "message": "hi", "property_id": "missing"}, http.StatusNotFound, "Property not found"},
		{"malformed id", map[string]string{"name": "Ravi", "message": "hi", "property_id": "../x"}, http.StatusNotFound, "Property not found"},
	}
	for _, c := range bad {
		resp, body := env.do(t, "POST", "/api/contact-owner", c.req, "")
		if resp.StatusCode != c.status || body["detail"] != c.detail {
			t.Errorf("%s: %d %v", c.name, resp.StatusCode, body)
		}
	}

	got, err := env.stores.Inquiries.ByProperty(ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ContactNo != "100" {
		t.Fatalf("stored inquiries = %+v", got)
	}
}

func TestOwnerInbox(t *testing.T) {
	env := newTestEnv(t, handlers.AppOptions{})
	owner := env.registerAndLogin(t, "owner@example.com")
	other := env.registerAndLogin(t, "other@example.com")

	resp, body := createListing(t, env, owner, villaForm)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: %d %v", resp.StatusCode, body)
	}
	pid := body["property_id"].(string)
	env.do(t, "POST", "/api/contact-owner", map[string]string{"name": "Ravi", "message": "Still free?", "property_id": pid}, "")

	req := httptest.NewRequest("GET", "/api/user/properties/"+pid+"/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+owner)
	r, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var inbox []map[string]any
	decodeInto(t, r, &inbox)
	if r.StatusCode != http.StatusOK || len(inbox) != 1 || inbox[0]["message"] != "Still free?" {
		t.Fatalf("inbox: %d %v", r.StatusCode, inbox)
	}

	resp, body = env.do(t, "GET", "/api/user/properties/"+pid+"/inquiries", nil, other)
	if resp.StatusCode != http.StatusNotFound || body["detail"] != "Property not found" {
		t.Fatalf("other user: %d %v", resp.StatusCode, body)
	}
}
