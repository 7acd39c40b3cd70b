package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetVariableUpdatesExisting(t *testing.T) {
	var sawPatch bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/repos/acme/radar/actions/variables/CONFIG_YAML" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected authorization %q", got)
		}
		var payload struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		if errDecode := json.NewDecoder(r.Body).Decode(&payload); errDecode != nil {
			t.Fatalf("decode payload: %v", errDecode)
		}
		if payload.Name != VariableConfigYAML || payload.Value != "app:\n" {
			t.Fatalf("unexpected payload %+v", payload)
		}
		sawPatch = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient("acme", "radar", "tok").WithBaseURL(server.URL)
	if errSet := client.SetVariable(context.Background(), VariableConfigYAML, "app:\n"); errSet != nil {
		t.Fatalf("set variable: %v", errSet)
	}
	if !sawPatch {
		t.Fatal("expected PATCH request")
	}
}

func TestSetVariableFallsBackToCreate(t *testing.T) {
	var sawPost bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPost:
			if r.URL.Path != "/repos/acme/radar/actions/variables" {
				t.Fatalf("unexpected create path %s", r.URL.Path)
			}
			sawPost = true
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client := NewClient("acme", "radar", "tok").WithBaseURL(server.URL)
	if errSet := client.SetVariable(context.Background(), VariableFrequencyWords, "AI"); errSet != nil {
		t.Fatalf("set variable: %v", errSet)
	}
	if !sawPost {
		t.Fatal("expected POST fallback")
	}
}

func TestSetVariableSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("acme", "radar", "bad").WithBaseURL(server.URL)
	if errSet := client.SetVariable(context.Background(), VariableConfigYAML, "x"); errSet == nil {
		t.Fatal("expected error on 401")
	}
}
