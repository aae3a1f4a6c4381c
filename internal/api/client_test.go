package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/favtui/fav/internal/api"
	"github.com/favtui/fav/internal/model"
)

func TestClient_Folders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/folders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Favorites", "parent_id": null, "children": [
				{"id": 2, "name": "Work", "parent_id": 1, "children": []}
			]}
		]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	folders, err := client.Folders(context.Background())
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("expected 1 root folder, got %d", len(folders))
	}
	if len(folders[0].Children) != 1 || folders[0].Children[0].Name != "Work" {
		t.Errorf("unexpected children: %+v", folders[0].Children)
	}
}

func TestClient_FolderFavorites_Pagination(t *testing.T) {
	var gotSkip, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/folders/2/favorites" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotSkip = r.URL.Query().Get("skip")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[{"id": 7, "url": "https://go.dev", "folder_id": 2, "tags": []}]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	favorites, err := client.FolderFavorites(context.Background(), 2, 50, 50)
	if err != nil {
		t.Fatalf("FolderFavorites: %v", err)
	}
	if gotSkip != "50" || gotLimit != "50" {
		t.Errorf("pagination params: skip=%s limit=%s, want 50/50", gotSkip, gotLimit)
	}
	if len(favorites) != 1 || favorites[0].ID != 7 {
		t.Errorf("unexpected favorites: %+v", favorites)
	}
}

func TestClient_FuzzyTagFavorites_DetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "no tags match query"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	_, err := client.FuzzyTagFavorites(context.Background(), "nope", 0, 50)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", apiErr.Status)
	}
	if apiErr.Detail != "no tags match query" {
		t.Errorf("detail: got %q", apiErr.Detail)
	}
	if apiErr.Op != "fuzzy tag search" {
		t.Errorf("op: got %q", apiErr.Op)
	}
}

func TestClient_UpdateFavorite_SendsTagNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method: got %s, want PUT", r.Method)
		}

		var body struct {
			Tags *[]string `json:"tags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Tags == nil || len(*body.Tags) != 2 {
			t.Errorf("tags: got %v, want two names", body.Tags)
		}

		_, _ = w.Write([]byte(`{
			"id": 7, "url": "https://go.dev", "folder_id": 2,
			"tags": [{"id": 1, "name": "go"}, {"id": 9, "name": "docs"}]
		}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	tags := []string{"go", "docs"}
	updated, err := client.UpdateFavorite(context.Background(), 7, api.UpdateFavoriteParams{Tags: &tags})
	if err != nil {
		t.Fatalf("UpdateFavorite: %v", err)
	}

	// Tag ids come back server-assigned.
	if len(updated.Tags) != 2 || updated.Tags[1].ID != 9 {
		t.Errorf("unexpected tags: %+v", updated.Tags)
	}
}

func TestClient_DeleteFavorite_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	if err := client.DeleteFavorite(context.Background(), 7); err != nil {
		t.Fatalf("DeleteFavorite: %v", err)
	}
}

func TestClient_VectorSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/favorites/search/vector" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "static site generators" {
			t.Errorf("query param: got %q", got)
		}
		_, _ = w.Write([]byte(`[
			{"id": 3, "url": "https://gohugo.io", "folder_id": 1, "tags": []},
			{"id": 5, "url": "https://jekyllrb.com", "folder_id": 1, "tags": []}
		]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	results, err := client.VectorSearch(context.Background(), "static site generators", api.DefaultSearchLimit)
	if err != nil {
		t.Fatalf("VectorSearch: %v", err)
	}

	// Ranked server order is preserved.
	if len(results) != 2 || results[0].ID != 3 || results[1].ID != 5 {
		t.Errorf("unexpected order: %+v", results)
	}
}

func TestClient_ImportFavorites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/favorites/import" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var favorites []model.Favorite
		if err := json.NewDecoder(r.Body).Decode(&favorites); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(favorites) != 1 || favorites[0].URL != "https://go.dev" {
			t.Errorf("unexpected body: %+v", favorites)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	err := client.ImportFavorites(context.Background(), []model.Favorite{{URL: "https://go.dev"}})
	if err != nil {
		t.Fatalf("ImportFavorites: %v", err)
	}
}
