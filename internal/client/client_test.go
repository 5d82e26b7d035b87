package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trznica/internal/model"
)

func TestClientList(t *testing.T) {
	var gotClientID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/items", r.URL.Path)
		gotClientID = r.Header.Get("X-Client-ID")
		json.NewEncoder(w).Encode(itemsWithIDs(2, 1))
	}))
	defer server.Close()

	c := New(server.URL)
	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, c.SessionID(), gotClientID, "polls carry the session id")
}

func TestClientListServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL).List(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusInternalServerError, terr.Status)
}

func TestClientListUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := New(server.URL).List(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.NotNil(t, terr.Err)
}

func TestClientCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var sub model.Submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, "Bike", sub.Title)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Item{ID: 1, Title: sub.Title})
	}))
	defer server.Close()

	item, err := New(server.URL).Create(context.Background(), model.Submission{Title: "Bike"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
}

func TestClientCreateValidationRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "title must be at least 3 characters"})
	}))
	defer server.Close()

	_, err := New(server.URL).Create(context.Background(), model.Submission{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "title must be at least 3 characters", err.Error(), "server message is surfaced verbatim")
}

func TestClientCreateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(server.URL).Create(context.Background(), model.Submission{})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusBadGateway, terr.Status)
}
