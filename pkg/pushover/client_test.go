package pushover

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "app-token", r.PostForm.Get("token"))
		assert.Equal(t, "user-key", r.PostForm.Get("user"))
		assert.Equal(t, "Test Title", r.PostForm.Get("title"))
		assert.Equal(t, "Test body", r.PostForm.Get("message"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":1,"request":"abc123"}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "app-token", "user-key")
	err := client.Send(context.Background(), "Test Title", "Test body")
	require.NoError(t, err)
}

func TestClient_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":0,"errors":["application token is invalid"]}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "bad-token", "user-key")
	err := client.Send(context.Background(), "t", "m")
	require.Error(t, err)

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
	assert.Contains(t, rejected.Error(), "application token is invalid")
}

func TestClient_Send_StatusZeroOn200(t *testing.T) {
	// Pushover reports some rejections with HTTP 200 and status:0.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":0,"errors":["user key is invalid"]}`))
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, "app-token", "bad-user")
	err := client.Send(context.Background(), "t", "m")

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Reasons, "user key is invalid")
}

func TestClient_Send_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClientWithURL(server.URL, "app-token", "user-key")
	err := client.Send(context.Background(), "t", "m")
	require.Error(t, err)

	var rejected *RejectedError
	assert.False(t, errors.As(err, &rejected), "transport failure must not look like a rejection")
}

func TestClient_Send_NotConfigured(t *testing.T) {
	client := NewClient("", "")
	err := client.Send(context.Background(), "t", "m")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
