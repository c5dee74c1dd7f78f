package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/1/contact", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id":1,"name":"Мария","phone":"+79990000000"}`))
	})
	mux.HandleFunc("/internal/users/2/contact", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/internal/users/3/contact", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":503,"message":"maintenance"}`))
	})
	mux.HandleFunc("/internal/users/4/contact", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetContact(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	contact, err := c.GetContact(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Мария", contact.Name)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "+79990000000", *contact.Phone)
	assert.Nil(t, contact.Email)

	_, err = c.GetContact(context.Background(), 2)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = c.GetContact(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "maintenance")

	_, err = c.GetContact(context.Background(), 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetContactWithGracefulDegradation(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := c.GetContactWithGracefulDegradation(context.Background(), 2)
	assert.ErrorIs(t, err, ErrContactNotFound)

	_, err = c.GetContactWithGracefulDegradation(context.Background(), 3)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	down := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())
	_, err = down.GetContactWithGracefulDegradation(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
