package email

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailgunSender_Send(t *testing.T) {
	var gotForm map[string]string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/messages", r.URL.Path)

		var ok bool
		gotUser, gotPass, ok = r.BasicAuth()
		require.True(t, ok)

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"from": r.PostForm.Get("from"),
			"to":   r.PostForm.Get("to"),
			"html": r.PostForm.Get("html"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewMailgunSender(srv.URL, "key-test", "Papper Auth <support@example.com>")
	err := s.Send(context.Background(), "user@example.com", "12345")
	require.NoError(t, err)

	assert.Equal(t, "api", gotUser)
	assert.Equal(t, "key-test", gotPass)
	assert.Equal(t, "Papper Auth <support@example.com>", gotForm["from"])
	assert.Equal(t, "user@example.com", gotForm["to"])
	assert.Contains(t, gotForm["html"], "12345")
}

func TestMailgunSender_Send_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewMailgunSender(srv.URL, "bad-key", "from@example.com")
	err := s.Send(context.Background(), "user@example.com", "12345")
	assert.Error(t, err)
}
