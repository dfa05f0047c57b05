package notify_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-inventory-server/notify"
)

func TestSend(t *testing.T) {
	var gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	sender := notify.NewSender(ts.URL, ts.Client())
	require.NoError(t, sender.Send(context.Background(), "SKU-001 is running low"))
	require.JSONEq(t, `{"text":"SKU-001 is running low"}`, gotBody)
}

func TestSendWebhookFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	sender := notify.NewSender(ts.URL, ts.Client())
	err := sender.Send(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}
