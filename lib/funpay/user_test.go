package funpay

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"funpay-client/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestGetUserLots(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:funpay")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("%s/630690/", usersPath), func(w http.ResponseWriter, r *http.Request) {
		w.Write(userLotsPageTest)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	lots, err := GetUserLots(context.Background(), 630690, UserLotsOptions{
		IncludeCurrency: true,
		BaseUrl:         server.URL,
	})
	require.NoError(t, err)
	require.Len(t, lots.Categories, 2)
	require.Len(t, lots.Lots, 3)
}

func TestGetUserLotsNotFound(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:funpay")
	defer cleanup()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := GetUserLots(context.Background(), 999999999, UserLotsOptions{
		BaseUrl: server.URL,
	})
	require.ErrorIs(t, err, ErrNotFound)
}
