package console

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockProxy(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewAPI(ts.URL+"/", 5*time.Second)
}

func TestAPI_ListSendsSearch(t *testing.T) {
	t.Parallel()
	var gotURI string
	api := mockProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	body, err := api.List(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "/customers?search=a+b%26c", gotURI)
	assert.JSONEq(t, `{"items":[]}`, string(body))

	_, err = api.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/customers", gotURI)
}

func TestAPI_DeleteEscapesID(t *testing.T) {
	t.Parallel()
	var gotPath, gotMethod string
	api := mockProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, api.Delete(context.Background(), "a/b c"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/customers/a%2Fb%20c", gotPath)
}

func TestAPI_ErrorMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"not found"}`, "not found"},
		{"error field", `{"error":"RevenueCat request failed","details":"dial tcp"}`, "RevenueCat request failed"},
		{"no known field", `{"code":7}`, deleteFailed},
		{"plain text", `gateway exploded`, "gateway exploded"},
		{"empty body", ``, deleteFailed},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			api := mockProxy(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tc.body))
			})

			err := api.Delete(context.Background(), "c1")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestAPI_ListFallbackMessage(t *testing.T) {
	t.Parallel()
	api := mockProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := api.List(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, listFailed, err.Error())
}
