package api

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motovision/motovision/internal/credstore"
	"github.com/motovision/motovision/internal/storage"
)

func testCreds(t *testing.T) *credstore.Store {
	t.Helper()
	kv, err := storage.OpenAt(filepath.Join(t.TempDir(), "store.yaml"))
	require.NoError(t, err)
	creds := credstore.New(kv)
	_, err = creds.Set("user@example.com", "secret")
	require.NoError(t, err)
	return creds
}

func TestDoSendsBasicAuthAndJSONHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.ListMotos()
	require.NoError(t, err)

	wantToken := base64.StdEncoding.EncodeToString([]byte("user@example.com:secret"))
	assert.Equal(t, "Basic "+wantToken, gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoPropagatesMissingTokenUnchanged(t *testing.T) {
	kv, err := storage.OpenAt(filepath.Join(t.TempDir(), "store.yaml"))
	require.NoError(t, err)

	c := NewClient("http://127.0.0.1:1", credstore.New(kv))
	_, err = c.ListMotos()

	// "No session" must be distinguishable from request failures.
	require.ErrorIs(t, err, credstore.ErrTokenMissing)
	assert.False(t, IsNetworkError(err))
}

func TestDoClassifiesTransportFailureAsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.ListMotos()

	require.Error(t, err)
	assert.True(t, IsNetworkError(err), "transport failure must surface as a network error, got %v", err)
	_, isAPI := IsAPIError(err)
	assert.False(t, isAPI)
}

func TestDoTruncatedBodyIsNotANetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are written; reading the body fails
		// after the response was received.
		w.Header().Set("Content-Length", "100")
		w.Write([]byte(`short`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.ListMotos()

	require.Error(t, err)
	assert.False(t, IsNetworkError(err), "a failure after a response is not a transport failure, got %v", err)
	_, isAPI := IsAPIError(err)
	assert.False(t, isAPI)
}

func TestDoSurfacesAPIErrorWithStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.GetMoto(99)

	apiErr, ok := IsAPIError(err)
	require.True(t, ok, "expected an API error, got %v", err)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
}

func TestDoKeepsRawTextBodyOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.ListPatios()

	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Body)
	assert.Equal(t, "the server rejected the request", apiErr.Message)
}

func TestDeleteToleratesEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/motos/id/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	require.NoError(t, c.DeleteMoto(5))
}

func TestFilterMotosBuildsQueryFromNonEmptyParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/motos/filtro", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	_, err := c.FilterMotos(MotoFilter{Status: "DISPONIVEL", Placa: ""})
	require.NoError(t, err)

	assert.Equal(t, "status=DISPONIVEL", gotQuery)
}

func TestListMotosUsesCacheUntilMutation(t *testing.T) {
	listCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/motos/todos":
			listCalls++
			w.Write([]byte(`[{"id":1,"modelo":"CG 160","placa":"ABC1D23","status":"DISPONIVEL","nomePatio":"Central"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/motos":
			w.Write([]byte(`{"id":2}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))

	for i := 0; i < 3; i++ {
		motos, err := c.ListMotos()
		require.NoError(t, err)
		require.Len(t, motos, 1)
	}
	assert.Equal(t, 1, listCalls, "repeated lists should be served from cache")

	_, err := c.CreateMoto(Moto{Modelo: "Biz 110i", Placa: "XYZ9K88", Status: "RESERVADA", NomePatio: "Central"})
	require.NoError(t, err)

	_, err = c.ListMotos()
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls, "a vehicle mutation must invalidate the cached list")
}

func TestPatioMutationInvalidatesBothLists(t *testing.T) {
	motoLists, patioLists := 0, 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/motos/todos":
			motoLists++
			w.Write([]byte(`[]`))
		case r.URL.Path == "/patios" && r.Method == http.MethodGet:
			patioLists++
			w.Write([]byte(`[]`))
		case r.URL.Path == "/patios" && r.Method == http.MethodPost:
			w.Write([]byte(`{"id":1,"nome":"Norte","endereco":"Av. B"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))

	_, err := c.ListMotos()
	require.NoError(t, err)
	_, err = c.ListPatios()
	require.NoError(t, err)

	_, err = c.CreatePatio(Patio{Nome: "Norte", Endereco: "Av. B"})
	require.NoError(t, err)

	// Vehicle grouping depends on yard names, so both caches must be cold.
	_, err = c.ListMotos()
	require.NoError(t, err)
	_, err = c.ListPatios()
	require.NoError(t, err)
	assert.Equal(t, 2, motoLists)
	assert.Equal(t, 2, patioLists)
}

func TestUpdateMotoUsesPutWithFullPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/motos/id/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"modelo":"XRE 190","placa":"ABC1D23","status":"MANUTENCAO","nomePatio":"Central"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	moto, err := c.UpdateMoto(7, Moto{Modelo: "XRE 190", Placa: "ABC1D23", Status: "MANUTENCAO", NomePatio: "Central"})
	require.NoError(t, err)
	require.NotNil(t, moto)
	assert.Equal(t, int64(7), moto.ID)
}

func TestWrappedListResponseDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[{"id":1,"nome":"Central","endereco":"Rua A"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))
	patios, err := c.ListPatios()
	require.NoError(t, err)
	require.Len(t, patios, 1)
	assert.Equal(t, "Central", patios[0].Nome)
}

func TestErrorsAreNeverSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testCreds(t))

	for name, call := range map[string]func() error{
		"ListMotos":   func() error { _, err := c.ListMotos(); return err },
		"CreateMoto":  func() error { _, err := c.CreateMoto(Moto{}); return err },
		"DeleteMoto":  func() error { return c.DeleteMoto(1) },
		"ListPatios":  func() error { _, err := c.ListPatios(); return err },
		"DeletePatio": func() error { return c.DeletePatio(1) },
	} {
		err := call()
		require.Error(t, err, name)
		assert.True(t, IsAuthRejected(err), "%s should propagate the 403 unchanged", name)
	}
}
