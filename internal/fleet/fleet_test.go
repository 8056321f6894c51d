package fleet

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/credstore"
	"github.com/motovision/motovision/internal/storage"
)

func identity(key string) string { return key }

func TestListStateLastInitiatedWins(t *testing.T) {
	var s ListState[api.Moto]

	first := s.Begin()
	second := s.Begin()

	// The second load resolves first.
	applied := s.Apply(second, []api.Moto{{Placa: "NEW1234"}}, nil)
	assert.True(t, applied)

	// The stale first load resolves afterwards and must be dropped.
	applied = s.Apply(first, []api.Moto{{Placa: "OLD1234"}}, nil)
	assert.False(t, applied)

	data, loading, err := s.Snapshot()
	require.NoError(t, err)
	assert.False(t, loading)
	require.Len(t, data, 1)
	assert.Equal(t, "NEW1234", data[0].Placa)
}

func TestListStateStaleErrorDoesNotClobberFreshData(t *testing.T) {
	var s ListState[api.Moto]

	first := s.Begin()
	second := s.Begin()

	require.True(t, s.Apply(second, []api.Moto{{Placa: "ABC1D23"}}, nil))
	require.False(t, s.Apply(first, nil, assert.AnError))

	data, _, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, data, 1)
}

func TestSessionGuardPromptsExactlyOnceUnderConcurrency(t *testing.T) {
	var g SessionGuard

	const failures = 16
	prompts := make(chan bool, failures)
	var wg sync.WaitGroup
	for i := 0; i < failures; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prompts <- g.ShouldPrompt()
		}()
	}
	wg.Wait()
	close(prompts)

	shown := 0
	for p := range prompts {
		if p {
			shown++
		}
	}
	assert.Equal(t, 1, shown, "concurrent auth failures must produce exactly one prompt")

	g.Reset()
	assert.True(t, g.ShouldPrompt(), "guard re-arms after Reset")
}

func TestGroupByPatioPartitionsAndSorts(t *testing.T) {
	motos := []api.Moto{
		{Placa: "GGG1111", Status: "SINISTRO", NomePatio: "Central"},
		{Placa: "AAA1111", Status: "DISPONIVEL", NomePatio: "Central"},
		{Placa: "BBB2222", Status: "RESERVADA", NomePatio: "Norte"},
		{Placa: "CCC3333", Status: "DISPONIVEL", NomePatio: ""},
		{Placa: "DDD4444", Status: "MANUTENCAO", NomePatio: "Norte"},
		{Placa: "AAA0001", Status: "DISPONIVEL", NomePatio: "Central"},
	}

	sections := GroupByPatio(motos, "Pátio não informado")

	// 2 distinct yards plus the placeholder section.
	require.Len(t, sections, 3)
	assert.Equal(t, "Central", sections[0].Titulo)
	assert.Equal(t, "Norte", sections[1].Titulo)
	assert.Equal(t, "Pátio não informado", sections[2].Titulo)

	// Membership is exact.
	assert.Len(t, sections[0].Motos, 3)
	assert.Len(t, sections[1].Motos, 2)
	assert.Len(t, sections[2].Motos, 1)

	// Within a section: setor ascending, then placa.
	central := sections[0].Motos
	assert.Equal(t, "AAA0001", central[0].Placa) // setor A
	assert.Equal(t, "AAA1111", central[1].Placa) // setor A
	assert.Equal(t, "GGG1111", central[2].Placa) // setor G

	norte := sections[1].Motos
	assert.Equal(t, "BBB2222", norte[0].Placa) // setor B before C
	assert.Equal(t, "DDD4444", norte[1].Placa)
}

func TestGroupByPatioUnknownStatusSortsLast(t *testing.T) {
	motos := []api.Moto{
		{Placa: "ZZZ9999", Status: "INVENTED", NomePatio: "Central"},
		{Placa: "AAA1111", Status: "SINISTRO", NomePatio: "Central"},
	}

	sections := GroupByPatio(motos, "?")
	require.Len(t, sections, 1)
	assert.Equal(t, "AAA1111", sections[0].Motos[0].Placa)
	assert.Equal(t, "ZZZ9999", sections[0].Motos[1].Placa)
}

func TestValidateMotoPlacaFormat(t *testing.T) {
	patios := []api.Patio{{Nome: "Central"}}

	valid := MotoInput{Modelo: "CG 160", Status: "DISPONIVEL", NomePatio: "Central"}

	tests := []struct {
		name  string
		placa string
		ok    bool
	}{
		{"seven uppercase alphanumerics", "ABC1D23", true},
		{"lowercase input is uppercased first", "abc1d23", true},
		{"padded input is trimmed first", " ABC1D23 ", true},
		{"six characters", "ABC123", false},
		{"eight characters", "ABC12345", false},
		{"punctuation", "ABC-123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Placa = tt.placa

			moto, errs := ValidateMoto(in, patios, identity)
			if tt.ok {
				assert.Empty(t, errs)
				assert.Equal(t, "ABC1D23", moto.Placa, "payload carries the normalized plate")
			} else {
				assert.Contains(t, errs, "placa")
			}
		})
	}
}

func TestValidateMotoFieldKeyedErrors(t *testing.T) {
	_, errs := ValidateMoto(MotoInput{Status: "EMPRESTADA", NomePatio: "Fantasma"}, nil, identity)

	assert.Equal(t, "form.errors.required", errs["modelo"])
	assert.Equal(t, "form.errors.required", errs["placa"])
	assert.Equal(t, "form.errors.invalidStatus", errs["status"])
	assert.Equal(t, "form.errors.unknownYard", errs["nomePatio"])
}

func TestValidatePatioRequiresBothFields(t *testing.T) {
	_, errs := ValidatePatio("  ", "", identity)
	assert.Contains(t, errs, "nome")
	assert.Contains(t, errs, "endereco")

	patio, errs := ValidatePatio(" Central ", "Rua A, 10", identity)
	assert.Empty(t, errs)
	assert.Equal(t, "Central", patio.Nome)
}

func TestValidateRegistrationCPF(t *testing.T) {
	base := RegistrationInput{
		Nome:           "Ana",
		Email:          "ana@example.com",
		Senha:          "s3nha",
		ConfirmarSenha: "s3nha",
	}

	tests := []struct {
		name string
		cpf  string
		ok   bool
	}{
		{"eleven digits", "12345678901", true},
		{"ten digits", "1234567890", false},
		{"twelve digits", "123456789012", false},
		{"letters", "1234567890a", false},
		{"punctuated", "123.456.789", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.CPF = tt.cpf
			errs := ValidateRegistration(in, identity)
			if tt.ok {
				assert.Empty(t, errs)
			} else {
				assert.Contains(t, errs, "cpf")
			}
		})
	}
}

func TestValidateRegistrationPasswordMismatch(t *testing.T) {
	errs := ValidateRegistration(RegistrationInput{
		Nome:           "Ana",
		CPF:            "12345678901",
		Email:          "ana@example.com",
		Senha:          "um",
		ConfirmarSenha: "outro",
	}, identity)

	assert.Contains(t, errs, "confirmarSenha")
}

func TestRouteClassification(t *testing.T) {
	t.Run("missing token routes to login", func(t *testing.T) {
		r := Route(credstore.ErrTokenMissing, identity)
		assert.Equal(t, RouteSessionExpired, r.Kind)
	})

	t.Run("http 401 routes to login", func(t *testing.T) {
		err := failingCallError(t, http.StatusUnauthorized, `{"message":"expired"}`)
		r := Route(err, identity)
		assert.Equal(t, RouteSessionExpired, r.Kind)
	})

	t.Run("transport failure is retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		c := newTestClient(t, srv.URL)
		_, err := c.ListMotos()
		require.Error(t, err)

		r := Route(err, identity)
		assert.Equal(t, RouteNetwork, r.Kind)
		assert.Equal(t, "errors.network", r.Message)
	})

	t.Run("api message is surfaced", func(t *testing.T) {
		err := failingCallError(t, http.StatusConflict, `{"message":"placa duplicada"}`)
		r := Route(err, identity)
		assert.Equal(t, RouteMessage, r.Kind)
		assert.Equal(t, "placa duplicada", r.Message)
	})

	t.Run("validation errors are joined", func(t *testing.T) {
		body := `{"message":"Validation failed","errors":[{"defaultMessage":"placa inválida"},{"defaultMessage":"status inválido"}]}`
		err := failingCallError(t, http.StatusBadRequest, body)
		r := Route(err, identity)
		assert.Equal(t, RouteMessage, r.Kind)
		assert.Equal(t, "placa inválida\nstatus inválido", r.Message)
	})

	t.Run("unintelligible body falls back to generic", func(t *testing.T) {
		err := failingCallError(t, http.StatusBadGateway, `<html>nope</html>`)
		r := Route(err, identity)
		assert.Equal(t, RouteMessage, r.Kind)
		assert.Equal(t, "errors.generic", r.Message)
	})
}

func TestConcurrentAuthFailuresPromptOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var motos ListState[api.Moto]
	var patios ListState[api.Patio]
	var guard SessionGuard

	motoErr, patioErr := LoadBoth(c, &motos, &patios)
	require.Error(t, motoErr)
	require.Error(t, patioErr)

	prompts := 0
	for _, err := range []error{motoErr, patioErr} {
		if Route(err, identity).Kind == RouteSessionExpired && guard.ShouldPrompt() {
			prompts++
		}
	}
	assert.Equal(t, 1, prompts, "both loads failed with 401 but only one prompt is shown")
}

func TestLoadBothKeepsIndependentErrorState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/motos/todos" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		w.Write([]byte(`[{"id":1,"nome":"Central","endereco":"Rua A"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	var motos ListState[api.Moto]
	var patios ListState[api.Patio]

	motoErr, patioErr := LoadBoth(c, &motos, &patios)
	require.Error(t, motoErr)
	require.NoError(t, patioErr)

	_, _, err := motos.Snapshot()
	assert.Error(t, err, "vehicle list keeps its own failure")

	data, loading, err := patios.Snapshot()
	require.NoError(t, err, "yard list is unaffected by the vehicle failure")
	assert.False(t, loading)
	assert.Len(t, data, 1)
}

func TestOrphanedMotos(t *testing.T) {
	motos := []api.Moto{
		{Placa: "AAA1111", NomePatio: "Central"},
		{Placa: "BBB2222", NomePatio: "Norte"},
		{Placa: "CCC3333", NomePatio: "Central"},
	}

	orphans := OrphanedMotos(motos, "Central")
	require.Len(t, orphans, 2)
	assert.Equal(t, "AAA1111", orphans[0].Placa)

	assert.Empty(t, OrphanedMotos(motos, "Sul"))
}

// newTestClient builds a client with a throwaway credential.
func newTestClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	kv, err := storage.OpenAt(filepath.Join(t.TempDir(), "store.yaml"))
	require.NoError(t, err)
	creds := credstore.New(kv)
	_, err = creds.Set("user@example.com", "secret")
	require.NoError(t, err)
	return api.NewClient(baseURL, creds)
}

// failingCallError performs a real call against a server answering with the
// given status and body, returning the classified error.
func failingCallError(t *testing.T, statusCode int, body string) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListMotos()
	require.Error(t, err)
	return err
}
