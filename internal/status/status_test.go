package status

import (
	"testing"

	"github.com/motovision/motovision/internal/i18n"
)

// identity translator keeps label assertions independent of locale tables.
func identity(key string) string { return key }

func TestSetorPreviewMatchesFixedTable(t *testing.T) {
	tests := []struct {
		status   string
		setor    string
		corSetor string
		color    string
	}{
		{Disponivel, "A", "Verde", "#4CAF50"},
		{Reservada, "B", "Azul", "#005CA7"},
		{Manutencao, "C", "Amarelo", "#FFEB3B"},
		{FaltaPeca, "D", "Laranja", "#A91AFC"},
		{Indisponivel, "E", "Cinza", "#9E9E9E"},
		{DanosEstruturais, "F", "Vermelho", "#F44336"},
		{Sinistro, "G", "Preto", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := SetorPreview(tt.status)
			if p == nil {
				t.Fatalf("SetorPreview(%s) = nil, want preview", tt.status)
			}
			if p.Setor != tt.setor || p.CorSetor != tt.corSetor || p.Color != tt.color {
				t.Errorf("SetorPreview(%s) = %+v, want {%s %s %s}",
					tt.status, *p, tt.setor, tt.corSetor, tt.color)
			}
		})
	}
}

func TestSetorPreviewUnknownStatusIsNil(t *testing.T) {
	for _, s := range []string{"", "disponivel", "EMPRESTADA", "DISPONIVEL "} {
		if p := SetorPreview(s); p != nil {
			t.Errorf("SetorPreview(%q) = %+v, want nil", s, p)
		}
	}
}

func TestOptionsKeepFixedOrder(t *testing.T) {
	options := Options(identity)

	if len(options) != 7 {
		t.Fatalf("Options() returned %d entries, want 7", len(options))
	}

	wantOrder := []string{
		Disponivel, Reservada, Manutencao, FaltaPeca,
		Indisponivel, DanosEstruturais, Sinistro,
	}
	for i, want := range wantOrder {
		if options[i].Value != want {
			t.Errorf("Options()[%d].Value = %s, want %s", i, options[i].Value, want)
		}
	}

	// Labels go through the injected translator with the form key prefix.
	if options[0].Label != "form.statusOptions.available" {
		t.Errorf("Options()[0].Label = %q, want the translated key", options[0].Label)
	}
}

func TestLabelFallsBackToRawStatus(t *testing.T) {
	if got := Label("EMPRESTADA", identity); got != "EMPRESTADA" {
		t.Errorf("Label(EMPRESTADA) = %q, want raw status", got)
	}
	if got := Label(Sinistro, identity); got != "patio.status.accident" {
		t.Errorf("Label(SINISTRO) = %q, want translated key", got)
	}
}

func TestLabelsResolveInBothLocales(t *testing.T) {
	pt := i18n.For("pt")
	es := i18n.For("es")

	for _, s := range All() {
		if got := Label(s, pt); got == "" || got == s {
			t.Errorf("pt Label(%s) = %q, want localized text", s, got)
		}
		if got := Label(s, es); got == "" || got == s {
			t.Errorf("es Label(%s) = %q, want localized text", s, got)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range All() {
		if !Valid(s) {
			t.Errorf("Valid(%s) = false, want true", s)
		}
	}
	if Valid("QUEBRADA") {
		t.Error("Valid(QUEBRADA) = true, want false")
	}
}
