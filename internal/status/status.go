// Package status is the metadata resolver for the fixed vehicle status
// enumeration.
//
// Each of the 7 statuses maps to a display color, a sector letter (A-G) and
// a sector color name. The mapping is a static lookup table, never computed.
// The package is pure and does no I/O; labels are resolved through an
// injected translation function so it stays decoupled from locale data.
package status

// The 7 vehicle statuses, in fixed display order.
const (
	Disponivel       = "DISPONIVEL"
	Reservada        = "RESERVADA"
	Manutencao       = "MANUTENCAO"
	FaltaPeca        = "FALTA_PECA"
	Indisponivel     = "INDISPONIVEL"
	DanosEstruturais = "DANOS_ESTRUTURAIS"
	Sinistro         = "SINISTRO"
)

// Metadata is one row of the static status table.
type Metadata struct {
	Color    string // display color (hex)
	Setor    string // sector letter A-G
	CorSetor string // sector color name
	labelKey string
}

var order = []string{
	Disponivel,
	Reservada,
	Manutencao,
	FaltaPeca,
	Indisponivel,
	DanosEstruturais,
	Sinistro,
}

var table = map[string]Metadata{
	Disponivel:       {Color: "#4CAF50", Setor: "A", CorSetor: "Verde", labelKey: "available"},
	Reservada:        {Color: "#005CA7", Setor: "B", CorSetor: "Azul", labelKey: "reserved"},
	Manutencao:       {Color: "#FFEB3B", Setor: "C", CorSetor: "Amarelo", labelKey: "maintenance"},
	FaltaPeca:        {Color: "#A91AFC", Setor: "D", CorSetor: "Laranja", labelKey: "missingPart"},
	Indisponivel:     {Color: "#9E9E9E", Setor: "E", CorSetor: "Cinza", labelKey: "unavailable"},
	DanosEstruturais: {Color: "#F44336", Setor: "F", CorSetor: "Vermelho", labelKey: "structuralDamage"},
	Sinistro:         {Color: "#000000", Setor: "G", CorSetor: "Preto", labelKey: "accident"},
}

// Option is a selectable status entry for form presentation.
type Option struct {
	Value string
	Color string
	Label string
}

// Preview is the sector panel derived from a status.
type Preview struct {
	Setor    string
	CorSetor string
	Color    string
}

// All returns the statuses in fixed order.
func All() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Valid reports whether s is one of the 7 defined statuses.
func Valid(s string) bool {
	_, ok := table[s]
	return ok
}

// Options produces the ordered status choices for a form, labels resolved
// through the injected translator.
func Options(translate func(key string) string) []Option {
	options := make([]Option, 0, len(order))
	for _, s := range order {
		meta := table[s]
		options = append(options, Option{
			Value: s,
			Color: meta.Color,
			Label: translate("form.statusOptions." + meta.labelKey),
		})
	}
	return options
}

// Label resolves the list label for a status, falling back to the raw value
// for anything outside the enumeration.
func Label(s string, translate func(key string) string) string {
	meta, ok := table[s]
	if !ok {
		return s
	}
	return translate("patio.status." + meta.labelKey)
}

// SetorPreview returns the sector preview for a status, or nil for an
// unrecognized value: the preview panel is optional and an unknown status
// must not fail.
func SetorPreview(s string) *Preview {
	meta, ok := table[s]
	if !ok {
		return nil
	}
	return &Preview{Setor: meta.Setor, CorSetor: meta.CorSetor, Color: meta.Color}
}
