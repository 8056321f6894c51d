// Package i18n provides the translation function injected into the rest of
// the client.
//
// Only the strings the core actually renders are carried here (status
// labels, list placeholders, error banners), in Portuguese (default) and
// Spanish. A missing key translates to itself, so new keys degrade visibly
// instead of panicking.
package i18n

// Translator resolves a message key to localized text.
type Translator func(key string) string

// DefaultLocale is used when no preference is stored or the stored locale is
// unsupported.
const DefaultLocale = "pt"

// Supported lists the locales with built-in tables.
func Supported() []string {
	return []string{"pt", "es"}
}

var pt = map[string]string{
	"form.statusOptions.available":        "Disponível",
	"form.statusOptions.reserved":         "Reservada",
	"form.statusOptions.maintenance":      "Manutenção",
	"form.statusOptions.missingPart":      "Falta de peça",
	"form.statusOptions.unavailable":      "Indisponível",
	"form.statusOptions.structuralDamage": "Com danos estruturais",
	"form.statusOptions.accident":         "Sinistro",

	"patio.status.available":        "Disponível",
	"patio.status.reserved":         "Reservada",
	"patio.status.maintenance":      "Manutenção",
	"patio.status.missingPart":      "Falta de peça",
	"patio.status.unavailable":      "Indisponível",
	"patio.status.structuralDamage": "Danos estruturais",
	"patio.status.accident":         "Sinistro",

	"patio.unknownYard": "Pátio não informado",

	"form.errors.required":         "Campo obrigatório",
	"form.errors.invalidPlate":     "Placa deve ter 7 caracteres alfanuméricos",
	"form.errors.invalidStatus":    "Status inválido",
	"form.errors.unknownYard":      "Pátio não cadastrado",
	"form.errors.invalidCpf":       "CPF inválido. Deve conter 11 números.",
	"form.errors.passwordsNoMatch": "As senhas não coincidem",

	"errors.network":        "Falha de rede ao acessar a API. Tente novamente.",
	"errors.sessionExpired": "Sessão expirada. Faça login novamente.",
	"errors.generic":        "Erro ao comunicar com o servidor.",
}

var es = map[string]string{
	"form.statusOptions.available":        "Disponible",
	"form.statusOptions.reserved":         "Reservada",
	"form.statusOptions.maintenance":      "Mantenimiento",
	"form.statusOptions.missingPart":      "Falta de pieza",
	"form.statusOptions.unavailable":      "No disponible",
	"form.statusOptions.structuralDamage": "Con daños estructurales",
	"form.statusOptions.accident":         "Siniestro",

	"patio.status.available":        "Disponible",
	"patio.status.reserved":         "Reservada",
	"patio.status.maintenance":      "Mantenimiento",
	"patio.status.missingPart":      "Falta de pieza",
	"patio.status.unavailable":      "No disponible",
	"patio.status.structuralDamage": "Daños estructurales",
	"patio.status.accident":         "Siniestro",

	"patio.unknownYard": "Patio no informado",

	"form.errors.required":         "Campo obligatorio",
	"form.errors.invalidPlate":     "La placa debe tener 7 caracteres alfanuméricos",
	"form.errors.invalidStatus":    "Estado inválido",
	"form.errors.unknownYard":      "Patio no registrado",
	"form.errors.invalidCpf":       "CPF inválido. Debe contener 11 números.",
	"form.errors.passwordsNoMatch": "Las contraseñas no coinciden",

	"errors.network":        "Fallo de red al acceder a la API. Inténtalo de nuevo.",
	"errors.sessionExpired": "Sesión expirada. Inicia sesión de nuevo.",
	"errors.generic":        "Error al comunicarse con el servidor.",
}

var tables = map[string]map[string]string{"pt": pt, "es": es}

// For returns the translator for a locale, falling back to the default
// locale's table and finally to the key itself.
func For(locale string) Translator {
	table, ok := tables[locale]
	if !ok {
		table = tables[DefaultLocale]
	}
	return func(key string) string {
		if msg, ok := table[key]; ok {
			return msg
		}
		if msg, ok := tables[DefaultLocale][key]; ok {
			return msg
		}
		return key
	}
}
