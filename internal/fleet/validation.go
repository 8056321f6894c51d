package fleet

import (
	"regexp"
	"strings"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/i18n"
	"github.com/motovision/motovision/internal/status"
)

var placaPattern = regexp.MustCompile(`^[A-Z0-9]{7}$`)

// FieldErrors maps form field names to display messages. An empty map means
// the input is valid; any entry prevents the network call entirely.
type FieldErrors map[string]string

// MotoInput is the raw form input for creating or editing a vehicle.
type MotoInput struct {
	Modelo    string
	Placa     string
	Status    string
	Descricao string
	NomePatio string
}

// ValidateMoto checks a vehicle form and returns the normalized payload.
// The plate is uppercased before the format check. The yard reference is
// advisory: it must name a currently known patio, but nothing server-side
// enforces it.
func ValidateMoto(in MotoInput, patios []api.Patio, t i18n.Translator) (api.Moto, FieldErrors) {
	errs := FieldErrors{}

	modelo := strings.TrimSpace(in.Modelo)
	if modelo == "" {
		errs["modelo"] = t("form.errors.required")
	}

	placa := strings.ToUpper(strings.TrimSpace(in.Placa))
	if placa == "" {
		errs["placa"] = t("form.errors.required")
	} else if !placaPattern.MatchString(placa) {
		errs["placa"] = t("form.errors.invalidPlate")
	}

	if in.Status == "" {
		errs["status"] = t("form.errors.required")
	} else if !status.Valid(in.Status) {
		errs["status"] = t("form.errors.invalidStatus")
	}

	nomePatio := strings.TrimSpace(in.NomePatio)
	if nomePatio == "" {
		errs["nomePatio"] = t("form.errors.required")
	} else if !patioExists(nomePatio, patios) {
		errs["nomePatio"] = t("form.errors.unknownYard")
	}

	return api.Moto{
		Modelo:    modelo,
		Placa:     placa,
		Status:    in.Status,
		Descricao: strings.TrimSpace(in.Descricao),
		NomePatio: nomePatio,
	}, errs
}

// ValidatePatio checks a yard form.
func ValidatePatio(nome, endereco string, t i18n.Translator) (api.Patio, FieldErrors) {
	errs := FieldErrors{}

	nome = strings.TrimSpace(nome)
	if nome == "" {
		errs["nome"] = t("form.errors.required")
	}
	endereco = strings.TrimSpace(endereco)
	if endereco == "" {
		errs["endereco"] = t("form.errors.required")
	}

	return api.Patio{Nome: nome, Endereco: endereco}, errs
}

// RegistrationInput is the account registration form.
type RegistrationInput struct {
	Nome           string
	CPF            string
	Email          string
	Senha          string
	ConfirmarSenha string
}

// ValidateRegistration checks the registration form: all fields required,
// CPF exactly 11 digits, passwords matching.
func ValidateRegistration(in RegistrationInput, t i18n.Translator) FieldErrors {
	errs := FieldErrors{}

	for field, value := range map[string]string{
		"nome":  in.Nome,
		"cpf":   in.CPF,
		"email": in.Email,
		"senha": in.Senha,
	} {
		if strings.TrimSpace(value) == "" {
			errs[field] = t("form.errors.required")
		}
	}

	if in.CPF != "" && !isCPF(in.CPF) {
		errs["cpf"] = t("form.errors.invalidCpf")
	}
	if in.Senha != "" && in.Senha != in.ConfirmarSenha {
		errs["confirmarSenha"] = t("form.errors.passwordsNoMatch")
	}

	return errs
}

func isCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func patioExists(nome string, patios []api.Patio) bool {
	for _, p := range patios {
		if p.Nome == nome {
			return true
		}
	}
	return false
}
