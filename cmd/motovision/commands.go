package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/fleet"
	"github.com/motovision/motovision/internal/status"
	"github.com/motovision/motovision/internal/storage"
	"github.com/motovision/motovision/internal/tui"
)

// Command flags
var (
	baseURL      string
	outputFormat string

	filterStatus string
	filterPlaca  string
	filterModelo string
	filterPatio  string

	motoModelo    string
	motoPlaca     string
	motoStatus    string
	motoDescricao string
	motoPatio     string

	patioNome     string
	patioEndereco string

	skipConfirm bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API origin override (defaults to the stored preference)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table, json)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(motosCmd)
	rootCmd.AddCommand(patiosCmd)
}

// setup opens the local store and assembles the shared client state.
func setup() (*tui.Deps, error) {
	kv, err := storage.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration store: %w", err)
	}
	deps := tui.NewDeps(kv)
	if baseURL != "" {
		deps.Client = api.NewClient(baseURL, deps.Creds)
	}
	return deps, nil
}

// friendly converts a failed call into the message a user should see.
func friendly(err error, deps *tui.Deps) error {
	if err == nil {
		return nil
	}
	routed := fleet.Route(err, deps.Tr)
	if msgs := api.ValidationMessages(err); len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "; "))
	}
	return errors.New(routed.Message)
}

// runConsole launches the interactive TUI (the default command).
func runConsole(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewAppModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

// loginCmd stores a credential pair
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Store API credentials",
	Long: `Store the credential pair used for API requests.

The password is read from the terminal without echo. Credentials are kept
in the local configuration file until 'motovision logout'.`,
	Example: `  motovision login admin@example.com
  motovision login`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	email := ""
	if len(args) == 1 {
		email = args[0]
	} else {
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}

	password, err := promptPassword("Senha: ")
	if err != nil {
		return err
	}

	normalized, err := deps.Creds.Set(email, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Logged in as %s\n", normalized)
	return nil
}

// logoutCmd clears the stored credentials
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored API credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup()
		if err != nil {
			return err
		}
		if err := deps.Creds.Clear(); err != nil {
			return err
		}
		fmt.Println("✓ Credentials cleared")
		return nil
	},
}

// registerCmd validates an account registration form and stores credentials
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an account and store its credentials",
	Long: `Interactively fill the account registration form.

All fields are required; the CPF must be exactly 11 digits and both
password entries must match. On success the credential pair is stored
the same way as 'motovision login'.`,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	var in fleet.RegistrationInput
	if in.Nome, err = promptLine("Nome: "); err != nil {
		return err
	}
	if in.CPF, err = promptLine("CPF (11 dígitos): "); err != nil {
		return err
	}
	if in.Email, err = promptLine("Email: "); err != nil {
		return err
	}
	if in.Senha, err = promptPassword("Senha: "); err != nil {
		return err
	}
	if in.ConfirmarSenha, err = promptPassword("Confirmar senha: "); err != nil {
		return err
	}

	if errs := fleet.ValidateRegistration(in, deps.Tr); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("registration form is invalid")
	}

	if _, err := deps.Creds.Set(in.Email, in.Senha); err != nil {
		return err
	}

	fmt.Printf("✓ Registered %s\n", in.Email)
	return nil
}

// motosCmd groups the vehicle subcommands
var motosCmd = &cobra.Command{
	Use:   "motos",
	Short: "Manage fleet vehicles",
}

func init() {
	motosListCmd.Flags().StringVar(&filterStatus, "status", "", "Filter by status (e.g. DISPONIVEL)")
	motosListCmd.Flags().StringVar(&filterPlaca, "placa", "", "Filter by plate")
	motosListCmd.Flags().StringVar(&filterModelo, "modelo", "", "Filter by model")
	motosListCmd.Flags().StringVar(&filterPatio, "patio", "", "Filter by yard name")

	for _, c := range []*cobra.Command{motosCreateCmd, motosUpdateCmd} {
		c.Flags().StringVar(&motoModelo, "modelo", "", "Vehicle model")
		c.Flags().StringVar(&motoPlaca, "placa", "", "Plate (7 alphanumeric characters)")
		c.Flags().StringVar(&motoStatus, "status", "", "Status (one of: "+strings.Join(status.All(), ", ")+")")
		c.Flags().StringVar(&motoDescricao, "descricao", "", "Free-form description")
		c.Flags().StringVar(&motoPatio, "patio", "", "Yard name")
	}

	motosCmd.AddCommand(motosListCmd)
	motosCmd.AddCommand(motosGetCmd)
	motosCmd.AddCommand(motosCreateCmd)
	motosCmd.AddCommand(motosUpdateCmd)
	motosCmd.AddCommand(motosDeleteCmd)
}

// motosListCmd lists vehicles, optionally filtered server-side
var motosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles grouped by yard",
	Example: `  motovision motos list
  motovision motos list --status DISPONIVEL
  motovision motos list --patio "Pátio Central" --format json`,
	RunE: runMotosList,
}

func runMotosList(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	filter := api.MotoFilter{
		Status:    filterStatus,
		Placa:     filterPlaca,
		Modelo:    filterModelo,
		NomePatio: filterPatio,
	}

	var motos []api.Moto
	if len(filter.Values()) > 0 {
		motos, err = deps.Client.FilterMotos(filter)
	} else {
		motos, err = deps.Client.ListMotos()
	}
	if err != nil {
		return friendly(err, deps)
	}

	if outputFormat == "json" {
		return printJSON(motos)
	}

	sections := fleet.GroupByPatio(motos, deps.Tr("patio.unknownYard"))
	if len(sections) == 0 {
		fmt.Println("No vehicles found.")
		return nil
	}

	for _, sec := range sections {
		fmt.Printf("%s (%d)\n", sec.Titulo, len(sec.Motos))
		for _, moto := range sec.Motos {
			label := status.Label(moto.Status, deps.Tr)
			setor := "-"
			if preview := status.SetorPreview(moto.Status); preview != nil {
				setor = preview.Setor
			}
			fmt.Printf("  %-8s %-24s %-24s setor %s\n", moto.Placa, moto.Modelo, label, setor)
		}
		fmt.Println()
	}
	return nil
}

// motosGetCmd fetches one vehicle by id
var motosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		moto, err := deps.Client.GetMoto(id)
		if err != nil {
			return friendly(err, deps)
		}
		return printJSON(moto)
	},
}

// motosCreateCmd registers a vehicle
var motosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a vehicle",
	Example: `  motovision motos create --modelo "Honda CG 160" --placa ABC1D23 \
    --status DISPONIVEL --patio "Pátio Central"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMotoWrite(0)
	},
}

// motosUpdateCmd replaces a vehicle
var motosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a vehicle (full replacement)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runMotoWrite(id)
	},
}

// runMotoWrite validates the flag payload and creates or replaces a vehicle.
// An id of zero means create.
func runMotoWrite(id int64) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	// The yard reference is checked against the live yard list
	patios, err := deps.Client.ListPatios()
	if err != nil {
		return friendly(err, deps)
	}

	input := fleet.MotoInput{
		Modelo:    motoModelo,
		Placa:     motoPlaca,
		Status:    motoStatus,
		Descricao: motoDescricao,
		NomePatio: motoPatio,
	}
	payload, errs := fleet.ValidateMoto(input, patios, deps.Tr)
	if len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("vehicle form is invalid")
	}

	var moto *api.Moto
	if id == 0 {
		moto, err = deps.Client.CreateMoto(payload)
	} else {
		moto, err = deps.Client.UpdateMoto(id, payload)
	}
	if err != nil {
		return friendly(err, deps)
	}

	fmt.Printf("✓ %s %s (%s)\n", verb(id), moto.Placa, moto.Modelo)
	return nil
}

// motosDeleteCmd removes a vehicle
var motosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := deps.Client.DeleteMoto(id); err != nil {
			return friendly(err, deps)
		}
		fmt.Printf("✓ Vehicle %d removed\n", id)
		return nil
	},
}

// patiosCmd groups the yard subcommands
var patiosCmd = &cobra.Command{
	Use:   "patios",
	Short: "Manage yards",
}

func init() {
	for _, c := range []*cobra.Command{patiosCreateCmd, patiosUpdateCmd} {
		c.Flags().StringVar(&patioNome, "nome", "", "Yard name")
		c.Flags().StringVar(&patioEndereco, "endereco", "", "Yard address")
	}
	patiosDeleteCmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip the confirmation prompt")

	patiosCmd.AddCommand(patiosListCmd)
	patiosCmd.AddCommand(patiosCreateCmd)
	patiosCmd.AddCommand(patiosUpdateCmd)
	patiosCmd.AddCommand(patiosDeleteCmd)
}

// patiosListCmd lists yards
var patiosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List yards",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := setup()
		if err != nil {
			return err
		}
		patios, err := deps.Client.ListPatios()
		if err != nil {
			return friendly(err, deps)
		}
		if outputFormat == "json" {
			return printJSON(patios)
		}
		if len(patios) == 0 {
			fmt.Println("No yards found.")
			return nil
		}
		for _, p := range patios {
			fmt.Printf("%-6d %-24s %s\n", p.ID, p.Nome, p.Endereco)
		}
		return nil
	},
}

// patiosCreateCmd registers a yard
var patiosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a yard",
	Example: `  motovision patios create --nome "Pátio Central" --endereco "Av. Paulista, 1000"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPatioWrite(0)
	},
}

// patiosUpdateCmd replaces a yard
var patiosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a yard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runPatioWrite(id)
	},
}

func runPatioWrite(id int64) error {
	deps, err := setup()
	if err != nil {
		return err
	}

	payload, errs := fleet.ValidatePatio(patioNome, patioEndereco, deps.Tr)
	if len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("yard form is invalid")
	}

	var patio *api.Patio
	if id == 0 {
		patio, err = deps.Client.CreatePatio(payload)
	} else {
		patio, err = deps.Client.UpdatePatio(id, payload)
	}
	if err != nil {
		return friendly(err, deps)
	}

	fmt.Printf("✓ %s %s\n", verb(id), patio.Nome)
	return nil
}

// patiosDeleteCmd removes a yard, warning about stranded vehicles first
var patiosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a yard",
	Long: `Remove a yard by id.

Vehicles assigned to the yard are not deleted; they keep their yard name
and show up under the unknown-yard section until reassigned. The prompt
lists the affected plates before anything is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPatioDelete,
}

func runPatioDelete(cmd *cobra.Command, args []string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	patios, err := deps.Client.ListPatios()
	if err != nil {
		return friendly(err, deps)
	}
	var target *api.Patio
	for i := range patios {
		if patios[i].ID == id {
			target = &patios[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no yard with id %d", id)
	}

	if !skipConfirm {
		motos, err := deps.Client.ListMotos()
		if err != nil {
			return friendly(err, deps)
		}
		if orphans := fleet.OrphanedMotos(motos, target.Nome); len(orphans) > 0 {
			placas := make([]string, len(orphans))
			for i, moto := range orphans {
				placas[i] = moto.Placa
			}
			fmt.Printf("⚠ %d vehicle(s) will be left without a yard: %s\n",
				len(orphans), strings.Join(placas, ", "))
		}
		ok, err := promptYesNo(fmt.Sprintf("Remove yard %q? [y/N] ", target.Nome))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := deps.Client.DeletePatio(id); err != nil {
		return friendly(err, deps)
	}
	fmt.Printf("✓ Yard %s removed\n", target.Nome)
	return nil
}

// Prompt helpers

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func promptYesNo(prompt string) (bool, error) {
	answer, err := promptLine(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes" || answer == "s" || answer == "sim", nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func verb(id int64) string {
	if id == 0 {
		return "Created"
	}
	return "Updated"
}
