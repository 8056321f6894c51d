// Package tui implements the interactive terminal frontend.
//
// The package follows a coordinator pattern: AppModel owns the current
// screen and routes every message to it, while screen transitions travel as
// messages (screenTransitionMsg, goBackMsg) so screens stay decoupled from
// each other.
//
// Screens:
//
//	Login    - email/password entry, persists the credential pair
//	Board    - vehicle list grouped by yard, loaded on entry
//	MotoForm - create/edit a vehicle with inline field errors
//	Patios   - yard management (list, create, edit, delete)
//	Settings - locale, dark mode and palette preferences
//
// All remote work runs in tea.Cmd closures; results come back as typed
// messages carrying the generation token of the load that initiated them,
// so a stale response can never overwrite a newer one.
package tui
