// Package storage provides a small persistent key-value store for the
// MotoVision client.
//
// Values are kept in a single YAML file under the OS-appropriate
// configuration directory:
//   - Linux: $XDG_CONFIG_HOME/motovision/store.yaml or $HOME/.config/motovision/store.yaml
//   - macOS: $HOME/.config/motovision/store.yaml
//   - Windows: %LOCALAPPDATA%\motovision\store.yaml
//
// All mutations rewrite the file atomically (temporary file + rename) under
// a mutex, so a multi-key write is observed either fully applied or not at
// all. This matters for the credential store, which must never persist an
// email without its matching token.
//
// # Key namespace
//
// Keys are flat strings shared by all consumers and must not collide:
//
//	auth_email, auth_token        credential store
//	locale, theme_dark,
//	theme_alt_palette, base_url   user preferences
package storage
