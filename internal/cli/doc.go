// Package cli implements the wifimon command-line interface.
//
// Each Cobra command is a thin wrapper that resolves config and delegates
// to a command function taking a context, the config and an io.Writer:
//
//	wifimon status     - Read the connection once, with health and alerts
//	wifimon scan       - List nearby networks
//	wifimon monitor    - Live dashboard (bubbletea)
//	wifimon doctor     - Check platform, tools, config and a live read
//	wifimon init       - Write a .wifimon.yaml
//
// # Config and Flags
//
// The root command's PersistentPreRunE loads config through viper, applies
// --interface, picks the color profile and installs the default logger.
// doctor and init use a lenient variant that falls back to defaults when
// the config file is broken, since they are how a user repairs it.
//
// # JSON Mode
//
// With --json every command writes a single {success, data, error}
// envelope to stdout. Failures that have already written their envelope
// return errSilentExit so Execute exits non-zero without printing again.
//
// # Testing
//
// Commands reach the platform through the newService variable, which tests
// replace with a fake returning canned responses.
package cli
