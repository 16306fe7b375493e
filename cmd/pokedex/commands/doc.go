// Package commands defines the pokedex CLI.
//
// Commands
//
//   - list    Load Pokémon page by page, prompting before each further page
//   - show    Print the detail view of one Pokémon
//   - serve   Serve pages and details as JSON over HTTP
//
// # Configuration
//
// Every persistent flag has a POKEDEX_* environment variable counterpart
// (--base-url and POKEDEX_BASE_URL). Flags win over the environment.
//
// # Implementation
//
// The root command loads the configuration, sets up logging and builds the
// PokeAPI client and page loader before any subcommand runs. The optional
// Redis connection is opened only when --redis-addr is set.
package commands
