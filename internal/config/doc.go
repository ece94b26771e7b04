// Package config loads the two configuration surfaces of mailgram:
//
//   - the env file (.env) holding bot secrets and mail credentials,
//     loaded with godotenv and validated before the runtime starts;
//   - an optional mailgram.jsonc settings file holding tool defaults
//     (compose file, service name, log tail length, backup paths),
//     parsed as JSON-with-comments.
//
// Settings are resolved once at program start and passed explicitly to
// command handlers; no package reads environment variables ad hoc.
package config
