// Package dotenv reads, resolves and rewrites env files.
//
// An env file is a sequence of KEY=VALUE lines, blank lines and # comments:
//
//	# database
//	export DB_HOST=localhost
//	DB_URL="postgres://${DB_HOST}:${DB_PORT:-5432}/app"
//
// Key operations:
//
//   - Stream: pull-based tokenizer producing one Binding per logical line
//   - ResolveVariables: ${VAR} interpolation with override precedence
//   - DotEnv: parse a file or reader into ordered Values
//   - Rewrite: atomic read-modify-write transaction over a file
//   - SetKey/UnsetKey: line-preserving key mutation built on Rewrite
//   - ChainedValues: left-to-right merge of several sources
//
// Untouched lines are always reproduced byte for byte by the mutators, so
// comments, ordering and malformed lines survive a rewrite.
package dotenv
