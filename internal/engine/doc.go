// Package engine executes terminal input against sessions.
//
// One Execute call runs one line in one session. The engine first parses
// the line as a shell-style invocation; when the first token names no
// registered command it hands the line to the intent translator, which
// maps natural language onto the same invocations. Unmatched input is
// classified as an unknown command or unresolved prose, each with its
// own suggestions.
//
// Dispatch Order:
//  1. Builtins (exit, help, history, clear, cd, pwd, ai, ...)
//  2. Provider commands via the registry
//  3. Intent translation for natural language
//
// Sessions serialize their own work: Execute runs inside Session.Do, so
// two requests for the same session never interleave, while distinct
// sessions proceed in parallel. Working directory changes apply only
// when the producing command succeeded.
package engine
