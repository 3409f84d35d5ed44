// Package config loads logger settings from YAML and turns them into a
// ready Logger.
//
// A minimal file:
//
//	level: debug
//	format: json
//	output: stderr
//	serializers:
//	  redact: [password, token]
//	  remove: [error]
//
// Redacted keys are replaced with "[REDACTED]". Removed keys disable any
// built-in serializer so the raw value is written. The entry "*" names
// the wildcard key that applies to every field without its own entry.
package config
