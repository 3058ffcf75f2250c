// Package observe provides observability primitives for rule34 client calls.
//
// It covers structured JSON logging, OpenTelemetry spans named
// rule34.<operation>, call and cache-lookup metrics, and a Middleware that
// applies all three around a call. Exporters are selected by name through
// the exporters subpackage.
package observe
