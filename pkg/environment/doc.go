// Package environment names the deployment environment of the service and
// carries it through request contexts, so handlers and log records can tell
// development from production.
package environment
