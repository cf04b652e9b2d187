// Package preflight provides readiness checks for the inputs, directories and
// chart sources a standings run depends on.
//
// The CLI "summerpool doctor" command prints every result; "summerpool
// standings" runs the same checks and stops before fetching anything when a
// required one fails. Optional inputs such as the alias file pass when absent.
package preflight
