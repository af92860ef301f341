// Package templates renders the generated library files.
//
// Every file of the library is produced by a named text/template. The
// package embeds a default for each name; user templates discovered next
// to the manifest override a default when they carry the same name, and
// add new names (package examples) otherwise.
//
// Template data is one of the typed structs of data.go, so a template that
// refers to an unknown field fails at render time instead of producing an
// empty value.
package templates
