// Package control resolves speakers by name and drives commands across
// them: single-speaker transport commands, fleet-wide volume, and group
// formation.
//
// Every lookup and discovery is bounded by the Policy timeout. Control calls
// on a speaker that was already found are not. Work across several speakers
// stops at the first error.
package control
