// Package evescout reads Thera and Turnur wormhole connections from the
// EVE Scout public API and reshapes them with the connection mapping table.
package evescout
