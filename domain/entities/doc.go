// Package entities provides the core types shared by the guest SDK and the development host.
// The numeric codes defined here travel across the module boundary as plain i32 values,
// so they are part of the external contract and must never be renumbered.
package entities
