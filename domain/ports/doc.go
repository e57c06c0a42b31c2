// Package ports defines the interfaces that sit on either side of the module boundary.
// Host is the set of imports the guest calls; the backend ports are what the
// development host uses to satisfy those imports.
package ports
