// Package timclient constructs concrete TIM API clients.
//
// The package wires configuration, transport, session handling, and the
// optional response cache into an implementation of tim.Client. See the tim
// package for the domain types and interfaces.
package timclient
