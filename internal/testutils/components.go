// Package testutils holds component fixtures shared by tests across the
// module. Components are plain structs; nothing here implements an
// interface because stores classify by concrete type alone.
package testutils

type Position struct{ X, Y float64 }

type Velocity struct{ DX, DY float64 }

type Health struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type Experience struct{ Value int }

type PlayerTag struct{ Tag string }

// Dead is a marker component with no payload.
type Dead struct{}
