package i

import (
	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*dmn.Player, string, error)
}
