package storage

import (
	"github.com/rotisserie/eris"
)

var (
	ErrEntityDoesNotExist   = eris.New("entity does not exist")
	ErrEntityAlreadyExists  = eris.New("entity already exists")
	ErrComponentNotOnEntity = eris.New("component not on entity")
	ErrNilComponent         = eris.New("nil component")
)
