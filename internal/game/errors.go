package game

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNoEngineMove = errors.New("engine found no legal move")
)
