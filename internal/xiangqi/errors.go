package xiangqi

import "errors"

var (
	ErrNoPieceAtSquare = errors.New("no piece at square")
	ErrNotSideToMove   = errors.New("piece does not belong to side to move")
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game already over")
	ErrOffBoard        = errors.New("square off board")
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
