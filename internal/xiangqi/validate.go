package xiangqi

import (
	"errors"
	"fmt"
)

// Validate 检查局面是否满足棋规不变量：
// 未终局时双方各有且仅有一个将，将/士在九宫内，相不过河。
// 走子与搜索不依赖它；残局摆子可以故意违反。
func (p *Position) Validate() error {
	var errs []error
	generals := [2]int{}
	for sq, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		side := pc.Side()
		row, col := rowOf(sq), colOf(sq)
		switch pc.Type() {
		case PieceGeneral:
			generals[side]++
			if !inPalace(side, row, col) {
				errs = append(errs, fmt.Errorf("%s general outside palace at %v", side, squareOf(sq)))
			}
		case PieceAdvisor:
			if !inPalace(side, row, col) {
				errs = append(errs, fmt.Errorf("%s advisor outside palace at %v", side, squareOf(sq)))
			}
		case PieceElephant:
			if !onOwnHalf(side, row) {
				errs = append(errs, fmt.Errorf("%s elephant across river at %v", side, squareOf(sq)))
			}
		}
	}
	if !p.Terminal {
		for _, side := range [2]Side{Red, Black} {
			if generals[side] != 1 {
				errs = append(errs, fmt.Errorf("%s has %d generals", side, generals[side]))
			}
		}
	}
	if p.SideToMove != Red && p.SideToMove != Black {
		errs = append(errs, fmt.Errorf("bad side to move %d", p.SideToMove))
	} else if !p.Terminal && p.Board.inCheck(opposite(p.SideToMove)) {
		// 不轮走的一方被将军，说明上一步是送将
		errs = append(errs, fmt.Errorf("%s is in check but not to move", opposite(p.SideToMove)))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSnapshot, errors.Join(errs...))
}
