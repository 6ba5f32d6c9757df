package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", xiangqi.InitialFEN, "position to inspect")
	row := flag.Int("row", -1, "row of the piece to list legal moves for")
	col := flag.Int("col", -1, "column of the piece to list legal moves for")
	difficulty := flag.String("difficulty", "medium", "engine difficulty: easy, medium or hard")
	flag.Parse()

	pos, err := xiangqi.DecodePosition(*fen)
	if err != nil {
		log.Fatalf("decode %q: %v", *fen, err)
	}
	if err := pos.Validate(); err != nil {
		log.Printf("warning: %v", err)
	}

	fmt.Print(pos.Board.String())
	fmt.Println("FEN:", pos.Encode())
	fmt.Printf("To move: %s, in check: %v, checkmate: %v\n",
		pos.SideToMove, pos.IsInCheck(pos.SideToMove), pos.IsCheckmate(pos.SideToMove))
	fmt.Println("Legal moves:", len(pos.LegalMoves()))

	if *row >= 0 && *col >= 0 {
		sq := xiangqi.Sq(*row, *col)
		dsts, err := pos.GetLegalMoves(sq)
		if err != nil {
			log.Fatalf("legal moves of %v: %v", sq, err)
		}
		fmt.Printf("Legal moves of %v: %v\n", sq, dsts)
	}

	d := xiangqi.ParseDifficulty(*difficulty)
	res := engine.NewEngine(nil).Search(pos, d)
	if !res.Found {
		fmt.Println("Engine: no legal move")
		return
	}
	fmt.Printf("Engine (%s): %v score=%d depth=%d nodes=%d time=%v\n",
		d, res.BestMove, res.Score, res.Depth, res.Nodes, res.TimeUsed)
}
