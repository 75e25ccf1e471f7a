package perft

// Position is a reference position with published leaf statistics; Stats[i]
// holds the values for depth i+1.
type Position struct {
	Name  string
	FEN   string
	Stats []Stats
}

// Positions is the standard verification suite.
var Positions = []Position{
	{
		Name: "initial",
		FEN:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Stats: []Stats{
			{Nodes: 20},
			{Nodes: 400},
			{Nodes: 8902, Captures: 34, Checks: 12},
			{Nodes: 197281, Captures: 1576, Checks: 469, Checkmates: 8},
			{Nodes: 4865609, Captures: 82719, EnPassant: 258, Checks: 27351, Checkmates: 347},
		},
	},
	{
		Name: "kiwipete",
		FEN:  "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		Stats: []Stats{
			{Nodes: 48, Captures: 8, Castles: 2},
			{Nodes: 2039, Captures: 351, EnPassant: 1, Castles: 91, Checks: 3},
			{Nodes: 97862, Captures: 17102, EnPassant: 45, Castles: 3162, Checks: 993, Checkmates: 1},
			{Nodes: 4085603, Captures: 757163, EnPassant: 1929, Castles: 128013, Promotions: 15172, Checks: 25523, Checkmates: 43},
		},
	},
	{
		Name: "position 3",
		FEN:  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		Stats: []Stats{
			{Nodes: 14, Captures: 1, Checks: 2},
			{Nodes: 191, Captures: 14, Checks: 10},
			{Nodes: 2812, Captures: 209, EnPassant: 2, Checks: 267},
			{Nodes: 43238, Captures: 3348, EnPassant: 123, Checks: 1680, Checkmates: 17},
			{Nodes: 674624, Captures: 52051, EnPassant: 1165, Checks: 52950, Checkmates: 1292},
		},
	},
	{
		Name: "position 4",
		FEN:  "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		Stats: []Stats{
			{Nodes: 6},
			{Nodes: 264, Captures: 87, Castles: 6, Promotions: 48, Checks: 10},
			{Nodes: 9467, Captures: 1021, EnPassant: 4, Promotions: 120, Checks: 38, Checkmates: 22},
		},
	},
}
