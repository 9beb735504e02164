// Package engine implements the rules: position strings, attack detection,
// move generation, make/unmake, legality queries, move notation and draw
// detection. Everything here works on a *chess.Position in place.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mage-of-maple/CPW80-Engine/internal/chess"
	"github.com/mage-of-maple/CPW80-Engine/internal/errors"
)

// LoadFEN replaces the contents of pos with the position described by fen.
// Piece letters for the compound pieces and the castling letters come from
// the position's variant. A trailing full-move number is accepted and
// ignored. On error pos is left cleared.
func LoadFEN(pos *chess.Position, fen string) error {
	pos.Clear()
	if err := loadFEN(pos, fen); err != nil {
		pos.Clear()
		return err
	}
	return nil
}

func loadFEN(pos *chess.Position, fen string) error {
	v := pos.Variant

	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "fields", Value: fen}
	}

	if err := loadPlacement(pos, fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "w":
		pos.SideToMove = chess.White
	case "b":
		pos.SideToMove = chess.Black
		pos.Hash ^= pos.Keys().Colour
	default:
		return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "side", Value: fields[1]}
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			right, ok := castleRightForLetter(v, fields[2][i])
			if !ok {
				return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "castling", Value: fields[2]}
			}
			pos.Castle |= right
		}
	}
	pos.Hash ^= pos.Keys().Castling[pos.Castle]

	if fields[3] != "-" {
		sq, ok := chess.ParseSquare(fields[3])
		if !ok || !pos.OnBoard(sq) || len(fields[3]) != 2 {
			return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "en passant", Value: fields[3]}
		}
		pos.EP = sq
		pos.Hash ^= pos.Keys().EnPassant[sq]
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "half-move clock", Value: fields[4]}
		}
		pos.HalfMoves = n
	}

	pos.ResetHistory()
	return nil
}

func loadPlacement(pos *chess.Position, placement string) error {
	v := pos.Variant
	if strings.Count(placement, "/") != chess.NumRanks-1 {
		return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
	}
	rank, file := chess.NumRanks-1, 0
	for i := 0; i < len(placement); i++ {
		ch := placement[i]
		switch {
		case ch == '/':
			if file != v.Files {
				return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
			}
			rank--
			file = 0
			if rank < 0 {
				return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
			}
		case ch >= '1' && ch <= '9':
			// "10" is a single run on wide boards.
			if ch == '1' && i+1 < len(placement) && placement[i+1] == '0' {
				file += 10
				i++
			} else {
				file += int(ch - '0')
			}
		default:
			lower := ch | 0x20
			kind, ok := v.PieceForLetter(lower)
			if !ok || file >= v.Files {
				return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
			}
			if kind == chess.Pawn && (rank == 0 || rank == chess.NumRanks-1) {
				return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "pawn rank", Value: placement}
			}
			colour := chess.Black
			if ch != lower {
				colour = chess.White
			}
			pos.PlacePiece(colour, kind, chess.MakeSquare(file, rank))
			file++
		}
		if file > v.Files {
			return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
		}
	}
	if rank != 0 || file != v.Files {
		return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "placement", Value: placement}
	}
	if pos.Count[chess.White][chess.King] != 1 || pos.Count[chess.Black][chess.King] != 1 {
		return &errors.PositionError{Err: errors.ErrInvalidFEN, Field: "kings", Value: placement}
	}
	return nil
}

func castleRightForLetter(v *chess.Variant, l byte) (chess.CastleRights, bool) {
	for c := chess.White; c <= chess.Black; c++ {
		for side := chess.WestSide; side <= chess.EastSide; side++ {
			if v.CastleLetters[c][side] == l {
				return chess.CastleRight(c, side), true
			}
		}
	}
	return chess.CastleNone, false
}

// FEN writes pos as a position string. The full-move number is not
// tracked and is always written as 1.
func FEN(pos *chess.Position) string {
	v := pos.Variant
	var sb strings.Builder
	for rank := chess.NumRanks - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < v.Files; file++ {
			sq := chess.MakeSquare(file, rank)
			if pos.Pieces[sq] == chess.Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			l := v.Letter(pos.Pieces[sq])
			if pos.Colours[sq] == chess.White {
				l -= 'a' - 'A'
			}
			sb.WriteByte(l)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if pos.SideToMove == chess.Black {
		side = "b"
	}

	// White before black, each colour's letters in alphabetical order:
	// "KQkq" for king/queen letters, "AJaj" for rook files.
	castle := ""
	for c := chess.White; c <= chess.Black; c++ {
		letters := make([]byte, 0, 2)
		for side := chess.WestSide; side <= chess.EastSide; side++ {
			if pos.Castle&chess.CastleRight(c, side) != 0 {
				letters = append(letters, v.CastleLetters[c][side])
			}
		}
		if len(letters) == 2 && letters[1] < letters[0] {
			letters[0], letters[1] = letters[1], letters[0]
		}
		castle += string(letters)
	}
	if castle == "" {
		castle = "-"
	}

	ep := "-"
	if pos.EP != chess.NoSquare {
		ep = pos.EP.String()
	}

	return fmt.Sprintf("%s %s %s %s %d 1", sb.String(), side, castle, ep, pos.HalfMoves)
}
