package game

import (
	"fmt"
	"strings"

	"papertactics/internal/game/core"
)

// This file contains the debug terminal rendering for a game view.

// ANSI color codes for board rendering
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
)

// Render returns a colored string representation of the view, exactly as
// the viewing player would see the board: fog-limited views render only
// the opponent cells and trenches present in the view.
func Render(v GameView) string {
	const (
		emptySymbol     = "·"
		unitSymbol      = "o"
		wallSymbol      = "▣"
		trenchSymbol    = "≋"
		reachableSymbol = "+"
	)

	size := v.Prefs.Size
	// Rough per-cell cost: symbol plus ANSI codes.
	var sb strings.Builder
	sb.Grow((size*12 + 8) * (size + 3))

	sb.WriteString("   ")
	for x := 1; x <= size; x++ {
		fmt.Fprintf(&sb, "%2d", x)
	}
	sb.WriteString("\n")

	for y := 1; y <= size; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 1; x <= size; x++ {
			c := core.NewCell(x, y)
			var color, symbol string
			switch {
			case v.Me.Units.Contains(c):
				color, symbol = colorBlue, unitSymbol
			case v.Me.Walls.Contains(c):
				color, symbol = colorBlue, wallSymbol
			case v.Opponent.Units.Contains(c):
				color, symbol = colorRed, unitSymbol
			case v.Opponent.Walls.Contains(c):
				color, symbol = colorRed, wallSymbol
			case v.Trenches.Contains(c):
				color, symbol = colorWhite, trenchSymbol
			case v.Me.Reachable.Contains(c):
				color, symbol = colorGreen, reachableSymbol
			default:
				color, symbol = colorGray, emptySymbol
			}
			sb.WriteString(" ")
			sb.WriteString(color)
			sb.WriteString(symbol)
			sb.WriteString(colorReset)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nturns left: %d  my turn: %v\n", v.TurnsLeft, v.MyTurn)
	return sb.String()
}
