package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twisty"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Terminal colors of the six color ids.
var (
	classicColors = [twisty.FaceCount]lipgloss.Color{"#009E60", "#FFFFFF", "#C41E3A", "#0051BA", "#FF5800", "#FFD500"}
	pastelColors  = [twisty.FaceCount]lipgloss.Color{"#A8E6CF", "#F5F5F5", "#FF8B94", "#A0C4FF", "#FFD3B6", "#FDFD96"}
)

// stickerWidth is the number of columns per sticker.
const stickerWidth = 2

// faceGrid returns the colors of face f as seen from outside the puzzle:
// the top face with the front below it, the bottom face with the front
// above it and the side faces upright.
func faceGrid(st twisty.State, f twisty.Face) [twisty.Edge][twisty.Edge]twisty.Color {
	var grid [twisty.Edge][twisty.Edge]twisty.Color
	for _, p := range twisty.NewPieces(twisty.Edge, twisty.PieceSize, twisty.ClassicPalette) {
		if !p.Stickers.Visible(f) {
			continue
		}
		c := p.Cell
		var row, col int
		switch f {
		case twisty.FaceTop:
			row, col = c.Z+1, c.X+1
		case twisty.FaceBottom:
			row, col = 1-c.Z, c.X+1
		case twisty.FaceFront:
			row, col = c.Y+1, c.X+1
		case twisty.FaceBack:
			row, col = c.Y+1, 1-c.X
		case twisty.FaceRight:
			row, col = c.Y+1, 1-c.Z
		case twisty.FaceLeft:
			row, col = c.Y+1, c.Z+1
		}
		grid[row][col] = st[p.ID][f]
	}
	return grid
}

func palette(skin twisty.Skin) [twisty.FaceCount]lipgloss.Color {
	if skin == twisty.SkinPastel {
		return pastelColors
	}
	return classicColors
}

func renderFace(st twisty.State, f twisty.Face, skin twisty.Skin) string {
	colors := palette(skin)
	grid := faceGrid(st, f)

	rows := make([]string, 0, twisty.Edge)
	for _, r := range grid {
		var b strings.Builder
		for _, c := range r {
			switch skin {
			case twisty.SkinHollow, twisty.SkinStroke:
				b.WriteString(lipgloss.NewStyle().Foreground(colors[c]).Render("[]"))
			default:
				b.WriteString(lipgloss.NewStyle().Background(colors[c]).Render(strings.Repeat(" ", stickerWidth)))
			}
		}
		rows = append(rows, b.String())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderNet draws the unfolded puzzle:
//
//	  U
//	L F R B
//	  D
func renderNet(st twisty.State, skin twisty.Skin) string {
	blank := lipgloss.NewStyle().
		Width(twisty.Edge*stickerWidth + 1).
		Height(twisty.Edge).
		Render("")
	gap := " "

	top := lipgloss.JoinHorizontal(lipgloss.Top, blank, renderFace(st, twisty.FaceTop, skin))
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		renderFace(st, twisty.FaceLeft, skin), gap,
		renderFace(st, twisty.FaceFront, skin), gap,
		renderFace(st, twisty.FaceRight, skin), gap,
		renderFace(st, twisty.FaceBack, skin),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, blank, renderFace(st, twisty.FaceBottom, skin))

	return lipgloss.JoinVertical(lipgloss.Left, top, middle, bottom)
}

// renderStatus summarises the puzzle on one line.
func renderStatus(p *twisty.Puzzle) string {
	solved := "scrambled"
	if p.IsSolved() {
		solved = "solved"
	}
	view := "upright"
	if p.Flipped() {
		view = "flipped"
	}
	return statusStyle.Render(strings.Join([]string{
		fmt.Sprintf("moves %d", p.MoveCount()),
		p.Status().String(),
		solved,
		"view " + twisty.ViewBucket(p.Heading(), p.Flipped()).String() + " " + view,
		"skin " + strings.ToLower(string(p.Skin())),
		"speed " + strings.ToLower(string(p.Speed())),
	}, " | "))
}
