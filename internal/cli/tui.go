package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/piecemaker/pkg/puzzle"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewWidth and previewHeight bound the mask preview in terminal cells.
// Each cell covers two vertical mask pixels via half-block characters.
const (
	previewWidth  = 40
	previewHeight = 20
)

// =============================================================================
// PieceListModel - Interactive piece browser
// =============================================================================

// PieceListModel is the bubbletea model for browsing generated pieces.
// The left pane lists pieces; the right pane previews the selected piece's
// cutout mask rendered with unicode half blocks.
type PieceListModel struct {
	Pieces []puzzle.Piece
	Cursor int
	Height int
	Offset int
}

// NewPieceListModel creates a new piece browser model.
func NewPieceListModel(pieces []puzzle.Piece) PieceListModel {
	return PieceListModel{
		Pieces: pieces,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m PieceListModel) Init() tea.Cmd {
	return nil
}

func (m PieceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pieces)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PieceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Piece Inspector"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Pieces) {
		end = len(m.Pieces)
	}

	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		p := m.Pieces[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-12s %s", cursor, p.Region.ID, edgeSummary(p.Edges))
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	left := list.String()
	right := m.previewPane()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pieces))))

	return b.String()
}

// previewPane renders the selected piece's mask and metadata.
func (m PieceListModel) previewPane() string {
	if len(m.Pieces) == 0 {
		return listDimStyle.Render("no pieces")
	}
	p := m.Pieces[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(p.Region.ID))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %dx%d at (%d,%d)  %s",
		p.Region.Width, p.Region.Height, p.Region.X, p.Region.Y, p.Difficulty)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("final %dx%d  tab %dpx",
		p.Geometry.FinalWidth, p.Geometry.FinalHeight, p.Geometry.TabSize)))
	b.WriteString("\n\n")
	b.WriteString(renderMaskPreview(p.Mask, previewWidth, previewHeight))
	return b.String()
}

// edgeSummary formats edge types as a compact top/right/bottom/left string,
// e.g. "F T B F".
func edgeSummary(edges puzzle.Edges) string {
	letters := make([]string, len(edges))
	for i, e := range edges {
		letters[i] = strings.ToUpper(e.String()[:1])
	}
	return strings.Join(letters, " ")
}

// renderMaskPreview downsamples a mask into unicode half blocks. Each
// terminal cell covers one horizontal and two vertical samples, so the
// preview keeps roughly square proportions.
func renderMaskPreview(m *puzzle.Mask, maxW, maxH int) string {
	if m == nil || m.Width() == 0 || m.Height() == 0 {
		return listDimStyle.Render("no mask")
	}

	cols := m.Width()
	if cols > maxW {
		cols = maxW
	}
	rows := (m.Height() + 1) / 2
	if rows > maxH {
		rows = maxH
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := col * m.Width() / cols
			yTop := (row * 2) * m.Height() / (rows * 2)
			yBottom := (row*2 + 1) * m.Height() / (rows * 2)

			top := m.Opaque(x, yTop)
			bottom := yBottom < m.Height() && m.Opaque(x, yBottom)

			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
