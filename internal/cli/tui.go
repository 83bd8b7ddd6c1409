package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kle/pkg/kle"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// KeyBrowserModel - Interactive key browser
// =============================================================================

// KeyBrowserModel is the bubbletea model behind "kle browse".
type KeyBrowserModel struct {
	Title   string
	Keys    []kle.Key
	Cursor  int
	Offset  int
	Height  int
	Details bool // detail pane for the key under the cursor
}

// NewKeyBrowserModel creates a browser over a decoded layout.
func NewKeyBrowserModel(l *kle.Layout) KeyBrowserModel {
	title := l.Meta.Name
	if title == "" {
		title = "Layout"
	}
	return KeyBrowserModel{
		Title:  title,
		Keys:   l.Keys,
		Height: 15,
	}
}

func (m KeyBrowserModel) Init() tea.Cmd {
	return nil
}

func (m KeyBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Details {
				m.Details = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Keys)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if len(m.Keys) > 0 {
				m.Cursor = len(m.Keys) - 1
				m.Offset = max(0, m.Cursor-m.Height+1)
			}
		case "enter", " ":
			if len(m.Keys) > 0 {
				m.Details = !m.Details
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m KeyBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Keys) == 0 {
		b.WriteString(listDimStyle.Render("  no keys"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Keys))
	for i := m.Offset; i < end; i++ {
		k := &m.Keys[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		legend := legendSummary(k)
		if legend == "" {
			legend = "—"
		}
		line := fmt.Sprintf("%s%3d  %-24s %s", cursor, i, truncate(legend, 24),
			listDimStyle.Render(fmt.Sprintf("%s,%s  %s×%s", formatNum(k.X), formatNum(k.Y), formatNum(k.Width), formatNum(k.Height))))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case k.Ghost || k.Decal:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Details {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(keyDetails(&m.Keys[m.Cursor])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Keys))))
	return b.String()
}

// keyDetails renders every attribute of a key, one per line.
func keyDetails(k *kle.Key) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("position", formatNum(k.X)+", "+formatNum(k.Y))
	row("size", formatNum(k.Width)+" × "+formatNum(k.Height))
	if k.X2 != 0 || k.Y2 != 0 || k.Width2 != k.Width || k.Height2 != k.Height {
		row("second", fmt.Sprintf("%s, %s  %s × %s", formatNum(k.X2), formatNum(k.Y2), formatNum(k.Width2), formatNum(k.Height2)))
	}
	if r := rotationString(k); r != "" {
		row("rotation", r)
	}
	row("color", swatch(k.Color)+" "+k.Color.Hex())
	if k.Profile != "" {
		row("profile", k.Profile)
	}
	if sw := switchString(k.Switch); sw != "" {
		row("switch", sw)
	}
	if f := keyFlags(k); f != "" {
		row("flags", f)
	}
	for slot, l := range k.Legends {
		if l == nil {
			continue
		}
		row(fmt.Sprintf("slot %d", slot), fmt.Sprintf("%q size %d %s", l.Text, l.Size, swatch(l.Color)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
