package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/pkg/kle"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		editorCarry bool
		noCache     bool
		raw         bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Print a decoded layout as a table",
		Long: `Decode a raw layout document and print its metadata and a table of keys
with position, size, rotation, legends and keycap color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if cmd.Flags().Changed("editor-carry") {
				opts.EditorCarry = editorCarry
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			doc, err := c.readInput(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			res, err := runner.Decode(cmd.Context(), doc, opts)
			if err != nil {
				return fmt.Errorf("decode %s: %w", displayName(args[0]), err)
			}
			printMetadata(c.out, res.Layout.Meta, raw)
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, keyTable(res.Layout.Keys).Render())
			printStats(c.out, res.Stats.KeyCount, res.Stats.DocBytes, res.CacheHit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&editorCarry, "editor-carry", false, "reset width, height and homing after every key like the web editor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&raw, "raw", false, "also print every raw metadata field")

	return cmd
}

// printMetadata prints the typed metadata fields that are set.
func printMetadata(w io.Writer, m kle.Metadata, raw bool) {
	name := m.Name
	if name == "" {
		name = "(untitled)"
	}
	fmt.Fprintln(w, StyleTitle.Render(name))

	if m.Author != "" {
		printKeyValue(w, "Author", m.Author)
	}
	printKeyValue(w, "Background", swatch(m.BackgroundColor)+" "+m.BackgroundColor.Hex())
	if m.Background.Name != "" {
		printKeyValue(w, "Texture", m.Background.Name)
	}
	if m.Radii != "" {
		printKeyValue(w, "Radii", m.Radii)
	}
	if sw := switchString(m.Switch); sw != "" {
		printKeyValue(w, "Switch", sw)
	}
	if m.PlateMount || m.PCBMount {
		printKeyValue(w, "Mount", mountString(m.PlateMount, m.PCBMount))
	}
	if m.Notes != "" {
		printKeyValue(w, "Notes", m.Notes)
	}

	if raw && len(m.Raw) > 0 {
		keys := make([]string, 0, len(m.Raw))
		for k := range m.Raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printDetail(w, "%s = %v", k, m.Raw[k])
		}
	}
}

// keyTable builds the key listing.
func keyTable(keys []kle.Key) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(keys))
	for i := range keys {
		k := &keys[i]
		rows[i] = []string{
			strconv.Itoa(i),
			formatNum(k.X),
			formatNum(k.Y),
			formatNum(k.Width) + "×" + formatNum(k.Height),
			rotationString(k),
			legendSummary(k),
			swatch(k.Color) + " " + k.Color.Hex(),
			keyFlags(k),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "X", "Y", "Size", "Rot", "Legends", "Color", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return style.Foreground(colorDim)
			}
			if row >= 0 && row < len(keys) && keys[row].Ghost {
				return style.Foreground(colorDim)
			}
			return style
		})
}

func rotationString(k *kle.Key) string {
	if k.Rotation == 0 {
		return ""
	}
	return fmt.Sprintf("%s° @%s,%s", formatNum(k.Rotation), formatNum(k.RX), formatNum(k.RY))
}

// keyFlags lists the boolean attributes of a key in short form.
func keyFlags(k *kle.Key) string {
	var flags []byte
	if k.Ghost {
		flags = append(flags, 'g')
	}
	if k.Decal {
		flags = append(flags, 'd')
	}
	if k.Stepped {
		flags = append(flags, 'l')
	}
	if k.Homing {
		flags = append(flags, 'n')
	}
	return string(flags)
}

func switchString(s kle.Switch) string {
	out := ""
	for _, part := range []string{s.Mount, s.Brand, s.Type} {
		if part == "" {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += part
	}
	return out
}

func mountString(plate, pcb bool) string {
	switch {
	case plate && pcb:
		return "plate, pcb"
	case plate:
		return "plate"
	default:
		return "pcb"
	}
}
