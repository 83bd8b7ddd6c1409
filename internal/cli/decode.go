package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/pkg/errors"
	kleio "github.com/matzehuels/kle/pkg/io"
	"github.com/matzehuels/kle/pkg/pipeline"
)

// decodeOpts holds the command-line flags for the decode command.
type decodeOpts struct {
	output  string // output file path (stdout if empty)
	noCache bool   // disable the layout cache
}

// decodeCommand creates the decode command.
func (c *CLI) decodeCommand() *cobra.Command {
	var (
		flags       decodeOpts
		format      string
		editorCarry bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "decode <file|->",
		Short: "Decode a raw layout document",
		Long: `Decode a raw keyboard-layout-editor document into a normalized layout.

The input is the editor's raw JSON: an optional metadata object followed by
row arrays. Use "-" to read from stdin. The normalized layout is written as
JSON (default), YAML or MessagePack.

Decoded layouts are cached by document content; --refresh forces a decode.

Examples:
  kle decode ansi-104.json
  kle decode ansi-104.json --format yaml -o ansi-104.yaml
  curl -s https://example.com/layout.json | kle decode -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if cmd.Flags().Changed("format") {
				opts.Format = format
			}
			if cmd.Flags().Changed("editor-carry") {
				opts.EditorCarry = editorCarry
			}
			opts.Refresh = refresh
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runDecode(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json (default), yaml, msgpack")
	cmd.Flags().BoolVar(&editorCarry, "editor-carry", false, "reset width, height and homing after every key like the web editor")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached layouts")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runDecode reads the document, runs the pipeline and writes the result.
func (c *CLI) runDecode(ctx context.Context, input string, opts pipeline.Options, flags decodeOpts) error {
	raw, err := c.readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	data, result, err := runner.Export(ctx, raw, opts)
	if err != nil {
		return fmt.Errorf("decode %s: %w", displayName(input), err)
	}
	prog.done("Decoded layout", "keys", result.Stats.KeyCount, "cached", result.CacheHit)

	if flags.output == "" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", flags.output)
	}
	printSuccess(c.out, "Wrote %s layout", opts.Format)
	printFile(c.out, flags.output)
	printStats(c.out, result.Stats.KeyCount, result.Stats.DocBytes, result.CacheHit)
	return nil
}

// readInput reads a raw document from a file, or from stdin for "-".
func (c *CLI) readInput(input string) ([]byte, error) {
	if input == "-" {
		return kleio.ReadDocument(c.in, 0)
	}
	if err := errors.ValidatePath(input); err != nil {
		return nil, err
	}
	f, err := os.Open(input)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", input)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return kleio.ReadDocument(f, 0)
}

func displayName(input string) string {
	if input == "-" {
		return "stdin"
	}
	return input
}
