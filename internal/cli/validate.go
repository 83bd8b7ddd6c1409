package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

// ErrInvalid is returned when at least one document fails validation.
var ErrInvalid = stderrors.New("one or more layouts are invalid")

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		editorCarry bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file|->...",
		Short: "Check that raw layout documents decode",
		Long: `Decode each document and report whether it is valid.

Rejected documents are reported with the error kind and the row and item
where decoding stopped. The command fails if any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if cmd.Flags().Changed("editor-carry") {
				opts.EditorCarry = editorCarry
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			return c.runValidate(cmd.Context(), args, func(ctx context.Context, raw []byte) (int, error) {
				res, err := runner.Decode(ctx, raw, opts)
				if err != nil {
					return 0, err
				}
				return res.Stats.KeyCount, nil
			})
		},
	}

	cmd.Flags().BoolVar(&editorCarry, "editor-carry", false, "reset width, height and homing after every key like the web editor")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runValidate decodes every input and prints one status line per input.
func (c *CLI) runValidate(ctx context.Context, inputs []string, decode func(context.Context, []byte) (int, error)) error {
	var spinner *Spinner
	if len(inputs) > 1 {
		spinner = newSpinner(ctx, c.status, "Validating...")
		spinner.Start()
	}

	type outcome struct {
		name string
		keys int
		err  error
	}
	results := make([]outcome, 0, len(inputs))
	for i, input := range inputs {
		if spinner != nil {
			spinner.SetMessage("Validating %d/%d", i+1, len(inputs))
		}
		if err := ctx.Err(); err != nil {
			if spinner != nil {
				spinner.Stop()
			}
			return err
		}
		o := outcome{name: displayName(input)}
		raw, err := c.readInput(input)
		if err == nil {
			o.keys, err = decode(ctx, raw)
		}
		o.err = err
		results = append(results, o)
	}
	if spinner != nil {
		spinner.Stop()
	}

	failed := 0
	for _, r := range results {
		if r.err == nil {
			printSuccess(c.out, "%s %s", r.name, StyleDim.Render(fmt.Sprintf("(%d keys)", r.keys)))
			continue
		}
		failed++
		printError(c.out, "%s", r.name)
		for _, line := range diagnose(r.err) {
			printDetail(c.out, "%s", line)
		}
	}

	if failed > 0 {
		printInfo(c.out, "%d of %d invalid", failed, len(results))
		return ErrInvalid
	}
	return nil
}

// diagnose explains a validation failure in a few short lines.
func diagnose(err error) []string {
	var de *kle.DecodeError
	if !stderrors.As(err, &de) {
		return []string{fmt.Sprintf("%s: %s", errors.GetCode(err), errors.UserMessage(err))}
	}

	lines := []string{fmt.Sprintf("%s: %s", de.Kind, de.Msg)}
	switch {
	case de.Row >= 0 && de.Item >= 0:
		lines = append(lines, fmt.Sprintf("at row %d, item %d", de.Row, de.Item))
	case de.Row >= 0:
		lines = append(lines, fmt.Sprintf("at row %d", de.Row))
	}
	if de.Field != "" {
		lines = append(lines, fmt.Sprintf("field %q", de.Field))
	}
	if de.Err != nil {
		lines = append(lines, de.Err.Error())
	}
	return lines
}
