package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/protocol"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type tagsOptions struct {
	kind   string
	format string
}

var tagsOpts = &tagsOptions{}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the request, reply and error tags",
	Example: `  lendq tags
  lendq tags --kind error
  lendq tags --format json`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().StringVarP(&tagsOpts.kind, "kind", "k", "", "only list one set: request, reply or error")
	tagsCmd.Flags().StringVar(&tagsOpts.format, "format", "table", "output format: table or json")
}

type tagRow struct {
	Kind   string `json:"kind"`
	Tag    byte   `json:"tag"`
	Name   string `json:"name"`
	Shape  string `json:"shape,omitempty"`
	Layout string `json:"layout,omitempty"`
}

func runTags(cmd *cobra.Command, args []string) error {
	kinds := []protocol.Kind{protocol.KindRequest, protocol.KindReply, protocol.KindError}
	if tagsOpts.kind != "" {
		kind, err := protocol.ParseKind(tagsOpts.kind)
		if err != nil {
			return errors.New(ErrInvalidFlag, "invalid --kind", err).AddContext("kind", tagsOpts.kind)
		}
		kinds = []protocol.Kind{kind}
	}

	var rows []tagRow
	for _, kind := range kinds {
		for _, info := range protocol.DefaultRegistry.List(kind) {
			row := tagRow{Kind: kind.String(), Tag: info.Tag, Name: info.Name, Layout: info.Layout}
			if kind == protocol.KindError {
				row.Shape = protocol.ErrorCode(info.Tag).Shape().String()
			}
			rows = append(rows, row)
		}
	}

	out := cmd.OutOrStdout()
	switch tagsOpts.format {
	case "json":
		b, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "table":
		return renderTagTable(out, rows)
	default:
		return errors.Newf(ErrInvalidFlag, "invalid --format %q, expected table or json", tagsOpts.format)
	}
}

func renderTagTable(out io.Writer, rows []tagRow) error {
	if !isTerminal(out) {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	data := pterm.TableData{{"Kind", "Tag", "Name", "Shape", "Layout"}}
	for _, row := range rows {
		data = append(data, []string{row.Kind, strconv.Itoa(int(row.Tag)), row.Name, row.Shape, row.Layout})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, table)
	return err
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
