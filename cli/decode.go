package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/protocol"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type decodeOptions struct {
	kind   string
	format string
	file   string
	all    bool
	strict bool
}

var decodeOpts = &decodeOptions{}

var decodeCmd = &cobra.Command{
	Use:   "decode [hex]",
	Short: "Decode a hex frame into a message document",
	Long: `Decode parses a hex encoded frame as a request, reply or protocol error
and prints it as YAML or JSON.

Whitespace, commas, colons and a leading 0x are ignored in the input. When
the frame cannot be decoded the protocol error is printed as a document and
the command fails.`,
	Example: `  lendq decode 0b
  lendq decode --kind reply --format json 0a000000000000000100000000000000020000000000000003
  lendq decode --all -f frames.hex`,
	Args: cobra.ArbitraryArgs,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&decodeOpts.kind, "kind", "k", "request", "message set: request, reply or error")
	decodeCmd.Flags().StringVar(&decodeOpts.format, "format", formatYAML, "output format: yaml or json")
	decodeCmd.Flags().StringVarP(&decodeOpts.file, "file", "f", "", "read hex from a file, - for stdin")
	decodeCmd.Flags().BoolVar(&decodeOpts.all, "all", false, "decode back to back messages until the input is consumed")
	decodeCmd.Flags().BoolVar(&decodeOpts.strict, "strict", false, "fail when bytes remain after the message")
}

func runDecode(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)
	cfg := commandConfig(cmd)

	kind, err := protocol.ParseKind(decodeOpts.kind)
	if err != nil {
		return errors.New(ErrInvalidFlag, "invalid --kind", err).AddContext("kind", decodeOpts.kind)
	}
	if decodeOpts.format != formatYAML && decodeOpts.format != formatJSON {
		return errors.Newf(ErrInvalidFlag, "invalid --format %q, expected yaml or json", decodeOpts.format)
	}

	text, err := readHexInput(cmd, args)
	if err != nil {
		return err
	}
	data, err := parseHex(text)
	if err != nil {
		return err
	}
	if len(data) > cfg.Dispatch.MaxFrameBytes {
		return errors.Newf(ErrDecodeFailed, "frame of %d bytes exceeds max_frame_bytes %d", len(data), cfg.Dispatch.MaxFrameBytes)
	}

	var docs []*messageDoc
	rest := data
	for {
		msg, remaining, err := protocol.Decode(kind, rest)
		if err != nil {
			var pe *protocol.ProtoError
			if !stderrors.As(err, &pe) {
				return err
			}
			docs = append(docs, newMessageDoc(pe))
			if werr := writeDocs(cmd.OutOrStdout(), docs); werr != nil {
				return werr
			}
			logger.Debug().Str("kind", kind.String()).Int("offset", len(data)-len(rest)).Msg("Decode failed")
			return errors.Wrapf(ErrDecodeFailed, pe, "offset %d", len(data)-len(rest))
		}

		doc := newMessageDoc(msg)
		doc.Size = msg.Size()
		docs = append(docs, doc)
		rest = remaining

		if !decodeOpts.all || len(rest) == 0 {
			break
		}
	}

	if len(rest) > 0 {
		docs[len(docs)-1].Remaining = fmt.Sprintf("%x", rest)
	}
	if err := writeDocs(cmd.OutOrStdout(), docs); err != nil {
		return err
	}

	logger.Debug().Str("kind", kind.String()).Int("messages", len(docs)).Int("remaining", len(rest)).Msg("Decoded frame")

	if decodeOpts.strict && len(rest) > 0 {
		return errors.Newf(ErrTrailingInput, "%d bytes remain after the message", len(rest))
	}
	return nil
}

// readHexInput joins the positional arguments, or reads --file.
func readHexInput(cmd *cobra.Command, args []string) (string, error) {
	if decodeOpts.file != "" {
		if len(args) > 0 {
			return "", errors.New(ErrInvalidFlag, "pass hex as arguments or --file, not both", nil)
		}
		in, closeIn, err := openInput(cmd, decodeOpts.file)
		if err != nil {
			return "", err
		}
		defer closeIn()
		b, err := io.ReadAll(in)
		if err != nil {
			return "", errors.New(ErrInputRead, "failed to read input", err)
		}
		return string(b), nil
	}
	if len(args) == 0 {
		return "", errors.New(ErrInvalidFlag, "no hex input given", nil)
	}
	return strings.Join(args, ""), nil
}

func writeDocs(w io.Writer, docs []*messageDoc) error {
	if decodeOpts.format == formatJSON {
		var v any = docs
		if len(docs) == 1 {
			v = docs[0]
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return enc.Close()
}
