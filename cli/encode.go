package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gear6io/lendq/pkg/errors"
	"github.com/gear6io/lendq/server/protocol"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type encodeOptions struct {
	file  string
	upper bool
}

var encodeOpts = &encodeOptions{}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode YAML message documents into hex frames",
	Long: `Encode reads one or more YAML documents, each describing a request,
reply or error, and prints the hex encoding of each on its own line.

Example document:

  kind: request
  type: Add
  key: job-17
  value: payload
  mode: tail

Keys and values that are not text can be given as key_hex / value_hex.`,
	Example: `  lendq encode -f messages.yml
  echo 'kind: request
  type: Ping' | lendq encode`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeOpts.file, "file", "f", "-", "YAML input file, - for stdin")
	encodeCmd.Flags().BoolVar(&encodeOpts.upper, "upper", false, "print upper case hex")
}

func runEncode(cmd *cobra.Command, args []string) error {
	logger := commandLogger(cmd)

	in, closeIn, err := openInput(cmd, encodeOpts.file)
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	dec := yaml.NewDecoder(in)
	for n := 1; ; n++ {
		var doc messageDoc
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.New(ErrInvalidDocument, "failed to parse YAML document", err).AddContext("document", strconv.Itoa(n))
		}

		msg, err := doc.toMessage()
		if err != nil {
			return errors.Wrapf(ErrInvalidDocument, err, "document %d", n)
		}

		frame := protocol.Pack(msg)
		logger.Debug().
			Int("document", n).
			Str("message", protocol.MessageName(msg)).
			Int("size", len(frame)).
			Msg("Encoded message")

		text := hex.EncodeToString(frame)
		if encodeOpts.upper {
			text = fmt.Sprintf("%X", frame)
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
}

// openInput opens path, or the command's stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.New(ErrInputRead, "failed to open input", err).AddContext("path", path)
	}
	return f, func() { _ = f.Close() }, nil
}
