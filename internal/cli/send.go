package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/brask/goosc/osc"
	"github.com/brask/goosc/transport"
)

var sendAddr string

var sendCmd = &cobra.Command{
	Use:   "send <osc-address> [type:value ...]",
	Short: "Send a single OSC message to a UDP address",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&sendAddr, "addr", "a", "127.0.0.1:9000", "destination address")
}

func runSend(cmd *cobra.Command, args []string) error {
	address := args[0]

	arguments := make([]osc.Argument, 0, len(args)-1)
	for _, raw := range args[1:] {
		arg, err := parseArgument(raw)
		if err != nil {
			return err
		}
		arguments = append(arguments, arg)
	}

	client, err := transport.NewUDPClient(sendAddr)
	if err != nil {
		return err
	}
	defer client.Close()

	msg := osc.NewMessage(address, arguments...)
	if err := client.Send(msg); err != nil {
		return err
	}

	log.Info("sent", "addr", sendAddr, "message", msg)

	return nil
}

// parseArgument decodes one command-line argument of the form
// "type:value", e.g. "i:440", "f:0.5", "s:sine", "b:deadbeef", or one of the
// dataless tags T, F, N, I given alone.
func parseArgument(raw string) (osc.Argument, error) {
	switch raw {
	case "T":
		return osc.TrueArgument{}, nil
	case "F":
		return osc.FalseArgument{}, nil
	case "N":
		return osc.NullArgument{}, nil
	case "I":
		return osc.ImpulseArgument{}, nil
	}

	tag, value, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, fmt.Errorf("cli: argument %q must be type:value (i, f, s, b, t) or one of T F N I", raw)
	}

	switch tag {
	case "i":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cli: parsing int argument %q: %w", raw, err)
		}
		return osc.IntArgument(v), nil
	case "f":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, fmt.Errorf("cli: parsing float argument %q: %w", raw, err)
		}
		return osc.FloatArgument(v), nil
	case "s":
		return osc.StringArgument(value), nil
	case "b":
		data, err := hex.DecodeString(value)
		if err != nil {
			return nil, fmt.Errorf("cli: parsing blob argument %q: %w", raw, err)
		}
		return osc.BlobArgument(data), nil
	case "t":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("cli: parsing time tag argument %q: %w", raw, err)
		}
		return osc.TimeTagArgument(v), nil
	default:
		return nil, fmt.Errorf("cli: unknown argument type %q in %q", tag, raw)
	}
}
