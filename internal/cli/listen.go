package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/brask/goosc/dispatch"
	"github.com/brask/goosc/osc"
	"github.com/brask/goosc/receiver"
	"github.com/brask/goosc/transport"
)

var listenAddr string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen for OSC messages on a UDP address and log each one",
	RunE:  runListen,
}

func init() {
	listenCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":9000", "address to listen on")
}

func runListen(cmd *cobra.Command, args []string) error {
	server, err := transport.ListenUDP(listenAddr, transport.BufSizeMaxMTU)
	if err != nil {
		return err
	}
	defer server.Close()

	log.Info("listening", "addr", server.LocalAddr())

	tree := dispatch.NewTree()
	if _, err := tree.AddCallback("/*", logMessage); err != nil {
		return err
	}
	r := receiver.New(tree)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, func(source net.Addr, raw []byte) error {
		return r.OnDatagram(raw, source)
	})
}

func logMessage(msg *osc.Message, source net.Addr) {
	log.Info("message", "address", msg.Address, "tags", msg.TypeTags(), "source", source, "args", msg.Arguments)
}
