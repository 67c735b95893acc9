package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const progName = "lossless"

var log = logging.MustGetLogger("lossless")

func startLogging(w io.Writer, debug bool) {
	backend := logging.NewLogBackend(w, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-16s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	}
	logging.SetBackend(leveled)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  progName,
		Usage: "Compress files with RLE, Huffman and LZ77 coding",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug logging",
				EnvVars: []string{"LOSSLESS_DEBUG"},
			},
		},
		Before: func(c *cli.Context) error {
			startLogging(c.App.ErrWriter, c.Bool("debug"))
			return nil
		},
		Commands: []*cli.Command{
			compressCommand(),
			decompressCommand(),
			serveCommand(),
			benchCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progName, err)
		stop()
		os.Exit(1)
	}
}
