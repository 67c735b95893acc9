package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/arloliu/lossless"
	"github.com/arloliu/lossless/compress"
	"github.com/arloliu/lossless/format"
	"github.com/arloliu/lossless/huffman"
	"github.com/arloliu/lossless/lz77"
	"github.com/arloliu/lossless/report"
	"github.com/arloliu/lossless/server"
)

func codecFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"a"},
			Usage:   "codec: none, rle, huffman, lz77, zstd, s2 or lz4",
			Value:   "huffman",
		},
		&cli.StringFlag{
			Name:  "variant",
			Usage: "text or raw (default: chosen from the file extension)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output file (default: prefixed input name next to the input)",
		},
		&cli.IntFlag{
			Name:  "window",
			Usage: "LZ77 search window size",
			Value: lz77.DefaultWindowSize,
		},
		&cli.IntFlag{
			Name:  "lookahead",
			Usage: "LZ77 maximum match length",
			Value: lz77.DefaultLookaheadSize,
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject Huffman input with a single distinct symbol",
		},
	}
}

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "Compress a file",
		ArgsUsage: "INPUT",
		Flags:     codecFlags(),
		Action: func(c *cli.Context) error {
			return runCodec(c, true)
		},
	}
}

func decompressCommand() *cli.Command {
	return &cli.Command{
		Name:      "decompress",
		Usage:     "Decompress a file produced by compress",
		ArgsUsage: "INPUT",
		Flags:     codecFlags(),
		Action: func(c *cli.Context) error {
			return runCodec(c, false)
		},
	}
}

func codecSettings(c *cli.Context) []compress.Setting {
	return []compress.Setting{
		compress.WithHuffmanOptions(huffman.WithStrictAlphabet(c.Bool("strict"))),
		compress.WithLZ77Options(
			lz77.WithWindowSize(c.Int("window")),
			lz77.WithLookaheadSize(c.Int("lookahead")),
		),
	}
}

func resolveVariant(c *cli.Context, input string) (format.Variant, error) {
	if name := c.String("variant"); name != "" {
		return format.ParseVariant(name)
	}

	return format.ClassifyFile(input)
}

func runCodec(c *cli.Context, compressing bool) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT file, got %d arguments", c.NArg())
	}
	input := c.Args().First()

	codec, err := format.ParseCodecType(c.String("algorithm"))
	if err != nil {
		return err
	}
	variant, err := resolveVariant(c, input)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var (
		out   []byte
		stats compress.Stats
	)
	prefix := lossless.CompressedPrefix
	if compressing {
		out, stats, err = compress.CompressWithStats(codec, variant, data, codecSettings(c)...)
	} else {
		prefix = lossless.DecompressedPrefix
		out, stats, err = compress.DecompressWithStats(codec, variant, data, codecSettings(c)...)
	}
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(input), prefix+filepath.Base(input))
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Debugf("%s %s/%s took %s", input, codec.Name(), variant, stats.Duration)
	fmt.Fprintf(c.App.Writer, "%s: %d -> %d bytes (ratio %.2f, checksum %s)\n",
		output, len(data), len(out), stats.Ratio(), lossless.Checksum(out))

	return nil
}

func serveCommand() *cli.Command {
	defaults := server.DefaultConfig()

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP compression service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Value:   defaults.Addr,
				EnvVars: []string{"LOSSLESS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "upload-dir",
				Usage:   "directory for uploaded and generated files",
				Value:   defaults.UploadDir,
				EnvVars: []string{"LOSSLESS_UPLOAD_DIR"},
			},
			&cli.DurationFlag{
				Name:    "cleanup-interval",
				Usage:   "how often old files are removed",
				Value:   defaults.CleanupInterval,
				EnvVars: []string{"LOSSLESS_CLEANUP_INTERVAL"},
			},
			&cli.DurationFlag{
				Name:    "max-file-age",
				Usage:   "how long files are kept",
				Value:   defaults.MaxFileAge,
				EnvVars: []string{"LOSSLESS_MAX_FILE_AGE"},
			},
			&cli.Int64Flag{
				Name:    "max-upload-bytes",
				Usage:   "largest accepted request body",
				Value:   defaults.MaxUploadBytes,
				EnvVars: []string{"LOSSLESS_MAX_UPLOAD_BYTES"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg := server.DefaultConfig()
			cfg.Addr = c.String("addr")
			cfg.UploadDir = c.String("upload-dir")
			cfg.CleanupInterval = c.Duration("cleanup-interval")
			cfg.MaxFileAge = c.Duration("max-file-age")
			cfg.MaxUploadBytes = c.Int64("max-upload-bytes")

			srv, err := server.New(cfg, nil)
			if err != nil {
				return err
			}

			return srv.ListenAndServe(c.Context)
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "Compare every codec on a file",
		ArgsUsage: "INPUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variant",
				Usage: "text or raw (default: chosen from the file extension)",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "write the results as CSV to this file",
			},
			&cli.StringFlag{
				Name:  "chart",
				Usage: "write an SVG ratio chart to this file",
			},
		},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one INPUT file, got %d arguments", c.NArg())
	}
	input := c.Args().First()

	variant, err := resolveVariant(c, input)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	rows := report.Run(data, variant)

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODEC\tSIZE\tRATIO\tSAVED\tCOMPRESS\tDECOMPRESS\tOK")
	for _, r := range rows {
		if r.Failed() {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t%s\n", r.Codec, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.1f%%\t%s\t%s\t%t\n", r.Codec, r.CompressedSize, r.Ratio,
			r.SpaceSavings, report.Elapsed(r.CompressMicros), report.Elapsed(r.DecompressMicros), r.RoundTrip)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if path := c.String("csv"); path != "" {
		if err := writeFile(path, func(f *os.File) error { return report.WriteCSV(f, rows) }); err != nil {
			return err
		}
	}
	if path := c.String("chart"); path != "" {
		title := fmt.Sprintf("%s (%s, %d bytes)", filepath.Base(input), variant, len(data))
		if err := writeFile(path, func(f *os.File) error { return report.RenderChart(f, title, rows) }); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
