// Package report benchmarks every codec over one payload and exports the
// results as CSV or as an SVG bar chart of compression ratios.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/arloliu/lossless/compress"
	"github.com/arloliu/lossless/format"
)

// Row is the result of one codec over the payload.
type Row struct {
	Codec            string  `csv:"codec"`
	Variant          string  `csv:"variant"`
	OriginalSize     int     `csv:"original_size"`
	CompressedSize   int     `csv:"compressed_size"`
	Ratio            float64 `csv:"ratio"`
	SpaceSavings     float64 `csv:"space_savings_pct"`
	CompressMicros   int64   `csv:"compress_us"`
	DecompressMicros int64   `csv:"decompress_us"`
	RoundTrip        bool    `csv:"round_trip"`
	Error            string  `csv:"error"`
}

// Failed reports whether the codec could not process the payload.
func (r Row) Failed() bool {
	return r.Error != ""
}

// Run compresses and decompresses data with each codec in codecs, or with
// every codec when codecs is empty. A codec failure is recorded in its row.
func Run(data []byte, variant format.Variant, codecs ...format.CodecType) []Row {
	if len(codecs) == 0 {
		codecs = format.AllCodecs()
	}

	rows := make([]Row, 0, len(codecs))
	for _, ct := range codecs {
		rows = append(rows, runOne(data, variant, ct))
	}

	return rows
}

func runOne(data []byte, variant format.Variant, ct format.CodecType) Row {
	row := Row{Codec: ct.Name(), Variant: variant.String(), OriginalSize: len(data)}

	artifact, cstats, err := compress.CompressWithStats(ct, variant, data)
	if err != nil {
		row.Error = err.Error()
		return row
	}

	decoded, dstats, err := compress.DecompressWithStats(ct, variant, artifact)
	if err != nil {
		row.Error = err.Error()
		return row
	}

	row.CompressedSize = cstats.CompressedSize
	row.Ratio = cstats.Ratio()
	row.SpaceSavings = cstats.SpaceSavings()
	row.CompressMicros = cstats.Duration.Microseconds()
	row.DecompressMicros = dstats.Duration.Microseconds()
	row.RoundTrip = bytes.Equal(decoded, data)

	return row
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv report: %w", err)
	}

	return nil
}

// ReadCSV parses a report written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read csv report: %w", err)
	}

	return rows, nil
}

// ErrNoData reports that no row can be charted.
var ErrNoData = errors.New("no successful rows to chart")

// RenderChart draws one bar per successful row with its compressed to
// original size ratio and writes the chart to w as SVG.
func RenderChart(w io.Writer, title string, rows []Row) error {
	bars := make([]chart.Value, 0, len(rows))
	top := 1.0
	for _, r := range rows {
		if r.Failed() {
			continue
		}
		bars = append(bars, chart.Value{Label: r.Codec, Value: r.Ratio})
		top = max(top, r.Ratio*1.1)
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   512,
		Width:    max(512, 96*len(bars)),
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// Elapsed formats a microsecond count for display.
func Elapsed(micros int64) string {
	return (time.Duration(micros) * time.Microsecond).String()
}
