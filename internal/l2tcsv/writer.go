// Package l2tcsv renders enriched registry events in the 17-field l2t_csv
// timeline format (date, time, timezone, MACB, source, sourcetype, type,
// user, host, short, desc, version, filename, inode, notes, format, extra).
package l2tcsv

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/qraux/plaso/pkg/winreg"
)

const header = "date,time,timezone,MACB,source,sourcetype,type,user,host," +
	"short,desc,version,filename,inode,notes,format,extra\n"

// Writer streams events as l2t_csv lines.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteHeader emits the fixed l2t_csv column header.
func (w *Writer) WriteHeader() error {
	_, err := w.bw.WriteString(header)
	return err
}

// WriteEvent emits one event as a single line. filename names the source
// hive artifact.
func (w *Writer) WriteEvent(ev winreg.Event, filename string) error {
	date, clock := "00/00/0000", "00:00:00"
	if !ev.Timestamp.IsZero() {
		utc := ev.Timestamp.UTC()
		date = utc.Format("01/02/2006")
		clock = utc.Format("15:04:05")
	}

	desc := describe(ev)
	short := desc
	const shortMax = 80
	if len(short) > shortMax {
		short = short[:shortMax-3] + "..."
	}

	notes := "-"
	if ev.URL != "" {
		notes = "URL: " + ev.URL
	}

	row := []string{
		date,
		clock,
		"UTC",
		"M...", // registry key last write is a modification timestamp
		"REG",
		ev.HiveType.String(),
		ev.TimestampDesc,
		"-",
		"-",
		short,
		desc,
		"2",
		filename,
		fmt.Sprintf("%d", ev.Offset),
		notes,
		ev.Plugin,
		extra(ev),
	}
	for i, field := range row {
		// Commas inside fields would break the column layout.
		row[i] = strings.ReplaceAll(field, ",", " ")
	}
	_, err := w.bw.WriteString(strings.Join(row, ",") + "\n")
	return err
}

// Flush drains buffered output.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

func describe(ev winreg.Event) string {
	if len(ev.Attributes) == 0 {
		return fmt.Sprintf("[%s] (empty)", ev.KeyPath)
	}
	return fmt.Sprintf("[%s] %s", ev.KeyPath, joinAttributes(ev.Attributes))
}

func extra(ev winreg.Event) string {
	if len(ev.Attributes) == 0 {
		return "-"
	}
	return joinAttributes(ev.Attributes)
}

// joinAttributes renders the attribute map sorted by name so lines are
// deterministic.
func joinAttributes(attrs map[string]string) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + attrs[name]
	}
	return strings.Join(parts, " ")
}
