package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// offset is one drag displacement in frame units.
type offset struct {
	dx, dy float64
}

// offsetList collects repeated -drag dx,dy flags.
type offsetList []offset

func (o *offsetList) String() string {
	parts := make([]string, len(*o))
	for i, d := range *o {
		parts[i] = fmt.Sprintf("%g,%g", d.dx, d.dy)
	}
	return strings.Join(parts, ";")
}

func (o *offsetList) Set(value string) error {
	d, err := parseOffset(value)
	if err != nil {
		return err
	}
	*o = append(*o, d)
	return nil
}

func parseOffset(s string) (offset, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return offset{}, fmt.Errorf("invalid offset %q: want dx,dy", s)
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return offset{}, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return offset{}, fmt.Errorf("invalid offset %q: %w", s, err)
	}
	return offset{dx, dy}, nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func closeWithLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("%s: close: %v", name, err)
	}
}
