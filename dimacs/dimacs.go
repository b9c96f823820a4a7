// Package dimacs streams DIMACS-format graph instances (the "p edge"/
// "e" line format) into a graph.Graph, and loads the companion
// expected-chromatic-number table used for early termination.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GiacomoPauletti/graph-color-number/graph"
)

// Parse reads a DIMACS "p edge" instance from r into a freshly built
// graph via newGraph, one scan pass, no intermediate buffering of the
// whole file.
//
// Recognized lines:
//
//	c ...                comment, ignored
//	p edge <n> <m>       problem line: n vertices, m edges
//	e <u> <v>            edge, 1-indexed
func Parse(r io.Reader, newGraph func(numVertices int) graph.Graph) (graph.Graph, error) {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var g graph.Graph
	lineNo := 0

	for scan.Scan() {
		lineNo++
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "edge" {
				return nil, fmt.Errorf("dimacs: line %d: malformed problem line %q", lineNo, line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad vertex count: %w", lineNo, err)
			}
			g = newGraph(n)
		case 'e':
			if g == nil {
				return nil, fmt.Errorf("dimacs: line %d: edge before problem line", lineNo)
			}
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, fmt.Errorf("dimacs: line %d: malformed edge line %q", lineNo, line)
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad endpoint: %w", lineNo, err)
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("dimacs: line %d: bad endpoint: %w", lineNo, err)
			}
			g.AddEdge(u, v)
		default:
			return nil, fmt.Errorf("dimacs: line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("dimacs: no problem line found")
	}
	return g, nil
}

// LoadExpectedChi reads the sibling "instance filename -> chi" table:
// whitespace-separated "<key> <value>" pairs, one per line.
func LoadExpectedChi(r io.Reader) (map[string]uint16, error) {
	scan := bufio.NewScanner(r)
	table := make(map[string]uint16)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("dimacs: malformed expected-chi line %q", line)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("dimacs: bad expected-chi value for %q: %w", fields[0], err)
		}
		table[fields[0]] = uint16(v)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	return table, nil
}

// Lookup returns the expected chromatic number for instanceFileName,
// failing fast (per §7c) when the table has no entry for it.
func Lookup(table map[string]uint16, instanceFileName string) (uint16, error) {
	v, ok := table[instanceFileName]
	if !ok {
		return 0, fmt.Errorf("dimacs: no expected result found for %q", instanceFileName)
	}
	return v, nil
}
