package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxSourceLineBytes = 1 << 20

// ReadSources returns the trimmed, non-blank lines of the list file in order.
// Duplicates are kept.
func ReadSources(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}
	defer file.Close()
	sources, err := ParseSources(file)
	if err != nil {
		return nil, fmt.Errorf("read source list %s: %w", path, err)
	}
	return sources, nil
}

// ParseSources applies the source list rules to r.
func ParseSources(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSourceLineBytes)
	var sources []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}
