// Package sentences loads practice sentences and picks the next one to read.
package sentences

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/telaffuz/internal/pronounce"
)

//go:embed default.txt
var defaultSentences string

// Default returns the built-in sentence list.
func Default() []string {
	list, err := Parse(strings.NewReader(defaultSentences))
	if err != nil {
		// The embedded list is never empty.
		panic(err)
	}
	return list
}

// Load reads one sentence per line from path. Blank lines and lines starting
// with '#' are skipped.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence list.
			_ = cerr
		}
	}()
	return Parse(file)
}

// LoadOrDefault loads path when it exists and falls back to Default otherwise.
func LoadOrDefault(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	list, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return list, err
}

// Parse reads a sentence list from r. Lines without any word are dropped.
func Parse(r io.Reader) ([]string, error) {
	var list []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(pronounce.Normalize(line)) == 0 {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("sentence list is empty")
	}
	return list, nil
}
