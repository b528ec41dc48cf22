// Package parsers turns the text output of OS wireless tools into
// wifi.Fields and wifi.NetworkEntry values. Every function is pure so the
// three platform formats can be tested with captured fixtures.
package parsers

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyOutput is returned when a tool printed nothing.
var ErrEmptyOutput = errors.New("command produced no output")

// ParseLabeled collects every "label : value" line into a map keyed by the
// lowercased label. The first occurrence of a label wins.
func ParseLabeled(text string) (map[string]string, error) {
	blocks, err := ParseLabeledBlocks(text, "")
	if err != nil {
		return nil, err
	}
	return blocks[0], nil
}

// ParseLabeledBlocks splits labeled output into one map per block. A block
// starts at every line labeled startLabel (case-insensitive); lines before
// the first such line form their own block only when they carry a label.
// An empty startLabel yields a single block. Within a block the first
// occurrence of a label wins, so fields never leak between blocks.
func ParseLabeledBlocks(text, startLabel string) ([]map[string]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyOutput
	}

	var blocks []map[string]string
	current := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		key, value, ok := splitLabel(scanner.Text())
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		if startLabel != "" && strings.EqualFold(key, startLabel) && len(current) > 0 {
			blocks = append(blocks, current)
			current = make(map[string]string)
		}
		if _, seen := current[key]; !seen {
			current[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning labeled output: %w", err)
	}
	return append(blocks, current), nil
}

// splitLabel splits at the first colon. Values may contain further colons
// (MAC addresses), labels may not.
func splitLabel(line string) (key, value string, ok bool) {
	line = strings.TrimRight(line, "\r")
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}
