package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNoCandidates = errors.New("candidates file is empty")

// candidate is one entry of a candidates file.
type candidate struct {
	ID    string `yaml:"id" json:"id"`
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// loadCandidates reads a YAML or JSON list of candidates, or a .txt file
// with one key per line. Missing ids default to the list position and
// missing values default to the key.
func loadCandidates(path string) ([]candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var list []candidate
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		list = parseLines(data)
	} else if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", path, err)
	}

	if len(list) == 0 {
		return nil, errNoCandidates
	}

	for i := range list {
		if list[i].Key == "" {
			return nil, fmt.Errorf("candidate %d: key is required", i)
		}
		if list[i].ID == "" {
			list[i].ID = strconv.Itoa(i)
		}
		if list[i].Value == "" {
			list[i].Value = list[i].Key
		}
	}
	return list, nil
}

func parseLines(data []byte) []candidate {
	var list []candidate
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			list = append(list, candidate{Key: line})
		}
	}
	return list
}
