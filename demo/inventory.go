/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Piptable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package demo provides the Pip-Boy inventory shown by the demo server.
package demo

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed data/inventory.csv
var inventoryCSV string

// Dataset is a header plus rows of cell text.
type Dataset struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Inventory returns the built-in inventory dataset.
func Inventory() *Dataset {
	ds, err := ReadCSV(strings.NewReader(inventoryCSV))
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded inventory: %v", err))
	}
	ds.Title = "Inventory"
	return ds
}

// LoadCSV reads a dataset from a CSV file whose first record is the header.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	ds, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV reads a dataset from r. Short records are padded with empty cells;
// long records are an error.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty CSV: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	ds := &Dataset{Title: "Table", Columns: header}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(record), len(header))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, nil
}
