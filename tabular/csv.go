// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tabular reads delimited files as ingestion sources. The first
// line is the header; every following line becomes one raw record keyed
// by column name.
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"os"

	"github.com/poiesic/canonize/core"
)

// noisyColumns are artifact columns exporters leave behind. They carry no
// content and are dropped from headers and rows alike.
var noisyColumns = map[string]struct{}{
	"Unnamed: 0": {},
	"index":      {},
	"Index":      {},
}

// File is a CSV-backed ingestion source for one (dataset, split) pair.
type File struct {
	path    string
	dataset string
	split   string
}

// NewFile creates a source reading rows from the CSV file at path.
func NewFile(path, dataset, split string) *File {
	return &File{path: path, dataset: dataset, split: split}
}

// Dataset returns the dataset identifier used for adapter lookup.
func (f *File) Dataset() string { return f.dataset }

// Split returns the split name.
func (f *File) Split() string { return f.split }

// Columns returns the header columns in file order, noisy artifact
// columns removed. The generic adapter relies on this order to resolve
// column guesses deterministically.
func (f *File) Columns() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	header, err := csv.NewReader(file).Read()
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(header))
	for _, col := range header {
		if _, noisy := noisyColumns[col]; noisy {
			continue
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// Rows yields one raw record per data line. Short and long lines are
// tolerated: missing cells are absent from the record, extra cells are
// dropped. Malformed lines are yielded as errors and reading continues;
// an I/O failure ends the stream.
func (f *File) Rows(ctx context.Context) iter.Seq2[core.RawRecord, error] {
	return func(yield func(core.RawRecord, error) bool) {
		file, err := os.Open(f.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				yield(nil, err)
			}
			return
		}

		for {
			if ctx.Err() != nil {
				return
			}
			cells, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var parseErr *csv.ParseError
				recoverable := errors.As(err, &parseErr)
				if !yield(nil, err) || !recoverable {
					return
				}
				continue
			}

			row := make(core.RawRecord, len(header))
			for i, col := range header {
				if i >= len(cells) {
					break
				}
				if _, noisy := noisyColumns[col]; noisy {
					continue
				}
				row[col] = cells[i]
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}
