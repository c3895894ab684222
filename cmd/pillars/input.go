package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/pillars/matrix"
)

// readArray decodes a JSON file holding either a 2-D array ([[...], ...]) or
// a stack of equally shaped 2-D arrays ([[[...], ...], ...]).
func readArray(path string) (matrix.Array, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return decodeArray(raw)
}

func decodeArray(raw []byte) (matrix.Array, error) {
	var stack [][][]float64
	if err := json.Unmarshal(raw, &stack); err == nil && !isFlat(raw) {
		items := make([]*matrix.Dense, len(stack))
		for i, rows := range stack {
			d, err := matrix.NewDenseRows(rows)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items[i] = d
		}
		return matrix.StackOf(items...)
	}

	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("want a JSON array of rows or of arrays: %w", err)
	}

	return matrix.NewDenseRows(rows)
}

// isFlat reports whether raw decodes as a 2-D array. An empty outer array
// decodes both ways and is read as an empty 2-D array.
func isFlat(raw []byte) bool {
	var rows [][]float64
	return json.Unmarshal(raw, &rows) == nil
}
