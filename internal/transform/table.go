package transform

import (
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

type TableColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// genericColumns is the fixed row shape used when a table declares no columns.
var genericColumns = []string{
	"id", "type", "name", "status", "workflow_name", "duration_ms", "value", "timestamp",
}

type Table struct {
	Columns []TableColumn       `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// BuildTable projects events onto the declared columns with light per-column
// formatting, capped at limit rows. Without declared columns the generic row
// shape is used and only columns that actually occur in the data are kept.
func BuildTable(events []models.FlatEvent, columns []string, limit int) Table {
	auto := len(columns) == 0
	if auto {
		columns = presentColumns(events, genericColumns)
	}

	table := Table{
		Columns: make([]TableColumn, 0, len(columns)),
		Rows:    make([]map[string]string, 0),
	}
	for _, col := range columns {
		table.Columns = append(table.Columns, TableColumn{
			Key:   col,
			Label: models.TitleCase(col),
		})
	}

	for _, ev := range events {
		if limit > 0 && len(table.Rows) >= limit {
			break
		}

		row := make(map[string]string, len(columns))
		for _, col := range columns {
			row[col] = FormatCellValue(col, ev[col])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// declaredColumns extracts the columns prop, which arrives as []interface{}
// after JSON decoding but may be []string when built in-process.
func declaredColumns(props map[string]interface{}) []string {
	switch cols := props["columns"].(type) {
	case []string:
		return cols
	case []interface{}:
		out := make([]string, 0, len(cols))
		for _, c := range cols {
			if s, ok := c.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func presentColumns(events []models.FlatEvent, candidates []string) []string {
	present := make([]string, 0, len(candidates))
	for _, col := range candidates {
		for _, ev := range events {
			if _, ok := ev.Field(col); ok {
				present = append(present, col)
				break
			}
		}
	}
	if len(present) == 0 {
		return candidates
	}
	return present
}
