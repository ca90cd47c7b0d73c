package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// Column describes one table column: the field it reads and the header shown.
type Column struct {
	Field  string
	Header string
	Width  int
}

// TableFormatter formats output as a table using pterm.
type TableFormatter struct {
	columns []Column
}

// NewTableFormatter creates a new table formatter. Columns are auto-detected
// from the data unless set explicitly.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// WithColumns fixes the column set instead of auto-detecting it.
func (f *TableFormatter) WithColumns(columns []Column) *TableFormatter {
	f.columns = columns
	return f
}

// Name returns the formatter name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Supports returns true if the formatter can handle the given data type.
// Table formatter supports non-empty slices and maps, and structs.
func (f *TableFormatter) Supports(data interface{}) bool {
	if data == nil {
		return false
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() > 0
	case reflect.Struct:
		return true
	case reflect.Ptr:
		if v.IsNil() {
			return false
		}
		return f.Supports(v.Elem().Interface())
	default:
		return false
	}
}

// Format formats the data as a table and writes it to the writer.
func (f *TableFormatter) Format(w io.Writer, data interface{}, config *FormatConfig) error {
	if config == nil {
		config = NewFormatConfig()
	}

	if data == nil {
		return fmt.Errorf("cannot format nil data as table")
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("cannot format nil pointer as table")
		}
		v = v.Elem()
	}

	var tableData [][]string
	var err error

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		tableData, err = f.formatSlice(v, config)
	case reflect.Map:
		tableData, err = f.formatMap(v, config)
	case reflect.Struct:
		tableData, err = f.formatStruct(v, config)
	default:
		return fmt.Errorf("unsupported data type for table formatting: %s", v.Kind())
	}
	if err != nil {
		return err
	}

	if config.SortBy != "" && len(tableData) > 1 {
		tableData = f.sortTableData(tableData, config)
	}

	table := pterm.DefaultTable.WithHasHeader(config.ShowHeaders)
	if config.Colors {
		table = table.WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold))
	} else {
		pterm.DisableColor()
		defer pterm.EnableColor()
	}

	rendered, err := table.WithData(tableData).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err = w.Write([]byte(rendered))
	return err
}

// formatSlice formats a slice or array, one row per element.
func (f *TableFormatter) formatSlice(v reflect.Value, config *FormatConfig) ([][]string, error) {
	if v.Len() == 0 {
		return nil, fmt.Errorf("empty slice")
	}

	columns := f.columns
	if len(columns) == 0 {
		columns = autoDetectColumns(v.Index(0))
	}
	if len(columns) == 0 {
		// Scalar elements become a single-column table.
		tableData := make([][]string, 0, v.Len()+1)
		if config.ShowHeaders {
			tableData = append(tableData, []string{"VALUE"})
		}
		for i := 0; i < v.Len(); i++ {
			tableData = append(tableData, []string{formatCell(v.Index(i).Interface())})
		}
		return tableData, nil
	}

	tableData := make([][]string, 0, v.Len()+1)
	if config.ShowHeaders {
		headers := make([]string, len(columns))
		for i, col := range columns {
			headers[i] = col.Header
			if headers[i] == "" {
				headers[i] = strings.ToUpper(col.Field)
			}
		}
		tableData = append(tableData, headers)
	}

	for i := 0; i < v.Len(); i++ {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = formatCell(extractField(v.Index(i), col.Field))
			if col.Width > 3 && len(row[j]) > col.Width {
				row[j] = row[j][:col.Width-3] + "..."
			}
		}
		tableData = append(tableData, row)
	}

	return tableData, nil
}

// formatMap formats a map as a two-column key-value table with sorted keys.
func (f *TableFormatter) formatMap(v reflect.Value, config *FormatConfig) ([][]string, error) {
	if v.Len() == 0 {
		return nil, fmt.Errorf("empty map")
	}

	tableData := make([][]string, 0, v.Len()+1)
	if config.ShowHeaders {
		tableData = append(tableData, []string{"KEY", "VALUE"})
	}

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	for _, key := range keys {
		tableData = append(tableData, []string{
			fmt.Sprint(key.Interface()),
			formatCell(v.MapIndex(key).Interface()),
		})
	}

	return tableData, nil
}

// formatStruct formats a struct as a two-column field-value table.
func (f *TableFormatter) formatStruct(v reflect.Value, config *FormatConfig) ([][]string, error) {
	t := v.Type()
	tableData := make([][]string, 0, t.NumField()+1)

	if config.ShowHeaders {
		tableData = append(tableData, []string{"FIELD", "VALUE"})
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tableData = append(tableData, []string{
			fieldName(field),
			formatCell(v.Field(i).Interface()),
		})
	}

	return tableData, nil
}

// autoDetectColumns derives columns from a sample element.
func autoDetectColumns(v reflect.Value) []Column {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	var columns []Column
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := fieldName(field)
			columns = append(columns, Column{Field: name, Header: strings.ToUpper(name)})
		}
	case reflect.Map:
		var keys []string
		for _, key := range v.MapKeys() {
			keys = append(keys, fmt.Sprint(key.Interface()))
		}
		sort.Strings(keys)
		for _, key := range keys {
			columns = append(columns, Column{Field: key, Header: strings.ToUpper(key)})
		}
	}

	return columns
}

// fieldName prefers the json tag over the Go field name.
func fieldName(field reflect.StructField) string {
	if jsonTag := field.Tag.Get("json"); jsonTag != "" {
		parts := strings.Split(jsonTag, ",")
		if parts[0] != "" && parts[0] != "-" {
			return parts[0]
		}
	}
	return field.Name
}

// extractField reads a named field from a struct or map element.
func extractField(v reflect.Value, name string) interface{} {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		for _, key := range v.MapKeys() {
			if fmt.Sprint(key.Interface()) == name {
				return v.MapIndex(key).Interface()
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if fieldName(t.Field(i)) == name || t.Field(i).Name == name {
				return v.Field(i).Interface()
			}
		}
	}

	return nil
}

// formatCell formats a value as a table cell.
func formatCell(value interface{}) string {
	if value == nil {
		return ""
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		value = v.Elem().Interface()
	}

	switch val := value.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

// sortTableData sorts data rows by the configured column.
func (f *TableFormatter) sortTableData(data [][]string, config *FormatConfig) [][]string {
	if !config.ShowHeaders || len(data) <= 1 {
		return data
	}

	colIndex := -1
	for i, header := range data[0] {
		if strings.EqualFold(header, config.SortBy) {
			colIndex = i
			break
		}
	}
	if colIndex == -1 {
		return data
	}

	header := data[0]
	rows := data[1:]
	sort.SliceStable(rows, func(i, j int) bool {
		if config.SortAsc {
			return rows[i][colIndex] < rows[j][colIndex]
		}
		return rows[i][colIndex] > rows[j][colIndex]
	})

	return append([][]string{header}, rows...)
}

// FormatResult formats a Result object as a table.
func (f *TableFormatter) FormatResult(w io.Writer, result *Result, config *FormatConfig) error {
	if !result.Success {
		errorData := map[string]interface{}{
			"success": false,
			"error":   result.Error,
		}
		return f.Format(w, errorData, config)
	}

	return f.Format(w, result.Data, config)
}

// FormatError formats an error as a table.
func (f *TableFormatter) FormatError(w io.Writer, err error, config *FormatConfig) error {
	errorData := map[string]interface{}{
		"error": err.Error(),
	}
	return f.Format(w, errorData, config)
}

// FormatEmpty formats an empty result message.
func (f *TableFormatter) FormatEmpty(w io.Writer, message string, config *FormatConfig) error {
	if message == "" {
		message = "No results found"
	}
	_, err := w.Write([]byte(message + "\n"))
	return err
}
