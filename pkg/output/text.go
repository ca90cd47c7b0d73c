package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
)

// TextFormatter is the default human-readable formatter. Strings and string
// slices print line by line, maps and structs as "key: value" lines.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Supports returns true if the formatter can handle the given data type.
// Text formatter can handle any data type.
func (f *TextFormatter) Supports(data interface{}) bool {
	return true
}

// Format writes the data as plain lines.
func (f *TextFormatter) Format(w io.Writer, data interface{}, _ *FormatConfig) error {
	if data == nil {
		return nil
	}

	switch d := data.(type) {
	case string:
		_, err := fmt.Fprintln(w, d)
		return err
	case []string:
		for _, line := range d {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case fmt.Stringer:
		_, err := fmt.Fprintln(w, d.String())
		return err
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := f.Format(w, v.Index(i).Interface(), nil); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			if _, err := fmt.Fprintf(w, "%v: %v\n", key.Interface(), v.MapIndex(key).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if _, err := fmt.Fprintf(w, "%s: %v\n", fieldName(field), v.Field(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, data)
		return err
	}
}

// FormatResult prints the message when one is set, otherwise the data.
// Failures print as a single error line.
func (f *TextFormatter) FormatResult(w io.Writer, result *Result, config *FormatConfig) error {
	if !result.Success {
		_, err := fmt.Fprintf(w, "Error: %s\n", result.Error)
		return err
	}

	if result.Message != "" {
		_, err := fmt.Fprintln(w, result.Message)
		return err
	}

	return f.Format(w, result.Data, config)
}

// FormatError formats an error as a single line.
func (f *TextFormatter) FormatError(w io.Writer, err error, _ *FormatConfig) error {
	_, werr := fmt.Fprintf(w, "Error: %s\n", err.Error())
	return werr
}

// FormatEmpty prints the message, if any.
func (f *TextFormatter) FormatEmpty(w io.Writer, message string, _ *FormatConfig) error {
	if message == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
