package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestManagerDefaults(t *testing.T) {
	m := NewManager()

	want := []string{"json", "table", "text", "yaml"}
	if got := m.SupportedFormats(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedFormats() = %v, want %v", got, want)
	}

	for _, name := range want {
		if !m.IsFormatSupported(name) {
			t.Errorf("IsFormatSupported(%q) = false", name)
		}
	}
	if m.IsFormatSupported("csv") {
		t.Error("IsFormatSupported(csv) = true")
	}
}

func TestManagerSelectFormat(t *testing.T) {
	m := NewManager()

	tests := []struct {
		explicit   string
		configured string
		want       string
	}{
		{explicit: "json", configured: "yaml", want: "json"},
		{explicit: "", configured: "yaml", want: "yaml"},
		{explicit: "", configured: "", want: "text"},
	}

	for _, tt := range tests {
		if got := m.SelectFormat(tt.explicit, tt.configured); got != tt.want {
			t.Errorf("SelectFormat(%q, %q) = %q, want %q", tt.explicit, tt.configured, got, tt.want)
		}
	}
}

func TestManagerFormatDefaultsToText(t *testing.T) {
	m := NewManager()

	var buf bytes.Buffer
	if err := m.Format(&buf, []string{"react", "angular"}, ""); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if buf.String() != "react\nangular\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestManagerUnknownFormat(t *testing.T) {
	m := NewManager()

	var buf bytes.Buffer
	err := m.Format(&buf, "data", "csv")
	if err == nil {
		t.Fatal("Format succeeded with unknown format")
	}
	if !strings.Contains(err.Error(), "json, table, text, yaml") {
		t.Errorf("error %q does not list supported formats", err)
	}
}

func TestManagerFormatResultDispatch(t *testing.T) {
	m := NewManager()

	var buf bytes.Buffer
	result := NewResult(map[string]string{"filename": "UserCard.java"}).WithMessage("✓ done")
	if err := m.FormatResult(&buf, result, "json"); err != nil {
		t.Fatalf("FormatResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"message": "✓ done"`) {
		t.Errorf("json result output = %q", buf.String())
	}

	buf.Reset()
	if err := m.FormatResult(&buf, result, "text"); err != nil {
		t.Fatalf("FormatResult failed: %v", err)
	}
	if buf.String() != "✓ done\n" {
		t.Errorf("text result output = %q", buf.String())
	}
}

func TestManagerFormatError(t *testing.T) {
	m := NewManager()

	var buf bytes.Buffer
	if err := m.FormatError(&buf, errTest, "text"); err != nil {
		t.Fatalf("FormatError failed: %v", err)
	}
	if !strings.Contains(buf.String(), errTest.Error()) {
		t.Errorf("output = %q", buf.String())
	}

	if err := m.FormatError(&buf, nil, "text"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}
}

func TestManagerRenderMessage(t *testing.T) {
	m := NewManager()

	msg, err := m.RenderMessage("✓ {filename}", map[string]interface{}{"filename": "nav.py"})
	if err != nil {
		t.Fatalf("RenderMessage failed: %v", err)
	}
	if msg != "✓ nav.py" {
		t.Errorf("RenderMessage = %q", msg)
	}
}
