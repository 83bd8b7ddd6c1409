package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

const sampleDoc = `[
	{"name":"sample","author":"me","backcolor":"#222222","version":2,"plate":true,
	 "background":{"name":"Wood","style":"background: brown"}},
	[{"r":10,"rx":1,"ry":0.5,"c":"#ff000080","t":"#ffffff\n#00ff00","sm":"cherry"},"!\n1",{"w":1.5,"g":true},"Tab"],
	[{"a":7,"f":5,"p":"DSA","n":true},"F",{"w2":1.5,"h2":2,"x2":-0.25,"l":true,"d":true},"Enter"]
]`

func sampleLayout(t *testing.T) *kle.Layout {
	t.Helper()
	l, err := kle.Unmarshal([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return l
}

func TestLayoutRoundTrip(t *testing.T) {
	want := sampleLayout(t)

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteLayout(&buf, want, format); err != nil {
				t.Fatalf("WriteLayout: %v", err)
			}
			got, err := ReadLayout(&buf, format)
			if err != nil {
				t.Fatalf("ReadLayout: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, want)
			}
		})
	}
}

func TestWriteLayoutJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLayout(&buf, sampleLayout(t), ""); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"backcolor": "#222222"`,
		`"color": "#ff000080"`,
		`"slot": 6`,
		`"text": "1"`,
		`"ghost": true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
	if strings.Contains(out, `"decal": false`) {
		t.Error("false flags should be omitted")
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{" yaml ", FormatYAML, false},
		{"mp", FormatMsgpack, false},
		{"msgpack", FormatMsgpack, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("NormalizeFormat(%q) error = %v, want INVALID_FORMAT", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(FormatYAML); got != "application/yaml" {
		t.Errorf("ContentType(yaml) = %q", got)
	}
	if got := ContentType("bogus"); got != "application/octet-stream" {
		t.Errorf("ContentType(bogus) = %q", got)
	}
	if got := Extension(FormatMsgpack); got != ".msgpack" {
		t.Errorf("Extension(msgpack) = %q", got)
	}
}

func TestReadRaw(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		l, err := ReadRaw(strings.NewReader(`[["A","B"]]`))
		if err != nil {
			t.Fatalf("ReadRaw: %v", err)
		}
		if len(l.Keys) != 2 {
			t.Errorf("got %d keys, want 2", len(l.Keys))
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ReadRaw(strings.NewReader(""))
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("TooLarge", func(t *testing.T) {
		_, err := ReadDocument(strings.NewReader(strings.Repeat(" ", 65)), 64)
		if !errors.Is(err, errors.ErrCodeTooLarge) {
			t.Errorf("error = %v, want TOO_LARGE", err)
		}
	})

	t.Run("Rejected", func(t *testing.T) {
		_, err := ReadRaw(strings.NewReader(`[[42]]`))
		if !errors.Is(err, errors.ErrCodeUnexpectedItemType) {
			t.Errorf("error = %v, want UNEXPECTED_ITEM_TYPE", err)
		}
	})
}

func TestImportRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := ImportRaw(path, kle.WithEditorCarry())
	if err != nil {
		t.Fatalf("ImportRaw: %v", err)
	}
	if l.Meta.Name != "sample" {
		t.Errorf("name = %q, want sample", l.Meta.Name)
	}

	_, err = ImportRaw(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportImportLayout(t *testing.T) {
	want := sampleLayout(t)
	path := filepath.Join(t.TempDir(), "out.yaml")

	if err := ExportLayout(want, path, FormatYAML); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	got, err := ImportLayout(path, FormatYAML)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImportLayout mismatch")
	}
}

func TestReadLayoutRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Syntax", `{"keys": [`},
		{"BadColor", `{"meta":{"backcolor":"#eeeeee"},"keys":[{"color":"nope","legends":[]}]}`},
		{"BadSlot", `{"meta":{"backcolor":"#eeeeee"},"keys":[{"color":"#cccccc","legends":[{"slot":12,"text":"x"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLayout(strings.NewReader(tt.in), FormatJSON)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
