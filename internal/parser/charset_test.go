package parser

import (
	"bytes"
	"io"
	"testing"
)

// TestNewUTF8Reader_AlreadyUTF8 tests that UTF-8 content passes through unchanged
func TestNewUTF8Reader_AlreadyUTF8(t *testing.T) {
	t.Parallel()
	input := []byte("店名,ジャンル\nラーメン屋,ラーメン\n")
	reader, err := NewUTF8Reader(bytes.NewReader(input), "text/csv; charset=utf-8")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read from UTF-8 reader: %v", err)
	}

	if !bytes.Equal(output, input) {
		t.Errorf("Expected UTF-8 content to pass through unchanged, got %q", output)
	}
}

// TestNewUTF8Reader_ShiftJISToUTF8 tests conversion when the content type declares Shift_JIS
func TestNewUTF8Reader_ShiftJISToUTF8(t *testing.T) {
	t.Parallel()
	// "奈良" in Shift_JIS
	input := []byte{0x93, 0xde, 0x97, 0xc7}

	reader, err := NewUTF8Reader(bytes.NewReader(input), "text/csv; charset=Shift_JIS")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read converted content: %v", err)
	}

	if string(output) != "奈良" {
		t.Errorf("Expected %q, got %q", "奈良", output)
	}
}

// TestNewUTF8Reader_NoContentType tests that valid UTF-8 is kept when no charset is declared
func TestNewUTF8Reader_NoContentType(t *testing.T) {
	t.Parallel()
	input := []byte("\"店名\",\"駅名\"\n\"カフェ\",\"近鉄奈良\"\n")
	reader, err := NewUTF8Reader(bytes.NewReader(input), "")
	if err != nil {
		t.Fatalf("NewUTF8Reader failed: %v", err)
	}

	output, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if !bytes.Equal(output, input) {
		t.Errorf("Expected content unchanged, got %q", output)
	}
}
