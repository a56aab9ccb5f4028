package upload

import (
	"errors"
	"testing"
)

func TestDetectHead(t *testing.T) {
	docxHead := append([]byte("PK\x03\x04"), []byte("............[Content_Types].xml")...)

	tests := []struct {
		name     string
		head     []byte
		wantType DocumentType
		wantErr  bool
	}{
		{"pdf", []byte("%PDF-1.7 rest of file"), TypePDF, false},
		{"doc", []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0x00}, TypeDOC, false},
		{"docx", docxHead, TypeDOCX, false},
		{"docx word dir", []byte("PK\x03\x04....word/document.xml"), TypeDOCX, false},
		{"plain zip", []byte("PK\x03\x04....random.txt"), "", true},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, "", true},
		{"text", []byte("Dear hiring manager,"), "", true},
		{"empty", nil, "", true},
		{"short pdf prefix", []byte("%PD"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DetectHead(tt.head)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownType) {
					t.Fatalf("expected ErrUnknownType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectHead error: %v", err)
			}
			if result.Type != tt.wantType {
				t.Fatalf("type = %q, want %q", result.Type, tt.wantType)
			}
			if result.MIME == "" {
				t.Fatal("expected a MIME type")
			}
		})
	}
}
