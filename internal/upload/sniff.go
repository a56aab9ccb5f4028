package upload

import (
	"bytes"
	"errors"
)

type DocumentType string

const (
	TypePDF  DocumentType = "pdf"
	TypeDOC  DocumentType = "doc"
	TypeDOCX DocumentType = "docx"
)

var ErrUnknownType = errors.New("unknown document type")

type SniffResult struct {
	Type DocumentType
	MIME string
}

// DetectHead identifies a resume document from its leading bytes. Only the
// formats the hiring team can open are accepted.
func DetectHead(head []byte) (SniffResult, error) {
	if len(head) == 0 {
		return SniffResult{}, ErrUnknownType
	}

	if isPDF(head) {
		return SniffResult{Type: TypePDF, MIME: "application/pdf"}, nil
	}
	if isDOC(head) {
		return SniffResult{Type: TypeDOC, MIME: "application/msword"}, nil
	}
	if isDOCX(head) {
		return SniffResult{Type: TypeDOCX, MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, nil
	}

	return SniffResult{}, ErrUnknownType
}

func isPDF(head []byte) bool {
	return len(head) >= 5 && bytes.Equal(head[:5], []byte("%PDF-"))
}

// Legacy Word documents use the OLE compound file magic.
func isDOC(head []byte) bool {
	oleMagic := []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
	return len(head) >= len(oleMagic) && bytes.Equal(head[:len(oleMagic)], oleMagic)
}

// DOCX is a zip container; PK magic plus the [Content_Types].xml entry name
// near the start distinguishes it from arbitrary zips in practice.
func isDOCX(head []byte) bool {
	if len(head) < 4 || head[0] != 'P' || head[1] != 'K' {
		return false
	}
	return bytes.Contains(head, []byte("[Content_Types].xml")) ||
		bytes.Contains(head, []byte("word/"))
}
