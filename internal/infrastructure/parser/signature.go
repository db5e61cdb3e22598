package parser

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrInvalidSignature = errors.New("file content does not match its extension")

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// checkSignature faylning boshidagi baytlar kengaytmaga mosligini tekshiradi.
// .xlsx zip bo'lishi shart, csv/yaml esa matn.
func checkSignature(ext string, data []byte) error {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	switch ext {
	case ".xlsx":
		if bytes.HasPrefix(head, zipMagic) {
			return nil
		}
		if bytes.HasPrefix(head, oleMagic) {
			// eski .xls excelize bilan ochilmaydi
			return fmt.Errorf("%w: legacy .xls workbook, save it as .xlsx", ErrInvalidSignature)
		}
		return fmt.Errorf("%w: %s is not a zip archive", ErrInvalidSignature, ext)
	case ".csv", ".yaml", ".yml":
		if len(head) == 0 || isLikelyText(head) {
			return nil
		}
		return fmt.Errorf("%w: %s looks binary", ErrInvalidSignature, ext)
	}
	return nil
}

// isLikelyText checks if the buffer is predominantly printable/textual data.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	if bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}) {
		buf = buf[3:]
	}
	printable := 0
	for _, b := range buf {
		if b == 0 {
			// NUL bytes usually indicate binary
			return false
		}
		// UTF-8 multibyte (model nomlarida uchraydi) matn deb hisoblanadi
		if (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80 {
			printable++
		}
	}
	ratio := float64(printable) / float64(len(buf))
	return ratio >= 0.75
}
