package format

import "testing"

func TestDetect_Extensions(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"certificate.pdf", PDF},
		{"scan.PNG", PNG},
		{"scan.jpg", JPEG},
		{"scan.jpeg", JPEG},
		{"scan.webp", WebP},
		{"scan.hocr", HOCR},
		{"scan.html", HOCR},
		{"notes.txt", Unknown},
		{"noextension", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, JPEG},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), WebP},
		{"hocr", []byte(`<html><body><div class="ocr_page"></div></body></html>`), HOCR},
		{"plain html", []byte(`<html><body>hello</body></html>`), Unknown},
		{"short", []byte{0x01}, Unknown},
		{"garbage", []byte("certainly not a document"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat_IsImage(t *testing.T) {
	for _, f := range []Format{PNG, JPEG, WebP} {
		if !f.IsImage() {
			t.Errorf("%v.IsImage() = false, want true", f)
		}
	}
	for _, f := range []Format{PDF, HOCR, Unknown} {
		if f.IsImage() {
			t.Errorf("%v.IsImage() = true, want false", f)
		}
	}
}
