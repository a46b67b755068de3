package forms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"empty text is required", "", MsgRequired},
		{"13 runes is too short", "Тестовый пост", MsgTextTooShort},
		{"14 runes is too short", "Тестовый пост5", MsgTextTooShort},
		{"exactly 15 runes passes", "Тестовый пост55", ""},
		{"17 runes passes", "Тестовый пост 555", ""},
		{"long latin text passes", strings.Repeat("a", 15), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := PostForm{Text: tt.text}
			errs := form.Validate()

			if tt.wantErr == "" {
				assert.True(t, errs.Empty(), "expected no errors, got %v", errs)
			} else {
				assert.Equal(t, tt.wantErr, errs["text"])
			}
		})
	}
}

func TestPostFormCountsRunesNotBytes(t *testing.T) {
	// 13 cyrillic runes are 25 bytes; a byte count would wrongly pass.
	form := PostForm{Text: "Тестовый пост"}
	errs := form.Validate()

	assert.Equal(t, MsgTextTooShort, errs["text"])
}
