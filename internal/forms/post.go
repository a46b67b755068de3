package forms

import "unicode/utf8"

// PostTextMinLength is counted in runes, not bytes. Cyrillic text would
// otherwise pass with half the intended length.
const PostTextMinLength = 15

type PostForm struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

// Validate checks the text field only; the group reference is resolved
// against the database by the handler. The submitted text is stored
// verbatim, so no trimming happens here.
func (f *PostForm) Validate() Errors {
	errs := Errors{}

	if f.Text == "" {
		errs["text"] = MsgRequired
	} else if utf8.RuneCountInString(f.Text) < PostTextMinLength {
		errs["text"] = MsgTextTooShort
	}

	return errs
}
