// Package forms binds urlencoded request bodies to explicit form structs
// and validates them. Every form returns field-keyed, user-facing messages;
// an empty Errors map means the submission may be persisted.
package forms

// Errors maps a field name to the message rendered next to it.
type Errors map[string]string

func (e Errors) Empty() bool {
	return len(e) == 0
}

const (
	MsgRequired     = "Обязательное поле."
	MsgTextTooShort = "Длина этого поля должна быть не менее 15 символов"
	MsgBadGroup     = "Выберите корректную группу"
)
