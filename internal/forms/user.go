package forms

import (
	"net/mail"
	"regexp"
	"unicode/utf8"
)

const passwordMinLength = 8

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type SignupForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

func (f *SignupForm) Validate() Errors {
	errs := Errors{}

	if f.Username == "" {
		errs["username"] = MsgRequired
	} else if !usernamePattern.MatchString(f.Username) {
		errs["username"] = "Имя пользователя может содержать только буквы, цифры и символы @/./+/-/_"
	}

	if f.Email == "" {
		errs["email"] = MsgRequired
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "Введите правильный адрес электронной почты."
	}

	if f.Password == "" {
		errs["password"] = MsgRequired
	} else if utf8.RuneCountInString(f.Password) < passwordMinLength {
		errs["password"] = "Пароль должен содержать не менее 8 символов"
	}

	return errs
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}

	if f.Username == "" {
		errs["username"] = MsgRequired
	}
	if f.Password == "" {
		errs["password"] = MsgRequired
	}

	return errs
}
