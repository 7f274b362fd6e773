package errs

import (
	"errors"
	"strconv"
	"strings"
)

// CodeError is the wire shape of every API-level failure: a stable numeric
// code, a short message, and an optional free-form detail.
type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"message"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) CodeError {
	return CodeError{Code: code, Msg: msg}
}

func (e CodeError) WithDetail(detail string) CodeError {
	d := detail
	if e.Detail != "" {
		d = e.Detail + ", " + detail
	}
	return CodeError{Code: e.Code, Msg: e.Msg, Detail: d}
}

func (e CodeError) Error() string {
	v := make([]string, 0, 3)
	v = append(v, strconv.Itoa(e.Code), e.Msg)
	if e.Detail != "" {
		v = append(v, e.Detail)
	}
	return strings.Join(v, " ")
}

// Is matches on the code only, so wrapped/detailed copies of the same
// CodeError still compare equal under errors.Is.
func (e CodeError) Is(err error) bool {
	var ce CodeError
	if !errors.As(err, &ce) {
		return false
	}
	return e.Code == ce.Code
}
