package plugin

import "fmt"

// Error is an error carrying one of the codes a plugin declared in
// ErrorCodes. Hooks return it to give the host a stable code to report.
type Error struct {
	code string
	msg  string
}

// Errorf creates a coded plugin error. The code is used as-is; the
// registry qualifies unprefixed codes with the plugin id.
func Errorf(code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.msg }

// Code returns the error code.
func (e *Error) Code() string { return e.code }
