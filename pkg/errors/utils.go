package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// IsLendqError reports whether err is a coded *Error.
func IsLendqError(err error) bool {
	_, ok := err.(*Error)
	return ok
}

// HasCode reports whether any error in err's chain carries code. Errors that
// implement InternalError are transformed before comparison.
func HasCode(err error, code Code) bool {
	for err != nil {
		if ie, ok := err.(InternalError); ok {
			if ie.Transform().Code.Equals(code) {
				return true
			}
		}
		if e, ok := err.(*Error); ok && e.Code.Equals(code) {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

func GetContext(err error) map[string]string {
	if e := AsError(err); e != nil {
		return e.Context
	}
	return nil
}

func GetCode(err error) string {
	if e, ok := err.(*Error); ok {
		return e.Code.String()
	}
	if ie, ok := err.(InternalError); ok {
		return ie.Transform().Code.String()
	}
	return ""
}

// FormatError renders err on several lines for logs and CLI output. Context
// keys are sorted so the output is stable.
func FormatError(err error) string {
	e, ok := err.(*Error)
	if !ok {
		if ie, isInternal := err.(InternalError); isInternal {
			e, ok = ie.Transform(), true
		}
	}
	if !ok {
		return err.Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("Code: %s", e.Code))
	parts = append(parts, fmt.Sprintf("Message: %s", e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts = append(parts, "Context:")
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("  %s: %v", k, e.Context[k]))
		}
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %v", e.Cause))
	}

	return strings.Join(parts, "\n")
}

// AsError converts any error to *Error:
//   - InternalError values are converted with Transform()
//   - *Error values are returned as-is
//   - anything else is wrapped under common.internal
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	if ie, ok := err.(InternalError); ok {
		return ie.Transform()
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	return New(CommonInternal, err.Error(), err)
}
