package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are provided, nil is returned. If a single error is provided
// it is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten, so that the result is never a tree of multi errors.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a set of errors. Its code is the code of the first
// error it contains, consistent with a fail-fast approach.
type multiErr []error

func (m multiErr) Error() string {
	points := make([]string, len(m))
	for i, err := range m {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(points, "\n\t"))
}

// Code returns the code of the first error.
func (m multiErr) Code() uint32 {
	if len(m) == 0 {
		return SuccessCode
	}
	return Code(m[0])
}

// Unpack returns all errors this error is grouping.
func (m multiErr) Unpack() []error {
	return m
}

type unpacker interface {
	Unpack() []error
}

func isNilErr(err error) bool {
	return errIsNil(err)
}
