package model

import (
	"strconv"
	"strings"
)

// LaxInt decodes from either a JSON number or a string. Unparseable input
// becomes zero instead of failing the whole document, since stored data may
// carry string-typed quantities written by older clients.
type LaxInt int

func (n *LaxInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if v, err := strconv.Atoi(s); err == nil {
		*n = LaxInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = LaxInt(int(f))
		return nil
	}
	*n = 0
	return nil
}

// LaxFloat is the float counterpart of LaxInt, used for prices.
type LaxFloat float64

func (f *LaxFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = LaxFloat(v)
		return nil
	}
	*f = 0
	return nil
}
