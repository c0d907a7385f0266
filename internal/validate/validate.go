package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Messages shared by request validators.
const (
	MsgNotBlank      = "não deve estar em branco"
	MsgNotEmpty      = "não deve estar vazio"
	MsgMustNotBlank  = "must not be blank"
	MsgMustNotNull   = "must not be null"
	MsgEmail         = "deve ser um endereço de e-mail bem formado"
	MsgNotRegistered = "is not registered"
	MsgRegistered    = "is already registered"
)

// Violation is a failed rule. Field is empty for object-level rules.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return "O campo " + v.Field + " " + v.Message
}

// Violations keeps rules in the order they were checked.
type Violations []Violation

func (vs Violations) Error() string {
	return strings.Join(vs.Messages(), "; ")
}

func (vs Violations) Messages() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

func (vs Violations) Has(field string) bool {
	for _, v := range vs {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there is nothing to report.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

func (vs *Violations) Add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}

// Check records message against field when ok is false.
func (vs *Violations) Check(ok bool, field, message string) bool {
	if !ok {
		vs.Add(field, message)
	}
	return ok
}

func Blank(s string) bool { return strings.TrimSpace(s) == "" }

// LengthBetween counts runes, not bytes.
func LengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func Between(n, min, max int) bool { return n >= min && n <= max }

func LengthMessage(min, max int) string {
	return fmt.Sprintf("length must be between %d and %d", min, max)
}

func SizeMessage(min, max int) string {
	return fmt.Sprintf("size must be between %d and %d", min, max)
}

func RangeMessage(min, max int) string {
	return fmt.Sprintf("must be between %d and %d", min, max)
}

func MinMessage(min string) string {
	return "must be greater than or equal to " + min
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Registered records "<field> is not registered" when exists reports false.
// Lookup errors are returned untouched so callers can fail the request.
func (vs *Violations) Registered(field string, exists func() (bool, error)) (bool, error) {
	ok, err := exists()
	if err != nil {
		return false, err
	}
	vs.Check(ok, field, field+" "+MsgNotRegistered)
	return ok, nil
}

// Unique records "<field> is already registered" when taken reports true.
func (vs *Violations) Unique(field string, taken func() (bool, error)) (bool, error) {
	dup, err := taken()
	if err != nil {
		return false, err
	}
	vs.Check(!dup, field, field+" "+MsgRegistered)
	return !dup, nil
}
