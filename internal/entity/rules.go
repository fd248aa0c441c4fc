// internal/entity/rules.go
//
// Field rules shared by every entity.  One package-level validator carries
// the custom tags; setters call check or checkInt and never touch the
// validator directly.

package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom tags.
const (
	identTag    = "ident"    // letters, digits, and '-'
	categoryTag = "category" // leading letter, then letters, spaces, and '-'
)

var (
	identRegex    = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	categoryRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z -]*$`)
)

// Rules per field.  Emptiness is handled before the tag runs so `required`
// is never what fails here.
const (
	roomNumberRule = "max=10," + identTag
	roomTypeRule   = "max=30," + categoryTag
	capacityRule   = "gt=0"
	courseIDRule   = "max=16," + identTag
	courseNameRule = "max=100"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(identTag, regexRule(identRegex))
	_ = v.RegisterValidation(categoryTag, regexRule(categoryRegex))
	return v
}

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// check trims raw and applies rule.  Whitespace-only input is missing.
func check(kind, field, raw, rule string) (string, error) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return "", missing(kind, field)
	}
	if err := validate.Var(val, rule); err != nil {
		return "", invalid(kind, field, raw, ruleError(err))
	}
	return val, nil
}

// checkInt parses raw as a base-10 int before applying rule.
func checkInt(kind, field, raw, rule string) (int, error) {
	val := strings.TrimSpace(raw)
	if val == "" {
		return 0, missing(kind, field)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, invalid(kind, field, raw, errors.New("not a whole number"))
	}
	if err := validate.Var(n, rule); err != nil {
		return 0, invalid(kind, field, raw, ruleError(err))
	}
	return n, nil
}

// ruleError turns validator output into a short message naming the tag.
func ruleError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		switch fe.Tag() {
		case "max":
			return fmt.Errorf("longer than %s characters", fe.Param())
		case "gt":
			return fmt.Errorf("must be greater than %s", fe.Param())
		case identTag:
			return errors.New("only letters, digits, and '-' are allowed")
		case categoryTag:
			return errors.New("must start with a letter and contain only letters, spaces, and '-'")
		}
		return fmt.Errorf("fails %q rule", fe.Tag())
	}
	return err
}
