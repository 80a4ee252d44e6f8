// Package validators holds the custom validation rules registered on
// the shared validator instance at startup.
package validators

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"dentalia/cmd/internal/schedule"
)

// Register wires every custom rule onto the given validator instance.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"dni":        Dni,
		"slot":       Slot,
		"hasupper":   HasUpper,
		"haslower":   HasLower,
		"hasdigit":   HasDigit,
		"hasspecial": HasSpecial,
		"nospaces":   NoWhiteSpaces,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

var dniPattern = regexp.MustCompile(`^\d{8}[A-Za-z]$`)

// dniLetters maps DNI number mod 23 to its control letter.
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// Dni validates a Spanish DNI: eight digits plus a control letter that
// must match the number modulo 23.
func Dni(fl validator.FieldLevel) bool {
	dni := fl.Field().String()
	if !dniPattern.MatchString(dni) {
		return false
	}
	number, err := strconv.Atoi(dni[:8])
	if err != nil {
		return false
	}
	letter := strings.ToUpper(dni[8:])
	return letter == string(dniLetters[number%23])
}

// Slot validates that the value is one of the clinic's bookable slot
// labels. Anything outside the catalog (lunch, off hours, minutes) is
// rejected before it ever reaches the booking path.
func Slot(fl validator.FieldLevel) bool {
	return schedule.InCatalog(fl.Field().String())
}

func HasUpper(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsUpper)
}

func HasLower(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsLower)
}

func HasDigit(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), unicode.IsDigit)
}

func HasSpecial(fl validator.FieldLevel) bool {
	return strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}
