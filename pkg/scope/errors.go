package scope

import (
	"errors"
	"fmt"
)

// ErrInvalidCharacter is returned when scope text contains a character outside
// the allowed set. Use errors.Is to match it; use errors.As with
// *InvalidCharacterError to recover the offending character.
var ErrInvalidCharacter = errors.New("scope: invalid character")

// InvalidCharacterError reports the first disallowed character found in scope
// text. It carries the character only, not its position.
type InvalidCharacterError struct {
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("scope: invalid character %q", e.Char)
}

// Is makes the error match ErrInvalidCharacter with errors.Is.
func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}
