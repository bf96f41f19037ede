package validators

import "strings"

// Blank informa se algum dos valores está vazio após trim.
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

const MinPasswordLength = 6

func IsStrongPassword(pw string) bool {
	return len(pw) >= MinPasswordLength
}
