// Package validation holds the request validator and the Brazilian tax ID
// check-digit algorithms (CPF for people, CNPJ for companies).
package validation

import "strings"

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits strips every non-digit rune, so "123.456.789-09" becomes "12345678909".
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF checks a CPF with or without punctuation.
func IsValidCPF(cpf string) bool {
	digits := toDigits(OnlyDigits(cpf))
	if len(digits) != 11 || allSame(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	if cpfCheckDigit(sum) != digits[9] {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	return cpfCheckDigit(sum) == digits[10]
}

// cpfCheckDigit folds 10 and 11 to 0.
func cpfCheckDigit(sum int) int {
	d := 11 - sum%11
	if d > 9 {
		return 0
	}
	return d
}

// IsValidCNPJ checks a CNPJ with or without punctuation.
func IsValidCNPJ(cnpj string) bool {
	digits := toDigits(OnlyDigits(cnpj))
	if len(digits) != 14 || allSame(digits) {
		return false
	}

	if cnpjCheckDigit(digits[:12], cnpjWeights1) != digits[12] {
		return false
	}
	return cnpjCheckDigit(digits[:13], cnpjWeights2) == digits[13]
}

// cnpjCheckDigit folds remainders below 2 to 0.
func cnpjCheckDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func toDigits(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}

func allSame(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}
