package domain

// ValidLuhn reports whether digits, check digit included, satisfies the mod-10 checksum.
// digits must contain only '0'-'9'.
func ValidLuhn(digits string) bool {
	if digits == "" {
		return false
	}

	sum := 0
	for i := 0; i < len(digits); i++ {
		digit := int(digits[len(digits)-1-i] - '0')

		// Double every second digit from the right, skipping the check digit itself
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
	}

	return sum%10 == 0
}

// LuhnCheckDigit computes the digit that makes payload+digit pass ValidLuhn.
func LuhnCheckDigit(payload string) byte {
	sum := 0
	for i := 0; i < len(payload); i++ {
		digit := int(payload[len(payload)-1-i] - '0')

		// The check digit will take position 0, so payload digits at even offsets double
		if i%2 == 0 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
	}

	return byte('0' + (10-(sum%10))%10)
}
