package types

import (
	"regexp"
	"strings"

	ierr "github.com/jurisflow/jurisflow/internal/errors"
)

// NigerCountryCode is the only dialing prefix accepted for subscriber phones.
const NigerCountryCode = "+227"

// nigerSubscriberRegex matches the 8 digit national numbers assigned to
// mobile operators in Niger. The two leading digits identify the operator
// block; anything outside these blocks is not a valid subscriber number.
var nigerSubscriberRegex = regexp.MustCompile(`^(70|73|74|75|80|81|82|83|84|85|86|87|88|89|90|91|92|93|94|96|97)\d{6}$`)

// NormalizePhone strips spaces, dots, dashes and parentheses from a raw
// phone input so that equivalent spellings compare equal.
func NormalizePhone(raw string) string {
	replacer := strings.NewReplacer(" ", "", ".", "", "-", "", "(", "", ")", "")
	return replacer.Replace(strings.TrimSpace(raw))
}

// ValidatePhone checks that the input is a valid Niger mobile number in
// E.164 form after normalization. The country code is optional on input.
func ValidatePhone(raw string) error {
	_, err := FormatPhoneE164(raw)
	return err
}

// FormatPhoneE164 normalizes a raw phone input and returns it in canonical
// E.164 form (+227XXXXXXXX). All phone numbers are stored in this form.
func FormatPhoneE164(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if phone == "" {
		return "", ierr.NewError("phone number is required").
			WithHint("Phone number is required").
			Mark(ierr.ErrValidation)
	}

	subscriber := phone
	switch {
	case strings.HasPrefix(phone, NigerCountryCode):
		subscriber = strings.TrimPrefix(phone, NigerCountryCode)
	case strings.HasPrefix(phone, "00227"):
		subscriber = strings.TrimPrefix(phone, "00227")
	case strings.HasPrefix(phone, "227") && len(phone) == 11:
		subscriber = strings.TrimPrefix(phone, "227")
	}

	if !nigerSubscriberRegex.MatchString(subscriber) {
		return "", ierr.NewError("invalid phone number").
			WithHint("Phone number must be a valid Niger mobile number, e.g. +227 90 00 00 00").
			WithReportableDetails(map[string]any{
				"country_code": NigerCountryCode,
			}).
			Mark(ierr.ErrValidation)
	}

	return NigerCountryCode + subscriber, nil
}
