package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneE164(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"already_e164", "+22790123456", "+22790123456", false},
		{"local_number", "90123456", "+22790123456", false},
		{"spaces_and_dots", "+227 90.12.34.56", "+22790123456", false},
		{"double_zero_prefix", "0022790123456", "+22790123456", false},
		{"bare_country_code", "22790123456", "+22790123456", false},
		{"zain_block", "80123456", "+22780123456", false},
		{"empty", "", "", true},
		{"foreign_number", "+33612345678", "", true},
		{"too_short", "9012345", "", true},
		{"too_long", "901234567", "", true},
		{"unassigned_block", "10123456", "", true},
		{"letters", "901234ab", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatPhoneE164(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+22790123456", NormalizePhone(" +227 90-12-34-56 "))
	assert.Equal(t, "+22790123456", NormalizePhone("+227(90)12.34.56"))
}
