package moneypkg

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		amount  string
		want    string
		wantErr error
	}{
		{name: "Integer", amount: "10", want: "10.00"},
		{name: "OneFractionalDigit", amount: "2.5", want: "2.50"},
		{name: "TwoFractionalDigits", amount: "2.50", want: "2.50"},
		{name: "Zero", amount: "0", wantErr: ErrTooSmall},
		{name: "ZeroWithFraction", amount: "0.00", wantErr: ErrTooSmall},
		{name: "MinUnit", amount: "0.01", want: "0.01"},
		{name: "RoundsHalfUp", amount: "1.005", want: "1.01"},
		{name: "RoundsDown", amount: "1.004", want: "1.00"},
		{name: "RoundsBelowMinUnit", amount: "0.004", wantErr: ErrTooSmall},
		{name: "RoundsUpToMinUnit", amount: "0.005", want: "0.01"},
		{name: "Empty", amount: "", wantErr: ErrInvalidAmount},
		{name: "Negative", amount: "-1", wantErr: ErrInvalidAmount},
		{name: "ExplicitPlus", amount: "+1", wantErr: ErrInvalidAmount},
		{name: "LeadingZeros", amount: "01.50", wantErr: ErrInvalidAmount},
		{name: "TrailingDot", amount: "1.", wantErr: ErrInvalidAmount},
		{name: "Exponent", amount: "1e2", wantErr: ErrInvalidAmount},
		{name: "NotANumber", amount: "ten", wantErr: ErrInvalidAmount},
		{name: "Infinity", amount: "Inf", wantErr: ErrInvalidAmount},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tc.amount)

			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("Normalize(%q) returned error %v, want %v", tc.amount, err, tc.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tc.amount, err)
			}

			if got.StringFixed(2) != tc.want {
				t.Errorf("Normalize(%q) = %v, want %v", tc.amount, got.StringFixed(2), tc.want)
			}

			if got.Exponent() < -2 {
				t.Errorf("Normalize(%q) exponent = %v, want >= -2", tc.amount, got.Exponent())
			}
		})
	}
}
