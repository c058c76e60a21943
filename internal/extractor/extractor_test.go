package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractBankAccounts(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "ten digit run",
			text: "Transfer to 1234567890 or account will be deleted",
			want: []string{"1234567890"},
		},
		{
			name: "marked account number",
			text: "Send money to A/C: 987654321012",
			want: []string{"987654321012"},
		},
		{
			name: "run glued to marker",
			text: "use acct9876543210 today",
			want: []string{"9876543210"},
		},
		{
			name: "embedded in longer run",
			text: "ref 12345678901234567890123 is not an account",
			want: []string{},
		},
		{
			name: "too short",
			text: "call 12345678",
			want: []string{},
		},
		{
			name: "all same digit rejected",
			text: "account 0000000000",
			want: []string{},
		},
		{
			name: "duplicates collapsed",
			text: "1234567890 again 1234567890",
			want: []string{"1234567890"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			require.Equal(t, tt.want, got.BankAccounts)
		})
	}
}

func TestExtractUPIIDs(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "known provider",
			text: "Send payment to scammer@paytm",
			want: []string{"scammer@paytm"},
		},
		{
			name: "trailing punctuation stripped",
			text: "Pay me at fraud.ster@ybl, right now",
			want: []string{"fraud.ster@ybl"},
		},
		{
			name: "ordinary email not extracted",
			text: "contact me at john.doe@gmail.com",
			want: []string{},
		},
		{
			name: "provider with domain suffix not extracted",
			text: "write to support@paytm.com please",
			want: []string{},
		},
		{
			name: "unknown provider",
			text: "pay someone@randombank now",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			require.Equal(t, tt.want, got.UPIIDs)
		})
	}
}

func TestExtractPhishingURLs(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "scheme url with suspicious host",
			text: "Click here to verify: http://fake-bank.com",
			want: []string{"http://fake-bank.com"},
		},
		{
			name: "bare host normalized",
			text: "go to secure-login.example.com now",
			want: []string{"http://secure-login.example.com"},
		},
		{
			name: "www host with keyword path",
			text: "open www.example.com/kyc-update today",
			want: []string{"http://www.example.com/kyc-update"},
		},
		{
			name: "benign url ignored",
			text: "see https://weather.example.org for the forecast",
			want: []string{},
		},
		{
			name: "typosquatted brand",
			text: "visit paytm-rewards.xyz immediately",
			want: []string{"http://paytm-rewards.xyz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			require.Equal(t, tt.want, got.PhishingURLs)
		})
	}
}

func TestExtractNeverFailsOnGarbage(t *testing.T) {
	e := New()

	for _, text := range []string{
		"",
		"@@@@////::::",
		"\x00\xff\xfe",
		"๛๛๛ ฿฿฿ 💸💸💸",
	} {
		got := e.Extract(text)
		require.NotNil(t, got.BankAccounts)
		require.NotNil(t, got.UPIIDs)
		require.NotNil(t, got.PhishingURLs)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := New()
	text := "Transfer to 1234567890, UPI scammer@paytm, link http://verify-bank.com"

	first := e.Extract(text)
	second := e.Extract(text)

	require.Equal(t, first, second)
	require.Len(t, first.BankAccounts, 1)
	require.Len(t, first.UPIIDs, 1)
	require.Len(t, first.PhishingURLs, 1)
}
