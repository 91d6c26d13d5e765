package icons

import "testing"

func TestStatistic(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"users", "users"},
		{"Members", "users"},
		{" bible ", "book-open"},
		{"", DefaultStatisticIcon},
		{"rocket", DefaultStatisticIcon},
	}
	for _, tt := range tests {
		if got := Statistic(tt.key); got != tt.want {
			t.Errorf("Statistic(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestPaymentKind(t *testing.T) {
	tests := []struct {
		kind string
		want Decoration
	}{
		{"upi", Decoration{Icon: "smartphone", Color: "green"}},
		{"BANK", Decoration{Icon: "building-bank", Color: "blue"}},
		{"crypto", Decoration{Icon: "bitcoin", Color: "amber"}},
		{"cheque", DefaultPayment},
		{"", DefaultPayment},
	}
	for _, tt := range tests {
		if got := PaymentKind(tt.kind); got != tt.want {
			t.Errorf("PaymentKind(%q) = %+v, want %+v", tt.kind, got, tt.want)
		}
	}
}
