package amount

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{name: "compound units", input: "1만5천", want: 15000, wantOK: true},
		{name: "decimal with unit", input: "2.5만", want: 25000, wantOK: true},
		{name: "plain digits", input: "15000", want: 15000, wantOK: true},
		{name: "comma and point suffix", input: "15,000P", want: 15000, wantOK: true},
		{name: "won suffix", input: "30,000원", want: 30000, wantOK: true},
		{name: "spaces between units", input: "1만 5천 원", want: 15000, wantOK: true},
		{name: "hundred million", input: "1억", want: 100000000, wantOK: true},
		{name: "compound ten million", input: "5천만", want: 50000000, wantOK: true},
		{name: "comma before unit", input: "1,500만", want: 15000000, wantOK: true},
		{name: "rounding", input: "1.6", want: 2, wantOK: true},
		{name: "no digits", input: "포인트", want: 0, wantOK: false},
		{name: "empty", input: "   ", want: 0, wantOK: false},
		{name: "lone decimal point", input: ".", want: 0, wantOK: false},
		{name: "digits beyond int64", input: "99999999999999999999999", want: 0, wantOK: false},
		{name: "units beyond int64", input: "999999999999억", want: 0, wantOK: false},
		{name: "largest exact amount", input: "9,007,199,254,740,992", want: 9007199254740992, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int64
		wantOK bool
	}{
		{name: "tilde with unit on right", input: "1~2만", want: 20000, wantOK: true},
		{name: "dash with suffix", input: "5,000-10,000P", want: 10000, wantOK: true},
		{name: "larger side first", input: "3만~1만", want: 30000, wantOK: true},
		{name: "full width tilde", input: "1만원～2만원", want: 20000, wantOK: true},
		{name: "spaced separator", input: "5,000 ~ 7,000원", want: 7000, wantOK: true},
		{name: "no range", input: "1만5천", want: 15000, wantOK: true},
		{name: "leading dash is not a range", input: "-5000", want: 5000, wantOK: true},
		{name: "nothing numeric", input: "협의~추후", want: 0, wantOK: false},
		{name: "huge side is ignored", input: "1만~999999999999999999999", want: 10000, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRange(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseRange(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseRange(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
