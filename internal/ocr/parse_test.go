package ocr

import "testing"

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", text: "450", want: 450},
		{name: "thousands comma", text: "1,250", want: 1250},
		{name: "thousands dot", text: "1.250", want: 1250},
		{name: "K suffix with grouping", text: "17,929K", want: 17929000},
		{name: "lowercase k suffix", text: "2k", want: 2000},
		{name: "K suffix plain", text: "500K", want: 500000},
		{name: "decimal dot", text: "12.5", want: 12.5},
		{name: "decimal comma", text: "12,5", want: 12.5},
		{name: "US mixed separators", text: "1,234.56", want: 1234.56},
		{name: "EU mixed separators", text: "1.234,56", want: 1234.56},
		{name: "apostrophe grouping", text: "3'000", want: 3000},
		{name: "surrounding whitespace", text: "  450 \n", want: 450},
		{name: "ocr noise around digits", text: "x 1,250 y", want: 1250},
		{name: "nbsp grouping", text: "17 929", want: 17929},
		{name: "multi-group thousands", text: "17,929,000", want: 17929000},
		{name: "empty", text: "", wantErr: true},
		{name: "no digits", text: "..,,", wantErr: true},
		{name: "letters only", text: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumeric(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNumeric(%q) = %v, want error", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumeric(%q) error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumeric(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
