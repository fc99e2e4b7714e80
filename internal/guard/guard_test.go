package guard

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		price        float64
		balance      float64
		maxPrice     float64
		floor        float64
		wantContinue bool
		wantReason   string
	}{
		{
			name:  "in range",
			price: 100, balance: 1000, maxPrice: 150, floor: 200,
			wantContinue: true,
		},
		{
			name:  "price above ceiling",
			price: 160, balance: 1000, maxPrice: 150, floor: 200,
			wantContinue: false, wantReason: ReasonPriceTooHigh,
		},
		{
			name:  "price exactly at ceiling still passes",
			price: 150, balance: 1000, maxPrice: 150, floor: 200,
			wantContinue: true,
		},
		{
			name:  "projected balance below floor",
			price: 100, balance: 250, maxPrice: 150, floor: 200,
			wantContinue: false, wantReason: ReasonBalanceFloor,
		},
		{
			name:  "projected balance exactly at floor passes",
			price: 100, balance: 300, maxPrice: 150, floor: 200,
			wantContinue: true,
		},
		{
			name:  "price ceiling checked before balance floor",
			price: 500, balance: 100, maxPrice: 150, floor: 200,
			wantContinue: false, wantReason: ReasonPriceTooHigh,
		},
		{
			name:  "zero price always continues with healthy balance",
			price: 0, balance: 1000, maxPrice: 150, floor: 200,
			wantContinue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.price, tt.balance, tt.maxPrice, tt.floor)
			if got.Continue != tt.wantContinue {
				t.Errorf("Evaluate(%v, %v, %v, %v).Continue = %v, want %v",
					tt.price, tt.balance, tt.maxPrice, tt.floor, got.Continue, tt.wantContinue)
			}
			if !tt.wantContinue && got.Reason != tt.wantReason {
				t.Errorf("Evaluate reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if tt.wantContinue && got.Reason != "" {
				t.Errorf("Evaluate reason = %q, want empty on Continue", got.Reason)
			}
		})
	}
}
