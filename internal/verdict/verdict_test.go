package verdict

import "testing"

func TestClassify_AllCategories(t *testing.T) {
	tests := []struct {
		verdict string
		class   Class
	}{
		{"Strong Buy", ClassPositive},
		{"BUY", ClassPositive},
		{"bullish", ClassPositive},
		{"Positive Trend", ClassPositive},
		{"hold", ClassNeutral},
		{"Neutral", ClassNeutral},
		{" stable ", ClassNeutral},
		{"Sell", ClassNegative},
		{"STRONG SELL", ClassNegative},
		{"Bearish", ClassNegative},
		{"negative trend", ClassNegative},
		{"Volatile", ClassNegative},
		{"", ClassUnknown},
		{"moon", ClassUnknown},
		{"buy-ish", ClassUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.verdict); got != tt.class {
			t.Errorf("verdict %q: expected %q, got %q", tt.verdict, tt.class, got)
		}
	}
}

func TestStyleFor_FallsBackToUnknown(t *testing.T) {
	if StyleFor(Class("bogus")) != StyleFor(ClassUnknown) {
		t.Error("unrecognised class should use the unknown palette")
	}
	if StyleFor(ClassPositive) == StyleFor(ClassNegative) {
		t.Error("positive and negative palettes should differ")
	}
}
