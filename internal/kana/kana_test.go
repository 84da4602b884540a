package kana

import (
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestToHiragana(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ramen", "ラーメン", "らーめん"},
		{"cafe", "カフェ", "かふぇ"},
		{"italian", "イタリアン", "いたりあん"},
		{"already hiragana", "らーめん", "らーめん"},
		{"kanji untouched", "奈良駅", "奈良駅"},
		{"mixed scripts", "奈良ラーメン店", "奈良らーめん店"},
		{"ascii untouched", "Cafe Nara", "Cafe Nara"},
		{"range start", "ァ", "ぁ"},
		{"range end", "ン", "ん"},
		{"vu outside range", "ヴ", "ヴ"},
		{"small ke outside range", "ヶ", "ヶ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ToHiragana(tt.input); got != tt.want {
				t.Errorf("ToHiragana(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToHiragana_Idempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{"ラーメン", "カフェ・ド・ナラ", "焼き鳥", "ナラ-eki", ""}
	for _, in := range inputs {
		once := ToHiragana(in)
		if twice := ToHiragana(once); twice != once {
			t.Errorf("ToHiragana not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestToHiragana_LongInput(t *testing.T) {
	t.Parallel()
	// Longer than the transform package's internal buffer.
	in := strings.Repeat("ラーメン", 2000)
	want := strings.Repeat("らーめん", 2000)
	if got := ToHiragana(in); got != want {
		t.Error("Long input was not fully converted")
	}
}

func TestTransformer_Chains(t *testing.T) {
	t.Parallel()
	got, _, err := transform.String(transform.Chain(Transformer()), "ソバ")
	if err != nil {
		t.Fatalf("transform.String: %v", err)
	}
	if got != "そば" {
		t.Errorf("got %q, want %q", got, "そば")
	}
}

func TestContains(t *testing.T) {
	t.Parallel()
	tests := []struct {
		field, query string
		want         bool
	}{
		{"ラーメン, 中華", "らーめん", true},
		{"らーめん", "ラーメン", true},
		{"カフェ", "フェ", true},
		{"Cafe", "cafe", false}, // case-sensitive outside kana
		{"イタリアン", "ラーメン", false},
		{"anything", "", true},
	}

	for _, tt := range tests {
		if got := Contains(tt.field, tt.query); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.field, tt.query, got, tt.want)
		}
	}
}
