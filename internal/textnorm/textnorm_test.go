package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   \t\n ", want: ""},
		{name: "trim", input: "  මම ගෙදර යනවා.  ", want: "මම ගෙදර යනවා."},
		{name: "collapse runs", input: "mama   gedhara\t\tyanavaa", want: "mama gedhara yanavaa"},
		{name: "newlines", input: "මම ගෙදර යනවා.\nඔයා එනවද?\nඅපි", want: "මම ගෙදර යනවා. ඔයා එනවද? අපි"},
		{name: "crlf", input: "a\r\nb", want: "a b"},
		{name: "non-breaking space", input: "a  b", want: "a b"},
		{name: "byte order mark", input: "\uFEFFමම\uFEFF ගෙදර", want: "මම ගෙදර"},
		{name: "ideographic space", input: "a\u3000b", want: "a b"},
		{name: "next line is not space", input: "a\u0085b", want: "a\u0085b"},
		{name: "zero-width joiner kept", input: " ප්\u200Dර ", want: "ප්\u200Dර"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		" a  b ",
		"දිට්වා සුළු කුණාටුව\nසමඟ ඇති වූ",
		"\t\tRs. 2500ක   ණයක් ගත්තා.\n",
		"ප්‍රමාණය", // contains a zero-width joiner
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
		stripped := StripPunctuation(s)
		assert.Equal(t, stripped, StripPunctuation(stripped), "input %q", s)
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "ඒක?!", want: "ඒක"},
		{input: "ඔයාට කොහොමද?", want: "ඔයාට කොහොමද"},
		{input: "7.30 AM වෙලාවට එන්න.", want: "730 AM වෙලාවට එන්න"},
		{input: "a，b、c。d,e", want: "abcde"},
		{input: "  ?  ", want: ""},
		{input: "no marks here", want: "no marks here"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := StripPunctuation(tt.input)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.ContainsAny(got, punctuation))
		})
	}
}

func TestHasSinhala(t *testing.T) {
	assert.True(t, HasSinhala("ඔයා"))
	assert.True(t, HasSinhala("OTP එක"))
	assert.False(t, HasSinhala("Please send the document now."))
	assert.False(t, HasSinhala(""))
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{"", " ", "mama gedhara", "ඔයාට  කොහොමද?\n", "a b", "??.."} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", s, once, twice)
		}
		if strings.HasPrefix(once, " ") || strings.HasSuffix(once, " ") {
			t.Fatalf("Normalize(%q) = %q has surrounding space", s, once)
		}
		stripped := StripPunctuation(s)
		if strings.ContainsAny(stripped, punctuation) {
			t.Fatalf("StripPunctuation(%q) = %q still has punctuation", s, stripped)
		}
	})
}
