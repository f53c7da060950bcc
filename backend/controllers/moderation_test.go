package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testBannedWords = map[string][]string{
	"ru": {"тупой", "идиот"},
	"en": {"stupid", "idiot"},
}

func TestContainsBannedWord(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		flagged bool
	}{
		{"clean russian", "Очень интересная статья", false},
		{"banned russian", "ты тупой", true},
		{"banned uppercase", "ТЫ ТУПОЙ", true},
		{"prefix does not match", "тупо интересно", false},
		{"substring inside longer word", "он тупойший из всех", true},
		{"clean english", "great article about Kyivan Rus", false},
		{"banned english", "what a stupid take", true},
		{"banned english mixed case", "StUpId", true},
		{"empty text", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.flagged, containsBannedWord(tc.text, testBannedWords))
		})
	}
}

func TestContainsBannedWordIgnoresEmptyTerms(t *testing.T) {
	words := map[string][]string{"ru": {""}}
	assert.False(t, containsBannedWord("любой текст", words))
}
