package normalizer

import (
	"strconv"
	"strings"
)

type numberKind int

const (
	kindNone numberKind = iota
	kindUnit
	kindTeen
	kindTens
	kindHundred
	kindScale
)

type numberWord struct {
	kind  numberKind
	value int
}

// numberWords là bảng từ vựng số cố định; "and" chỉ là từ nối
var numberWords = map[string]numberWord{
	"zero": {kindUnit, 0}, "one": {kindUnit, 1}, "two": {kindUnit, 2}, "three": {kindUnit, 3},
	"four": {kindUnit, 4}, "five": {kindUnit, 5}, "six": {kindUnit, 6}, "seven": {kindUnit, 7},
	"eight": {kindUnit, 8}, "nine": {kindUnit, 9},
	"ten": {kindTeen, 10}, "eleven": {kindTeen, 11}, "twelve": {kindTeen, 12}, "thirteen": {kindTeen, 13},
	"fourteen": {kindTeen, 14}, "fifteen": {kindTeen, 15}, "sixteen": {kindTeen, 16},
	"seventeen": {kindTeen, 17}, "eighteen": {kindTeen, 18}, "nineteen": {kindTeen, 19},
	"twenty": {kindTens, 20}, "thirty": {kindTens, 30}, "forty": {kindTens, 40}, "fifty": {kindTens, 50},
	"sixty": {kindTens, 60}, "seventy": {kindTens, 70}, "eighty": {kindTens, 80}, "ninety": {kindTens, 90},
	"hundred":  {kindHundred, 100},
	"thousand": {kindScale, 1000},
	"million":  {kindScale, 1000000},
}

const numberConnector = "and"

func isNumberToken(tok string) bool {
	if tok == numberConnector {
		return true
	}
	_, ok := numberWords[tok]
	return ok
}

// collapseNumberWords thay mỗi dãy từ số liên tiếp (tối đa) bằng chuỗi chữ số.
// Dãy không chuyển được thì giữ nguyên và bỏ qua, không thử lại dãy con.
func collapseNumberWords(s string) string {
	tokens := strings.Fields(s)
	out := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); {
		if !isNumberToken(tokens[i]) {
			out = append(out, tokens[i])
			i++
			continue
		}
		j := i
		for j < len(tokens) && isNumberToken(tokens[j]) {
			j++
		}
		if digits, ok := wordsToNumber(tokens[i:j]); ok {
			out = append(out, digits)
		} else {
			out = append(out, tokens[i:j]...)
		}
		i = j
	}

	return strings.Join(out, " ")
}

// wordsToNumber chuyển một dãy từ số sang số nguyên.
// "and" được bỏ qua; dãy chỉ có "and" hoặc sai thứ tự (vd "one two", "twenty thirty") là lỗi.
func wordsToNumber(run []string) (string, bool) {
	total, current := 0, 0
	last := kindNone
	lastScale := 0
	seen := false

	for _, tok := range run {
		if tok == numberConnector {
			continue
		}
		w := numberWords[tok]
		seen = true

		switch w.kind {
		case kindUnit:
			if last == kindUnit || last == kindTeen {
				return "", false
			}
			current += w.value
		case kindTeen, kindTens:
			if last == kindUnit || last == kindTeen || last == kindTens {
				return "", false
			}
			current += w.value
		case kindHundred:
			if (last != kindNone && last != kindUnit && last != kindTeen) || current >= 100 {
				return "", false
			}
			current = max(current, 1) * w.value
		case kindScale:
			if last == kindScale || (lastScale != 0 && w.value >= lastScale) {
				return "", false
			}
			total += max(current, 1) * w.value
			current = 0
			lastScale = w.value
		}
		last = w.kind
	}

	if !seen {
		return "", false
	}
	return strconv.Itoa(total + current), true
}
