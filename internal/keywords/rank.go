// Package keywords ranks the topic words of a period. ArticleSource reads
// saved news articles and ranks their capitalised words by frequency;
// StaticSource serves a fixed list.
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// nounPattern matches capitalised words: German nouns, names and acronyms.
var nounPattern = regexp.MustCompile(`\p{Lu}[\p{L}\p{N}-]+`)

// stopWords are words that are capitalised at the start of a sentence
// without being nouns: articles, pronouns, prepositions and conjunctions.
var stopWords = func() map[string]bool {
	words := []string{
		"ab", "aber", "abseits", "abzüglich", "als", "am", "an", "anfangs", "angesichts", "anhand",
		"anlässlich", "ans", "anstatt", "anstelle", "auch", "auf", "aufgrund", "aufs", "aufseiten", "aus",
		"ausgangs", "ausschließlich", "ausweislich", "außer", "außerhalb", "behufs", "bei",
		"beiderseits", "beidseits", "beim", "betreffs", "bevor", "beziehungsweise", "bezüglich",
		"binnen", "bis", "contra", "da", "damit", "dank", "das", "dass", "dem", "den", "denn",
		"der", "des", "dessen", "desto", "desungeachtet", "die", "diesseits", "doch", "du",
		"durch", "eh", "ehe", "ein", "eine", "einem", "einen", "einer", "eines", "eingangs",
		"eingedenk", "einschließlich", "entgegen", "entlang", "entsprechend", "entweder", "er", "es",
		"exklusive", "falls", "fern", "fernab", "für", "fürs", "gegen", "gegenüber", "gelegentlich",
		"gemäß", "gen", "geschweige", "gleich", "halber", "hinsichtlich", "hinter", "hinterm",
		"hinters", "ich", "ihr", "im", "in", "indem", "indes", "indessen", "infolge", "inklusive",
		"inmitten", "innerhalb", "innert", "ins", "insofern", "insoweit", "ist", "je", "jedoch",
		"jenseits", "kontra", "kraft", "lang", "laut", "links", "längs", "längsseits", "mangels",
		"maßen", "minus", "mit", "mithilfe", "mitsamt", "mittels", "nach", "nachdem", "nebst",
		"nordwestlich", "nordöstlich", "nördlich", "ob", "oberhalb", "obgleich", "obschon", "obwohl",
		"obzwar", "oder", "ohne", "per", "plus", "pro", "rechts", "respektive", "samt", "seit",
		"seitens", "seitlich", "seitwärts", "sie", "so", "sobald", "sodass", "sofern", "solang",
		"solange", "sondern", "sooft", "soviel", "soweit", "sowie", "sowohl", "statt", "südlich",
		"südwestlich", "südöstlich", "trotz", "trotzdem", "um", "ums", "umso", "unbeschadet", "und",
		"unerachtet", "unfern", "ungeachtet", "unter", "unterhalb", "unterm", "untern", "unters",
		"unweit", "vermittels", "vermittelst", "vermöge", "via", "vom", "von", "vonseiten", "vor",
		"vorbehaltlich", "weder", "wegen", "weil", "wenn", "wennauch", "wenngleich", "wennschon",
		"wider", "wie", "wiewohl", "wir", "wo", "wobei", "wofern", "wohingegen", "während",
		"währenddem", "währenddessen", "zeit", "zu", "zufolge", "zugunsten", "zulieb", "zuliebe",
		"zum", "zumal", "zur", "zuungunsten", "zuwider", "zuzüglich", "zwecks", "zwischen",
		"östlich", "über", "überm", "übern", "übers",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}()

// IsStopWord reports whether a capitalised word is a function word.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// Extract returns the capitalised non-stop-words of a text in order.
func Extract(text string) []string {
	var out []string
	for _, m := range nounPattern.FindAllString(text, -1) {
		m = strings.Trim(m, "-")
		if len([]rune(m)) < 2 || IsStopWord(m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Rank returns the n most frequent nouns across the texts. Ties keep the
// order of first occurrence.
func Rank(texts []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		for _, w := range Extract(text) {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n >= 0 && n < len(order) {
		order = order[:n]
	}
	return order
}
