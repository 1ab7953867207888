package engine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/trilhasedu/interest-engine/internal/artifact"
)

// wholeWordBonus is the multiplier for a keyword matched as a whole word
// rather than a bare substring.
const wholeWordBonus = 1.5

var (
	stripRe    = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	collapseRe = regexp.MustCompile(`\s+`)
)

// expansion rewrites one whole-word abbreviation to its canonical form.
type expansion struct {
	re   *regexp.Regexp
	repl string
}

// Abbreviation and slang expansions applied before feature extraction.
// The table and its order mirror what the model was trained against;
// changing either invalidates the artifact.
var abbreviationExpansions = []expansion{
	{regexp.MustCompile(`\btb\b`), "também"},
	{regexp.MustCompile(`\btbm\b`), "também"},
	{regexp.MustCompile(`\btmb\b`), "também"},
	{regexp.MustCompile(`\bpq\b`), "porque"},
	{regexp.MustCompile(`\bpqp\b`), "porque"},
	{regexp.MustCompile(`\bpk\b`), "porque"},
	{regexp.MustCompile(`\bvc\b`), "você"},
	{regexp.MustCompile(`\bvcs\b`), "vocês"},
	{regexp.MustCompile(`\bcê\b`), "você"},
	{regexp.MustCompile(`\bmt\b`), "muito"},
	{regexp.MustCompile(`\bmto\b`), "muito"},
	{regexp.MustCompile(`\bmts\b`), "muitos"},
	{regexp.MustCompile(`\bq\b`), "que"},
	{regexp.MustCompile(`\bqq\b`), "qualquer"},
	{regexp.MustCompile(`\bqqr\b`), "qualquer"},
	{regexp.MustCompile(`\bn\b`), "não"},
	{regexp.MustCompile(`\bñ\b`), "não"},
	{regexp.MustCompile(`\bnn\b`), "não não"},
	{regexp.MustCompile(`\bta\b`), "está"},
	{regexp.MustCompile(`\btá\b`), "está"},
	{regexp.MustCompile(`\btão\b`), "estão"},
	{regexp.MustCompile(`\bto\b`), "estou"},
	{regexp.MustCompile(`\btô\b`), "estou"},
	{regexp.MustCompile(`\btou\b`), "estou"},
	{regexp.MustCompile(`\btop\b`), "ótimo"},
	{regexp.MustCompile(`\bshow\b`), "ótimo"},
	{regexp.MustCompile(`\bmassa\b`), "legal"},
	{regexp.MustCompile(`\bdaora\b`), "legal"},
	{regexp.MustCompile(`\bmaneiro\b`), "legal"},
	{regexp.MustCompile(`\birado\b`), "legal"},
	{regexp.MustCompile(`\bsuave\b`), "tranquilo"},
	{regexp.MustCompile(`\bdeboa\b`), "tranquilo"},
	{regexp.MustCompile(`\bblz\b`), "beleza"},
	{regexp.MustCompile(`\bfmz\b`), "firmeza"},
	{regexp.MustCompile(`\btmj\b`), "estamos juntos"},
	{regexp.MustCompile(`\bvlw\b`), "valeu"},
	{regexp.MustCompile(`\bflw\b`), "falou"},
	{regexp.MustCompile(`\bpdp\b`), "pode pá"},
	{regexp.MustCompile(`\bpprt\b`), "papo reto"},
	{regexp.MustCompile(`\bplmdds\b`), "pelo amor de deus"},
	{regexp.MustCompile(`\bpdc\b`), "pode crer"},
	{regexp.MustCompile(`\btlgd\b`), "tá ligado"},
	{regexp.MustCompile(`\bmlk\b`), "moleque"},
	{regexp.MustCompile(`\bctz\b`), "certeza"},
	{regexp.MustCompile(`\bctza\b`), "certeza"},
}

// TextFeatureExtractor normalizes free text and builds the manual block
// of the classifier feature vector. It is pure given the artifact.
type TextFeatureExtractor struct {
	art *artifact.Artifact
}

// NewTextFeatureExtractor creates an extractor bound to one artifact.
func NewTextFeatureExtractor(art *artifact.Artifact) *TextFeatureExtractor {
	return &TextFeatureExtractor{art: art}
}

// Preprocess lower-cases, expands known abbreviations on word
// boundaries, strips everything except letters, digits, spaces, and
// hyphens, and collapses whitespace. The exact sequence matches the
// training pipeline.
func (e *TextFeatureExtractor) Preprocess(text string) string {
	text = strings.ToLower(text)
	for _, exp := range abbreviationExpansions {
		text = exp.re.ReplaceAllString(text, exp.repl)
	}
	text = stripRe.ReplaceAllString(text, " ")
	text = collapseRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// BuildFeatureVector computes the manual feature block for processed
// text: per-area keyword 4-tuples, the 8 global linguistic features, and
// per-area pattern counts, all in the artifact's fixed area order. The
// caller prepends the embedding; the concatenation order is what the
// scaler and classifier were fitted on.
func (e *TextFeatureExtractor) BuildFeatureVector(processed string) []float64 {
	areaOrder := e.art.AreaOrder()
	words := strings.Fields(processed)
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}
	totalWords := len(words)

	features := make([]float64, 0, e.art.ManualFeatureCount())

	// Keyword features. Terms are visited in the artifact's sorted order
	// so float accumulation is reproducible bit for bit.
	scores := make(map[string]float64)
	matches := make(map[string]int)
	for _, term := range e.art.Terms() {
		if !strings.Contains(processed, term) {
			continue
		}
		_, wholeWord := wordSet[term]
		for area, weight := range e.art.TermWeights(term) {
			if wholeWord {
				scores[area] += weight * wholeWordBonus
				matches[area]++
			} else {
				scores[area] += weight
			}
		}
	}
	for _, area := range areaOrder {
		score := scores[area]
		matched := float64(matches[area])
		vocabSize := e.art.VocabSize(area)
		features = append(features,
			score,
			matched,
			score/float64(maxInt(vocabSize, 1)),
			matched/float64(maxInt(totalWords, 1)),
		)
	}

	// Global linguistic features, fixed order.
	features = append(features, e.linguisticFeatures(processed, words, wordSet)...)

	// Per-area pattern counts.
	for _, area := range areaOrder {
		var count float64
		for _, re := range e.art.Patterns(area) {
			if re.MatchString(processed) {
				count++
			}
		}
		features = append(features, count)
	}

	return features
}

func (e *TextFeatureExtractor) linguisticFeatures(processed string, words []string, wordSet map[string]struct{}) []float64 {
	totalWords := len(words)
	charCount := utf8.RuneCountInString(processed)

	var longWords, keywordWords int
	for _, w := range words {
		if utf8.RuneCountInString(w) > 6 {
			longWords++
		}
		if e.art.HasTerm(w) {
			keywordWords++
		}
	}

	var upper int
	for _, r := range processed {
		if unicode.IsUpper(r) {
			upper++
		}
	}

	return []float64{
		float64(totalWords),
		float64(charCount),
		float64(longWords),
		float64(strings.Count(processed, "!") + strings.Count(processed, "?")),
		float64(strings.Count(processed, ",")),
		float64(len(wordSet)) / float64(maxInt(totalWords, 1)),
		float64(upper) / float64(maxInt(charCount, 1)),
		float64(keywordWords) / float64(maxInt(totalWords, 1)),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
