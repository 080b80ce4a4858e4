package textnorm

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between", "both", "but", "by",
		"can", "could", "did", "do", "does", "doing", "down", "during",
		"each", "etc", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
		"i", "if", "in", "into", "is", "it", "its", "itself",
		"just", "me", "more", "most", "must", "my", "myself",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"per", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "upon", "us", "very", "via",
		"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why", "will", "with", "within", "would",
		"you", "your", "yours", "yourself", "yourselves",
		// job-posting boilerplate
		"ability", "able", "candidate", "candidates", "ideal", "including", "join", "looking", "plus", "preferred",
		"required", "requirements", "responsibilities", "role", "seeking", "strong", "year", "years",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether a folded word carries no matching signal.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
