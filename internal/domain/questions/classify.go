package questions

import "strings"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultKnowledgeCategory = "General Knowledge"
)

// Difficulty estimates how hard a clue is from its board position. Final
// clues are always hard; unknown values count as medium.
func Difficulty(round Round, value int) string {
	if round == RoundFinal {
		return DifficultyHard
	}
	base := 200
	if round == RoundDouble {
		base = 400
	}
	if value <= 0 {
		return DifficultyMedium
	}
	switch row := value / base; {
	case row <= 2:
		return DifficultyEasy
	case row == 3:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

type knowledgeRule struct {
	label    string
	keywords []string
}

// Checked in order; the first rule with a matching keyword wins.
var knowledgeRules = []knowledgeRule{
	{"Science & Nature", []string{"science", "biology", "chemistry", "physics", "nature", "animal", "planet", "space", "medicine", "anatomy", "element", "weather", "birds", "plants"}},
	{"Geography", []string{"geography", "countries", "country", "capital", "cities", "city", "river", "lakes", "mountain", "island", "state", "world", "map"}},
	{"History", []string{"history", "historic", "war", "president", "king", "queen", "empire", "century", "ancient", "revolution", "royal"}},
	{"Literature", []string{"literature", "novel", "book", "author", "poet", "poetry", "shakespeare", "fiction", "literary"}},
	{"Arts & Entertainment", []string{"movie", "film", "tv", "television", "music", "song", "opera", "broadway", "art", "painter", "actor", "actress", "pop", "rock", "celebrit"}},
	{"Sports & Leisure", []string{"sport", "olympic", "baseball", "football", "basketball", "hockey", "golf", "tennis", "game", "hobbies"}},
	{"Language & Words", []string{"word", "language", "letter", "rhyme", "vocabulary", "phrase", "spelling", "anagram", "prefix", "suffix", "before & after", "quotation"}},
	{"Food & Drink", []string{"food", "drink", "cuisine", "cook", "wine", "beer", "dessert", "fruit", "vegetable"}},
	{"Religion & Mythology", []string{"bible", "myth", "god", "religion", "saint"}},
	{"Business & Economics", []string{"business", "company", "money", "econom", "brand", "finance"}},
}

// KnowledgeCategory maps a board category name to a broad subject area.
func KnowledgeCategory(category string) string {
	name := strings.ToLower(category)
	for _, rule := range knowledgeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.label
			}
		}
	}
	return DefaultKnowledgeCategory
}
