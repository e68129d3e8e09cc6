package genre

import "github.com/samducker/bookgenre/internal/config"

// RuleTables holds the keyword vocabularies for each tier of the cascade.
// Tables are built once at startup and never mutated afterwards.
type RuleTables struct {
	FormatNonFiction     []string
	FormatFiction        []string
	NonFictionSubjects   []string
	InstructionalPhrases []string
	FictionThemes        []string
}

func DefaultRules() RuleTables {
	return RuleTables{
		FormatNonFiction: []string{
			"guide", "manual", "handbook", "textbook", "cookbook", "workbook",
			"encyclopedia", "dictionary", "reference", "companion",
		},
		FormatFiction: []string{
			"novel", "fiction", "stories", "tales",
		},
		NonFictionSubjects: []string{
			"history", "biography", "science", "math", "physics", "chemistry",
			"geography", "psychology", "philosophy", "economics", "business",
			"self-help", "self help", "fitness", "health", "diet", "nutrition",
			"exercise", "workout", "meditation", "mindfulness", "spirituality",
			"religion", "politics", "sociology", "anthropology", "archaeology",
			"medicine", "engineering", "technology", "programming", "computer",
			"investing", "finance", "money", "career", "leadership", "management",
			"marketing", "sales", "entrepreneurship", "kettlebell", "yoga", "pilates",
		},
		InstructionalPhrases: []string{
			"how to", "learn to", "guide to", "introduction to", "basics of",
			"principles of", "fundamentals of", "essentials of", "understanding",
			"mastering", "complete", "comprehensive", "step by step", "strategies",
			"techniques", "methods", "practices", "lessons", "skills", "succeed in",
			"success in", "master", "improve your", "boost your", "enhance your",
			"transform your", "optimize your", "maximize your", "for beginners",
			"for dummies", "made easy", "101", "basics", "essentials",
		},
		FictionThemes: []string{
			"dragon", "sword", "magic", "wizard", "witch", "fairy", "elf",
			"fantasy", "adventure", "mystery", "thriller", "romance", "horror",
			"quest", "journey", "chronicles", "saga", "legend", "myth", "tale",
			"story", "stories", "enchanted", "magical", "supernatural", "dystopian",
			"kingdom", "prince", "princess", "warrior", "hero", "heroine",
		},
	}
}

// RulesFromConfig starts from the defaults and swaps in any tier the config
// overrides wholesale.
func RulesFromConfig(rc config.RulesConfig) RuleTables {
	rules := DefaultRules()
	if len(rc.FormatNonFiction) > 0 {
		rules.FormatNonFiction = rc.FormatNonFiction
	}
	if len(rc.FormatFiction) > 0 {
		rules.FormatFiction = rc.FormatFiction
	}
	if len(rc.NonFictionSubjects) > 0 {
		rules.NonFictionSubjects = rc.NonFictionSubjects
	}
	if len(rc.InstructionalPhrases) > 0 {
		rules.InstructionalPhrases = rc.InstructionalPhrases
	}
	if len(rc.FictionThemes) > 0 {
		rules.FictionThemes = rc.FictionThemes
	}
	return rules
}
