package lexicon

// Group names one family of categories, matching a top-level key of the
// embedded lexicon files.
type Group string

const (
	GroupAdjectives     Group = "adjectives"
	GroupVerbs          Group = "verbs"
	GroupModal          Group = "modal"
	GroupTemporal       Group = "temporal"
	GroupIntensity      Group = "intensity"
	GroupPronoun        Group = "pronoun"
	GroupDiscriminatory Group = "discriminatory"
	GroupTopics         Group = "topics"
)

// Category is a word class inside a group.
type Category string

// Adjective categories.
const (
	Affirmative Category = "affirmative"
	Critical    Category = "critical"
	Aggressive  Category = "aggressive"
	Labeling    Category = "labeling"
)

// Verb categories.
const (
	Solution        Category = "solution"
	Problem         Category = "problem"
	Collaborative   Category = "collaborative"
	Confrontational Category = "confrontational"
	Demanding       Category = "demanding"
	Acknowledging   Category = "acknowledging"
)

// Extended categories.
const (
	Obligation    Category = "obligation"
	Possibility   Category = "possibility"
	Intention     Category = "intention"
	Retrospective Category = "retrospective"
	Prospective   Category = "prospective"
	Intensifier   Category = "intensifier"
	Moderator     Category = "moderator"
	Inclusive     Category = "inclusive"
	Exclusive     Category = "exclusive"
	Xenophobic    Category = "xenophobic"
	Homophobic    Category = "homophobic"
	Islamophobic  Category = "islamophobic"
	DogWhistle    Category = "dog_whistle"
)

// Topic categories.
const (
	Migration  Category = "migration"
	Klima      Category = "klima"
	Wirtschaft Category = "wirtschaft"
	Soziales   Category = "soziales"
	Sicherheit Category = "sicherheit"
	Gesundheit Category = "gesundheit"
	Europa     Category = "europa"
	Digital    Category = "digital"
	Bildung    Category = "bildung"
	Finanzen   Category = "finanzen"
	Justiz     Category = "justiz"
	Arbeit     Category = "arbeit"
	Mobilitaet Category = "mobilitaet"
)

// ExtendedGroups lists the groups consulted by Extended, in lookup order.
var ExtendedGroups = []Group{GroupModal, GroupTemporal, GroupIntensity, GroupPronoun, GroupDiscriminatory}

// groupCategories is the closed set of categories per group, in display order.
var groupCategories = map[Group][]Category{
	GroupAdjectives:     {Affirmative, Critical, Aggressive, Labeling},
	GroupVerbs:          {Solution, Problem, Collaborative, Confrontational, Demanding, Acknowledging},
	GroupModal:          {Obligation, Possibility, Intention},
	GroupTemporal:       {Retrospective, Prospective},
	GroupIntensity:      {Intensifier, Moderator},
	GroupPronoun:        {Inclusive, Exclusive},
	GroupDiscriminatory: {Xenophobic, Homophobic, Islamophobic, DogWhistle},
	GroupTopics: {
		Migration, Klima, Wirtschaft, Soziales, Sicherheit, Gesundheit, Europa,
		Digital, Bildung, Finanzen, Justiz, Arbeit, Mobilitaet,
	},
}

// Categories returns the categories of a group in display order.
func Categories(g Group) []Category {
	return append([]Category(nil), groupCategories[g]...)
}

// GroupOf returns the group a category belongs to.
func GroupOf(c Category) (Group, bool) {
	for g, cats := range groupCategories {
		for _, cc := range cats {
			if cc == c {
				return g, true
			}
		}
	}
	return "", false
}

// Info describes a category for display.
type Info struct {
	Category    Category `yaml:"category" json:"category"`
	NameDE      string   `yaml:"name_de" json:"name_de"`
	Description string   `yaml:"description" json:"description"`
	Emoji       string   `yaml:"emoji" json:"emoji"`
	Color       string   `yaml:"color" json:"color"`
}

// Tag is a category hit together with its group.
type Tag struct {
	Group    Group    `json:"group"`
	Category Category `json:"category"`
}

// Weighted is a category label with a contribution weight in (0, 1].
type Weighted struct {
	Category Category `yaml:"category" json:"category"`
	Weight   float64  `yaml:"weight" json:"weight"`
}
