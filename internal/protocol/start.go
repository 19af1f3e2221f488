package protocol

import (
	"regexp"
	"strings"
)

// StartCategory is the classification of a speech from its opening words.
type StartCategory string

const (
	StartRede               StartCategory = "rede"
	StartFragestunde        StartCategory = "fragestunde"
	StartFragestundeAntwort StartCategory = "fragestunde_antwort"
	StartZwischenfrage      StartCategory = "zwischenfrage"
	StartContinuation       StartCategory = "continuation"
	StartAbstimmung         StartCategory = "abstimmung"
	StartStatement          StartCategory = "statement"
	StartProtokoll          StartCategory = "protokoll"
	StartOrtskraefte        StartCategory = "ortskraefte"
	StartOther              StartCategory = "other"
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var (
	questionIndicators = compileAll(
		`(ich habe|habe ich)\s+(eine\s+)?(nach)?frage`,
		`meine\s+(nach)?frage`,
		`(eine\s+)?zusatzfrage`,
		`ich möchte.*fragen`,
		`darf ich.*fragen`,
		`ich frage\s+(sie|die|den|nach)`,
	)
	presidentAddress = compileAll(
		`(sehr geehrte[r]?\s+)?(frau|herr)\s+(vize)?präsident`,
		`(sehr geehrte[r]?\s+)?(frau|herr)\s+alterspräsident`,
		`(sehr geehrte[r]?|hochverehrte[r]?)\s+(vize)?präsident`,
		`(sehr geehrte[r]?|hochverehrte[r]?)\s+alterspräsident`,
	)
	praesidiumAddress        = regexp.MustCompile(`(sehr geehrtes?|verehrtes?|hochverehrtes?|wertes?)\s+präsidium`)
	bundestagspraesidentOpen = compileAll(
		`^(sehr geehrte[r]?\s+|liebe[r]?\s+)?(frau\s+)?bundestagspräsident`,
		`^liebe[r]?\s+kolleginnen`,
	)
	abstimmungOpen = compileAll(
		`^ich stimme dem`,
		`^dem (sogenannten\s+)?rentenpaket`,
		`^ich habe dem haushaltsgesetz`,
		`^die heutige abstimmung`,
		`^2016 wurde die möglichkeit`,
		`^als abgeordnete.*überzeugung`,
	)
	statementOpen = compileAll(
		`^eine echte migrationswende`,
		`^die frage der wehrpflicht`,
		`^sämtliche rentenreformpläne`,
		`^die einzige bedrohung`,
		`^wenn ich das gesundheitssystem`,
	)
	protokollOpen = compileAll(
		`^wir benötigen`,
		`^heute berät der bundestag`,
		`^der vorliegende gesetzentwurf`,
		`^die bedrohungslage`,
		`^wir reden über den haushalt`,
		`^ich will die europäische`,
	)
	zwischenfrageOpen = compileAll(
		`^(sehr geehrte[r]?\s+)?(frau|herr)\s+kolleg`,
		`^(sehr geehrte[r]?\s+)?(frau|herr)\s+minister`,
		`^(sehr geehrte[r]?\s+)?(frau|herr)\s+bachmann`,
		`^(sehr verehrte[r]?\s+)?(frau|herr)\s+kolleg`,
		`^(liebe[r]?\s+)(frau|herr)\s+kolleg`,
		`^(liebe[r]?\s+)boris`,
		`^frau kollegin`,
		`^frau von storch`,
		`^herr kollege`,
		`^weil frau`,
		`^ich mache schon`,
		`^ich muss ihnen`,
		`^ich nehme zur kenntnis`,
		`^also,`,
		`^ihrer frage liegt`,
		`^und zum antrag`,
		`^gut, dass sie`,
		`^erst mal finde ich`,
		`^ich bin, ehrlich gesagt`,
		`^wissen sie, ihre`,
		`^auch der kollege`,
		`^im moment (nicht|sind wir)`,
		`^die erklärung dafür`,
		`^herr kollege, ihnen`,
		`^es ist ein zitat`,
		`^ich würde gern zu ende`,
		`^jetzt müssen sie mir`,
		`^bei der letzten rede`,
		`^und diese müssen sich`,
		`^ich habe das in eine`,
		`^wenn mein vorredner`,
		`^herr hahn, wenn ich`,
		`^es ist schier zum verzweifeln`,
		`^gut, dann spreche ich`,
		`^das hat zwar jetzt`,
		`^genau, das heißt`,
		`^wie mein vorredner`,
		`^das war ein nein`,
		`^jungs, die ohren`,
		`^erstens\.`,
		`^man kann in dieser`,
		`^- nein, danke`,
		`^wie sie hier so`,
		`^ist ja ganz schön`,
	)

	continuationOpen  = regexp.MustCompile(`^-?\s*(ich komme zum schluss|der letzte satz|zum schluss)`)
	ministerQuestion  = regexp.MustCompile(`eine frage an (den|die|das)\s+[\p{L}\d_]*(minister|staatssekretär)`)
	formalOpening     = regexp.MustCompile(`^sehr geehrte[r]?\s+(frau|herr)\s+(vize)?präsident`)
	ministerAddress   = regexp.MustCompile(`(frau|herr)\s+(staats)?(minister|sekretär|bundesminister)`)
	writtenQuestion   = regexp.MustCompile(`^(wie hoch|wie wird|welche|hat die|was |in welchem|existiert)`)
	directAnswer      = regexp.MustCompile(`^(nein|ja)[.,!\s-]`)
	thanksOpening     = regexp.MustCompile(`^(vielen dank|herzlichen dank|danke)`)
	thanksToMinister  = regexp.MustCompile(`(frau|herr)\s+(minister|staatssekretär|bundesminister)`)
	thanksForQuestion = regexp.MustCompile(`für (die|ihre) frage`)
	ladiesGentlemenRe = regexp.MustCompile(`^meine damen und herren`)
)

// ClassifySpeechStart classifies a speech by its first 300 characters. The
// rules are ordered; the first one that applies decides.
func ClassifySpeechStart(text string) StartCategory {
	start := strings.ToLower(headRunes(text, 300))
	first100 := headRunes(start, 100)
	first200 := headRunes(start, 200)

	if matchAny(questionIndicators, start) {
		return StartFragestunde
	}
	if strings.Contains(first200, "zwischenfrage zulassen") {
		return StartZwischenfrage
	}
	if continuationOpen.MatchString(first100) || strings.Contains(first100, "ich unterbreche") {
		return StartContinuation
	}
	if ministerQuestion.MatchString(start) || strings.Contains(first200, "nachfrage") {
		return StartFragestunde
	}
	// A formal greeting of the chair wins over later minister mentions.
	if formalOpening.MatchString(first100) {
		return StartRede
	}
	if ministerAddress.MatchString(start) {
		return StartFragestunde
	}
	if matchAny(presidentAddress, start) || praesidiumAddress.MatchString(start) || matchAny(bundestagspraesidentOpen, first100) {
		return StartRede
	}
	switch {
	case matchAny(abstimmungOpen, first100):
		return StartAbstimmung
	case matchAny(statementOpen, first100):
		return StartStatement
	case matchAny(protokollOpen, first100):
		return StartProtokoll
	case strings.Contains(start, "deutschland hat in den vergangenen jahren") && strings.Contains(start, "ortskräfte"):
		return StartOrtskraefte
	}
	if writtenQuestion.MatchString(first100) &&
		(strings.Contains(start, "bundesregierung") || strings.Contains(start, "bundesministerium") || strings.Contains(start, "anhörung")) {
		return StartFragestunde
	}
	if directAnswer.MatchString(first100) || matchAny(zwischenfrageOpen, first100) {
		return StartZwischenfrage
	}
	if thanksOpening.MatchString(first100) {
		switch {
		case thanksToMinister.MatchString(first200):
			return StartFragestunde
		case thanksForQuestion.MatchString(first200):
			return StartFragestundeAntwort
		case strings.Contains(start, "präsident"):
			return StartRede
		default:
			return StartZwischenfrage
		}
	}
	if ladiesGentlemenRe.MatchString(first100) {
		return StartRede
	}
	return StartOther
}
