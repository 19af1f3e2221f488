// Package wrapped turns analysis results and parsed protocols into the
// "Bundestag Wrapped" view of a legislative period: party statistics,
// interjection drama, speaker profiles with gender attribution, rankings and
// the per-speaker pages.
package wrapped
