package config

import "git.home.luguber.info/inful/plenar/internal/foundation/normalization"

// BackoffMode enumerates supported backoff strategies for retries.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

var backoffNormalizer = normalization.NewNormalizer(map[string]BackoffMode{
	"fixed":       BackoffFixed,
	"constant":    BackoffFixed,
	"linear":      BackoffLinear,
	"exponential": BackoffExponential,
	"exp":         BackoffExponential,
}, BackoffExponential)

// NormalizeBackoff converts user input (case-insensitive) into a typed mode.
// Unknown input yields the exponential default.
func NormalizeBackoff(raw string) BackoffMode {
	return backoffNormalizer.Normalize(raw)
}
