package wrapped

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenderDetector_Sources(t *testing.T) {
	det, err := NewGenderDetector(WithCustomMappings(map[string]Gender{"Kim": GenderFemale}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		gender Gender
		source string
	}{
		{"Kim", GenderFemale, SourceManual},
		{"Andrea", GenderFemale, SourceOverride},
		{"Hans-Peter", GenderUnknown, SourceUnknown},
		{"Anna Lena", GenderFemale, SourceDictionary},
		{"Friedrich", GenderMale, SourceDictionary},
		{"Wiltrude", GenderUnknown, SourceUnknown},
		{"Gudrunhilde", GenderFemale, SourceHeuristic},
		{"Adelbrecht", GenderMale, SourceHeuristic},
		{"", GenderUnknown, SourceEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := det.Detect(tt.name)
			require.Equal(t, tt.gender, r.Gender)
			require.Equal(t, tt.source, r.Source)
		})
	}
}

func TestGenderDetector_UnknownLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), UnknownNamesFile)
	det, err := NewGenderDetector(WithUnknownLog(path))
	require.NoError(t, err)

	det.Detect("Xyzq")
	det.Detect("xyzq")
	require.Equal(t, []string{"xyzq"}, det.UnknownNames())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "xyzq\n", string(data))

	det.AddMapping("Xyzq", GenderMale)
	require.Equal(t, GenderMale, det.Detect("Xyzq").Gender)
	require.Empty(t, det.UnknownNames())
}

func TestLoadCustomMappings(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadCustomMappings(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	require.Empty(t, m)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"Sevim": "male"}`), 0o644))
	m, err = LoadCustomMappings(good)
	require.NoError(t, err)
	require.Equal(t, map[string]Gender{"sevim": GenderMale}, m)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"Alex": "robot"}`), 0o644))
	_, err = LoadCustomMappings(bad)
	require.Error(t, err)
}
