package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Plenarprotokoll 21/12</title>
<style>p { color: red }</style>
<script>var x = "Präsidentin";</script></head>
<body>
<div class="kopf">Deutscher Bundestag</div>
<p>Präsidentin Julia Klöckner:</p>
<p>Die Sitzung ist   eröffnet.</p>


<p>Friedrich Merz (CDU/CSU):<br>Frau Präsidentin!</p>
</body></html>`

func TestImportHTML(t *testing.T) {
	doc, err := ImportHTML(strings.NewReader(samplePage))
	require.NoError(t, err)
	require.Equal(t, "Plenarprotokoll 21/12", doc.Title)
	require.NotContains(t, doc.Text, "color")
	require.NotContains(t, doc.Text, "var x")
	require.Contains(t, doc.Text, "Präsidentin Julia Klöckner:\nDie Sitzung ist eröffnet.")
	require.Contains(t, doc.Text, "Friedrich Merz (CDU/CSU):\nFrau Präsidentin!")
	require.NotContains(t, doc.Text, "\n\n\n")
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "5713-21-12.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte(samplePage), 0o600))
	txtPath := filepath.Join(dir, "42.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("Beginn: 9.00 Uhr"), 0o600))

	p, err := ImportFile(htmlPath)
	require.NoError(t, err)
	require.Equal(t, ID(5713), p.ID)
	require.Equal(t, "Plenarprotokoll 21/12", p.Title)
	require.Contains(t, p.FullText, "Friedrich Merz")

	p, err = ImportFile(txtPath)
	require.NoError(t, err)
	require.Equal(t, ID(42), p.ID)
	require.Equal(t, "Beginn: 9.00 Uhr", p.FullText)

	_, err = ImportFile(filepath.Join(dir, "protokoll.txt"))
	require.ErrorContains(t, err, "must start with the protocol id")
}
