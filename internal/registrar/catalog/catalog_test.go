package catalog_test

import (
	"testing"

	"github.com/aussiebroadwan/registrar/internal/registrar/catalog"
	"github.com/stretchr/testify/require"
)

// sampleTokens covers canonical ids, every alias and a few unknowns.
func sampleTokens() []string {
	tokens := []string{"", " ", "unknown", "JUNIOR-QIRAAT", "junior-", "qiraat ", "senior-kavitha"}
	for alias, id := range catalog.Aliases() {
		tokens = append(tokens, alias, id)
	}
	for _, e := range catalog.Defaults() {
		tokens = append(tokens, e.ProgramID)
	}
	return tokens
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"qiraat", "junior-qiraat"},
		{"qira'at", "junior-qiraat"},
		{"qirat", "junior-qiraat"},
		{"presentation", "senior-class-presentation"},
		{"essay-english", "senior-english-essay"},
		{"junior-drawing", "junior-drawing"},
		{"made-up", "made-up"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, catalog.Normalize(tt.in), tt.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	for _, tok := range sampleTokens() {
		once := catalog.Normalize(tok)
		require.Equal(t, once, catalog.Normalize(once), tok)
	}
}

func TestNormalizeAll_PreservesOrderAndLength(t *testing.T) {
	t.Parallel()

	in := []string{"drawing", "junior-bank", "x", "qiraat"}
	require.Equal(t,
		[]string{"junior-drawing", "junior-bank", "x", "junior-qiraat"},
		catalog.NormalizeAll(in),
	)
	require.Empty(t, catalog.NormalizeAll(nil))
}

func TestLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ഖിറാഅത്ത്", catalog.Label("qiraat"))
	require.Equal(t, "ചിത്രരചന", catalog.Label("junior-drawing"))
	require.Equal(t, "not-a-program", catalog.Label("not-a-program"))
	require.Equal(t, catalog.UnknownLabel, catalog.Label(""))

	for _, tok := range sampleTokens() {
		require.NotEmpty(t, catalog.Label(tok), tok)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	c := catalog.Classify([]string{"junior-drawing", "qiraat", "mystery", "senior-poster-making", "bank"})
	require.Equal(t, []string{"junior-qiraat", "junior-bank"}, c.Stage)
	require.Equal(t, []string{"junior-drawing", "senior-poster-making"}, c.NonStage)
	require.Equal(t, []string{"mystery"}, c.Invalid)
}

func TestClassify_Partition(t *testing.T) {
	t.Parallel()

	tokens := sampleTokens()
	c := catalog.Classify(tokens)
	require.Equal(t, len(tokens), len(c.Stage)+len(c.NonStage)+len(c.Invalid))

	for _, id := range catalog.NormalizeAll(tokens) {
		buckets := 0
		if catalog.IsStage(id) {
			buckets++
		}
		if catalog.IsNonStage(id) {
			buckets++
		}
		require.LessOrEqual(t, buckets, 1, id)
		if buckets == 0 {
			require.Contains(t, c.Invalid, id)
		}
	}
}

func TestValidIDsForCategory(t *testing.T) {
	t.Parallel()

	j := catalog.ValidIDsForCategory("junior")
	require.Len(t, j, 11)
	require.Contains(t, j, "junior-qiraat")
	require.NotContains(t, j, "senior-qiraat")

	s := catalog.ValidIDsForCategory("senior")
	require.Len(t, s, 11)
	require.Contains(t, s, "senior-english-essay")

	require.Empty(t, catalog.ValidIDsForCategory("adult"))
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, catalog.TypeStage, catalog.TypeOf("bank"))
	require.Equal(t, catalog.TypeNonStage, catalog.TypeOf("calligraphy"))
	require.Equal(t, "", catalog.TypeOf("nope"))
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	entries := catalog.Defaults()
	require.Len(t, entries, 22)

	require.Equal(t, catalog.Entry{
		ProgramID: "junior-qiraat", Name: "ഖിറാഅത്ത്", Category: "junior", Type: "stage", DisplayOrder: 1,
	}, entries[0])
	require.Equal(t, "junior-dictation", entries[10].ProgramID)
	require.Equal(t, 11, entries[10].DisplayOrder)
	require.Equal(t, "senior-qiraat", entries[11].ProgramID)
	require.Equal(t, 1, entries[11].DisplayOrder)

	seen := make(map[string]bool)
	for _, e := range entries {
		require.False(t, seen[e.ProgramID], "duplicate %s", e.ProgramID)
		seen[e.ProgramID] = true
		require.Equal(t, e.Type, catalog.TypeOf(e.ProgramID))
		require.NotEmpty(t, e.Name)
	}
}

func TestAliasesAreCopies(t *testing.T) {
	t.Parallel()

	a := catalog.Aliases()
	require.Len(t, a, 25)
	a["qiraat"] = "tampered"
	require.Equal(t, "junior-qiraat", catalog.Normalize("qiraat"))
}
