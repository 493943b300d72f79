package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/main.rs b/src/main.rs
index abc123..def456 100644
--- a/src/main.rs
+++ b/src/main.rs
@@ -1,5 +1,6 @@ fn main()
 fn main() {
     println!("Hello");
+    println!("World");
 }
diff --git a/src/lib.rs b/src/lib.rs
index 111222..333444 100644
--- a/src/lib.rs
+++ b/src/lib.rs
@@ -10,7 +10,6 @@ impl Foo {
 impl Foo {
     fn bar(&self) {
-        // old comment
         self.do_thing();
     }
 }
`

func TestParseSimpleDiff(t *testing.T) {
	diff, err := ParseUnifiedDiff(sampleDiff, "abc", "def")
	require.NoError(t, err)

	require.Len(t, diff.Files, 2)
	assert.Equal(t, 1, diff.TotalAdditions)
	assert.Equal(t, 1, diff.TotalDeletions)

	file1 := diff.Files[0]
	assert.Equal(t, "src/main.rs", file1.Path)
	assert.Equal(t, StatusModified, file1.Status)
	assert.Equal(t, 1, file1.Additions)
	assert.Equal(t, 0, file1.Deletions)
	require.Len(t, file1.Hunks, 1)

	hunk := file1.Hunks[0]
	assert.Equal(t, 1, hunk.OldStart)
	assert.Equal(t, 1, hunk.NewStart)
	assert.Contains(t, hunk.Header, "fn main()")

	file2 := diff.Files[1]
	assert.Equal(t, "src/lib.rs", file2.Path)
	assert.Equal(t, 0, file2.Additions)
	assert.Equal(t, 1, file2.Deletions)
}

func TestParseLineNumbers(t *testing.T) {
	diff, err := ParseUnifiedDiff(sampleDiff, "base", "head")
	require.NoError(t, err)
	hunk := diff.Files[0].Hunks[0]

	// First line is context: "fn main() {"
	assert.Equal(t, LineContext, hunk.Lines[0].Kind)
	require.NotNil(t, hunk.Lines[0].OldLine)
	assert.Equal(t, 1, *hunk.Lines[0].OldLine)
	require.NotNil(t, hunk.Lines[0].NewLine)
	assert.Equal(t, 1, *hunk.Lines[0].NewLine)

	var addition *DiffLine
	for i := range hunk.Lines {
		if hunk.Lines[i].Kind == LineAddition {
			addition = &hunk.Lines[i]
		}
	}
	require.NotNil(t, addition)
	assert.Nil(t, addition.OldLine)
	require.NotNil(t, addition.NewLine)
	assert.Equal(t, 3, *addition.NewLine)
}

func TestParseNewFile(t *testing.T) {
	diff := `diff --git a/new_file.rs b/new_file.rs
new file mode 100644
index 0000000..abc1234
--- /dev/null
+++ b/new_file.rs
@@ -0,0 +1,3 @@
+fn new_function() {
+    // new code
+}
`
	parsed, err := ParseUnifiedDiff(diff, "base", "head")
	require.NoError(t, err)
	require.Len(t, parsed.Files, 1)
	assert.Equal(t, StatusAdded, parsed.Files[0].Status)
	assert.Equal(t, "new_file.rs", parsed.Files[0].Path)
	assert.Equal(t, 3, parsed.Files[0].Additions)
}

func TestParseDeletedFile(t *testing.T) {
	diff := `diff --git a/old_file.rs b/old_file.rs
deleted file mode 100644
index abc1234..0000000
--- a/old_file.rs
+++ /dev/null
@@ -1,3 +0,0 @@
-fn old_function() {
-    // old code
-}
`
	parsed, err := ParseUnifiedDiff(diff, "base", "head")
	require.NoError(t, err)
	require.Len(t, parsed.Files, 1)
	assert.Equal(t, StatusDeleted, parsed.Files[0].Status)
	assert.Equal(t, "old_file.rs", parsed.Files[0].Path)
	assert.Equal(t, 3, parsed.Files[0].Deletions)
}

func TestParseRenamedFile(t *testing.T) {
	diff := `diff --git a/old_name.rs b/new_name.rs
similarity index 95%
rename from old_name.rs
rename to new_name.rs
index abc123..def456 100644
--- a/old_name.rs
+++ b/new_name.rs
@@ -1,3 +1,3 @@
 fn example() {
-    // old
+    // new
 }
`
	parsed, err := ParseUnifiedDiff(diff, "base", "head")
	require.NoError(t, err)
	require.Len(t, parsed.Files, 1)
	file := parsed.Files[0]
	assert.Equal(t, "new_name.rs", file.Path)
	assert.Equal(t, "old_name.rs", file.OldPath)
	assert.Equal(t, StatusRenamed, file.Status)
}

func TestParseNoNewlineMarker(t *testing.T) {
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
	parsed, err := ParseUnifiedDiff(diff, "b", "h")
	require.NoError(t, err)
	hunk := parsed.Files[0].Hunks[0]
	require.Len(t, hunk.Lines, 3)
	assert.Equal(t, LineContext, hunk.Lines[2].Kind)
	assert.Nil(t, hunk.Lines[2].OldLine)
	assert.Nil(t, hunk.Lines[2].NewLine)
}

func TestParseShortHunkTolerated(t *testing.T) {
	// Some generators declare more context than they emit; counts are
	// advisory and the hunk closes at the next structural line.
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,5 +1,5 @@
 one
--- a/g.txt
+++ b/g.txt
@@ -1,1 +1,1 @@
-x
+y
`
	parsed, err := ParseUnifiedDiff(diff, "b", "h")
	require.NoError(t, err)
	require.Len(t, parsed.Files, 2)
	assert.Len(t, parsed.Files[0].Hunks[0].Lines, 1)
	assert.Equal(t, 1, parsed.Files[1].Additions)
}

func TestParseHunkBeforeFileErrors(t *testing.T) {
	_, err := ParseUnifiedDiff("@@ -1,1 +1,1 @@\n x\n", "b", "h")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "src/main.rs", cleanPath("a/src/main.rs"))
	assert.Equal(t, "src/main.rs", cleanPath("b/src/main.rs"))
	assert.Equal(t, "src/main.rs", cleanPath("src/main.rs"))
	assert.Equal(t, "/dev/null", cleanPath("/dev/null"))
}

func TestCanonicalHeaderRoundTrip(t *testing.T) {
	diff, err := ParseUnifiedDiff(sampleDiff, "abc", "def")
	require.NoError(t, err)
	hunk := diff.Files[0].Hunks[0]
	assert.Equal(t, "@@ -1,5 +1,6 @@ fn main()", hunk.Header)

	// The canonical header re-parses to the same ranges.
	oldStart, oldCount, newStart, newCount, section, err := parseHunkHeader(hunk.Header)
	require.NoError(t, err)
	assert.Equal(t, hunk.OldStart, oldStart)
	assert.Equal(t, hunk.OldCount, oldCount)
	assert.Equal(t, hunk.NewStart, newStart)
	assert.Equal(t, hunk.NewCount, newCount)
	assert.Equal(t, "fn main()", section)
}

func TestRecalculateStats(t *testing.T) {
	diff, err := ParseUnifiedDiff(sampleDiff, "abc", "def")
	require.NoError(t, err)
	file := &diff.Files[0]
	file.Additions = 99
	file.RecalculateStats()
	assert.Equal(t, 1, file.Additions)
	assert.Equal(t, 0, file.Deletions)
}
