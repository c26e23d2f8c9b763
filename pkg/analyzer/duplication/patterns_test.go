package duplication

import (
	"fmt"
	"strings"
	"testing"
)

func scanOf(path, content string) fileScan {
	return fileScan{path: path, content: content}
}

func TestScanPatternsCatchAndLog(t *testing.T) {
	js := `try {
  doWork();
} catch (err) {
  console.error(err);
}`
	goCode := `if err != nil {
	log.Printf("failed: %v", err)
}`
	py := `try:
    run()
except ValueError as e:
    print(e)`

	scans := []fileScan{
		scanOf("a.js", js),
		scanOf("b.go", goCode),
		scanOf("c.py", py),
	}
	results := scanPatterns(scans, 3)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	p := results[0]
	if p.Name != "catch-and-log" {
		t.Errorf("Name = %s, want catch-and-log", p.Name)
	}
	if p.Count != 3 {
		t.Errorf("Count = %d, want 3", p.Count)
	}
	if len(p.Occurrences) != 3 {
		t.Fatalf("len(Occurrences) = %d, want 3", len(p.Occurrences))
	}
	if p.Occurrences[0].File != "a.js" || p.Occurrences[0].Line != 3 {
		t.Errorf("first occurrence = %s:%d, want a.js:3", p.Occurrences[0].File, p.Occurrences[0].Line)
	}
	if p.Occurrences[1].File != "b.go" || p.Occurrences[1].Line != 1 {
		t.Errorf("second occurrence = %s:%d, want b.go:1", p.Occurrences[1].File, p.Occurrences[1].Line)
	}
}

func TestScanPatternsMinOccurrences(t *testing.T) {
	js := `} catch (err) {
  console.log(err);
}`
	scans := []fileScan{scanOf("a.js", js), scanOf("b.js", js)}
	if results := scanPatterns(scans, 3); len(results) != 0 {
		t.Errorf("two occurrences reported despite floor of 3: %d results", len(results))
	}
}

func TestScanPatternsDisplayCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "items.map(x => x + %d)\n", i)
	}
	scans := []fileScan{scanOf("a.js", sb.String())}
	results := scanPatterns(scans, 3)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	p := results[0]
	if p.Name != "inline-transform-callback" {
		t.Errorf("Name = %s", p.Name)
	}
	if p.Count != 12 {
		t.Errorf("Count = %d, want 12 (count is not display-capped)", p.Count)
	}
	if len(p.Occurrences) != maxPatternDisplay {
		t.Errorf("len(Occurrences) = %d, want %d", len(p.Occurrences), maxPatternDisplay)
	}
}

func TestScanPatternsHandlerSignatures(t *testing.T) {
	goCode := `func handleList(w http.ResponseWriter, r *http.Request) {}
func handleGet(w http.ResponseWriter, r *http.Request) {}`
	js := `app.get('/items', (req, res) => { res.json(items) })`
	scans := []fileScan{scanOf("a.go", goCode), scanOf("b.js", js)}
	results := scanPatterns(scans, 3)
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Name != "http-handler-signature" {
		t.Errorf("Name = %s", results[0].Name)
	}
	if results[0].Count != 3 {
		t.Errorf("Count = %d, want 3", results[0].Count)
	}
}

func TestScanPatternsOrdering(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&sb, "rows.filter(r => r.id > %d)\n", i)
	}
	sb.WriteString(`func h1(w http.ResponseWriter, r *http.Request) {}
func h2(w http.ResponseWriter, r *http.Request) {}
func h3(w http.ResponseWriter, r *http.Request) {}
`)
	scans := []fileScan{scanOf("a.go", sb.String())}
	results := scanPatterns(scans, 3)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Name != "inline-transform-callback" || results[1].Name != "http-handler-signature" {
		t.Errorf("order = [%s %s], want count-descending", results[0].Name, results[1].Name)
	}
}

func TestPatternSnippet(t *testing.T) {
	if got := patternSnippet("catch (err) {\n  console.log(err)"); got != "catch (err) {" {
		t.Errorf("patternSnippet = %q, want first line only", got)
	}
	long := strings.Repeat("a", 150)
	if got := patternSnippet(long); len(got) != maxPatternSnippet {
		t.Errorf("snippet length = %d, want %d", len(got), maxPatternSnippet)
	}
}
