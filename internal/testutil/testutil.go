// Package testutil holds file and Java fixture helpers shared by tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to a file, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// ReadFile reads content from a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", path, err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TempDir creates a temporary directory removed when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "jsmell-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp error: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// CreateFileTree creates multiple files from a map of slash path -> content.
func CreateFileTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
}

// CleanClass is a small class with no smells under the default thresholds.
const CleanClass = `public class Greeter {
    private final String name;
    private final int times;

    public Greeter(String name, int times) {
        this.name = name;
        this.times = times;
    }

    public String greet() {
        return "Hello, " + name + times;
    }

    public String shout() {
        return name.toUpperCase() + times;
    }
}
`

// BrokenClass does not parse.
const BrokenClass = "public class Broken {\n    void m( {\n}\n"

// LongParameterClass has exactly one smell: a method with five parameters,
// over the default limit of four.
const LongParameterClass = `public class Orders {
    public String place(String item, int qty, double price, String note, boolean rush) {
        return item + qty + price + note + rush;
    }

    public String cancel(String id) {
        return id;
    }

    public String status(String id) {
        return id;
    }
}
`

// LongMethodClass returns a class whose run method has the given number of
// statements, one per line. Its estimated span is statements+2 lines, so
// 39 or more statements is a Long Method under the default thresholds and
// nothing else is reported.
func LongMethodClass(statements int) string {
	var b strings.Builder
	b.WriteString("public class Batch {\n    public void run() {\n        int x = 0;\n")
	for i := 1; i < statements; i++ {
		fmt.Fprintf(&b, "        x += %d;\n", i)
	}
	b.WriteString("    }\n\n    public int a() { return 1; }\n\n    public int b() { return 2; }\n\n    public int c() { return 3; }\n}\n")
	return b.String()
}

// Lines returns n lines of trivial Java comments.
func Lines(n int) string {
	return strings.Repeat("// line\n", n)
}
