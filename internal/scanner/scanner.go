// Package scanner expands command-line paths into the Java files to analyze.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/config"
	"github.com/SyedUmais05/Java-code-smell-detector/pkg/parser"
)

// Scanner finds Java source files in directories.
type Scanner struct {
	config *config.Config
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// findGitRoot finds the root of the git repository by looking for .git directory.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// excluder decides exclusion for one scan. Config patterns match relative to
// the scan root and .gitignore patterns relative to the repository root.
type excluder struct {
	cfg      *config.Config
	root     string
	gitRoot  string
	patterns gitignore.Matcher
	ignored  gitignore.Matcher
}

func (s *Scanner) newExcluder(root string) *excluder {
	e := &excluder{cfg: s.config, root: root}

	var patterns []gitignore.Pattern
	for _, p := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	if len(patterns) > 0 {
		e.patterns = gitignore.NewMatcher(patterns)
	}

	if s.config.Exclude.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			if gitPatterns, err := gitignore.ReadPatterns(osfs.New(gitRoot), nil); err == nil && len(gitPatterns) > 0 {
				e.gitRoot = gitRoot
				e.ignored = gitignore.NewMatcher(gitPatterns)
			}
		}
	}
	return e
}

func (e *excluder) excluded(path string, isDir bool) bool {
	rel, err := filepath.Rel(e.root, path)
	if err != nil || rel == "." {
		return false
	}

	if isDir {
		base := filepath.Base(path)
		for _, dir := range e.cfg.Exclude.Dirs {
			if base == dir {
				return true
			}
		}
	} else if e.cfg.ShouldExclude(rel) {
		return true
	}

	if e.patterns != nil && e.patterns.Match(splitPath(rel), isDir) {
		return true
	}
	if e.ignored != nil {
		if gitRel, err := filepath.Rel(e.gitRoot, path); err == nil && !strings.HasPrefix(gitRel, "..") {
			return e.ignored.Match(splitPath(gitRel), isDir)
		}
	}
	return false
}

func splitPath(p string) []string {
	return strings.Split(filepath.ToSlash(p), "/")
}

// ScanDir recursively scans a directory for Java files, in lexical order.
// Symlinks that resolve outside the root are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	ex := s.newExcluder(absRoot)
	files := make([]string, 0, 256)

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				return nil
			}
		}

		if d.IsDir() {
			if ex.excluded(path, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if parser.IsJavaFile(path) && !ex.excluded(path, false) {
			files = append(files, path)
		}
		return nil
	})

	return files, walkErr
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// ScanPaths expands paths into files. Directories are scanned recursively;
// files named explicitly are kept even without a .java extension. The
// result is deduplicated and keeps argument order.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &PathError{Path: path, Err: err}
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := s.ScanDir(path)
		if err != nil {
			return nil, &ScanError{Path: path, Err: err}
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// FilterBySize drops files larger than maxSize bytes and returns how many
// were skipped. A maxSize <= 0 disables the filter.
func FilterBySize(files []string, maxSize int64) ([]string, int) {
	if maxSize <= 0 {
		return files, 0
	}

	filtered := make([]string, 0, len(files))
	skipped := 0
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || info.Size() > maxSize {
			skipped++
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, skipped
}

// PathError indicates an invalid path.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return "invalid path " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ScanError indicates a scanning failure.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return "failed to scan directory " + e.Path + ": " + e.Err.Error()
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
