package overlay

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathCompleter completes file names relative to dir (the working
// directory when dir is empty). Directories get a trailing separator, and
// a prefix ending in one lists that directory's entries.
func PathCompleter(dir string) Completer {
	return func(prefix string) []string {
		// typedDir keeps its trailing separator; it is echoed back verbatim.
		typedDir, partial := splitPrefix(prefix)
		searchDir := typedDir
		if !filepath.IsAbs(searchDir) && dir != "" {
			searchDir = filepath.Join(dir, searchDir)
		}
		pattern := globEscape(partial) + "*"
		if searchDir != "" {
			pattern = filepath.Join(globEscape(searchDir), pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil
		}
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			name := typedDir + filepath.Base(m)
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				name += string(filepath.Separator)
			}
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}
}

// splitPrefix cuts prefix after its last separator.
func splitPrefix(prefix string) (string, string) {
	i := strings.LastIndexAny(prefix, "/"+string(filepath.Separator))
	return prefix[:i+1], prefix[i+1:]
}

// globEscape quotes glob metacharacters in a literal path.
func globEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`)
	return r.Replace(s)
}
