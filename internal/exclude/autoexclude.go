// Package exclude finds the Java sources of a project tree, skipping build
// output and dependency directories.
package exclude

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AutoExcludeResult contains the directories to exclude and why.
type AutoExcludeResult struct {
	// Directories to exclude (relative to project root)
	Directories []string
	// Reasons maps each directory to why it was excluded
	Reasons map[string]string
}

// buildMarkers maps a build file to the sibling directories it produces.
var buildMarkers = map[string][]struct{ dir, reason string }{
	"pom.xml": {
		{"target", "Maven build output (pom.xml detected)"},
	},
	"build.gradle": {
		{"build", "Gradle build output (build.gradle detected)"},
		{".gradle", "Gradle cache (build.gradle detected)"},
	},
	"build.gradle.kts": {
		{"build", "Gradle build output (build.gradle.kts detected)"},
		{".gradle", "Gradle cache (build.gradle.kts detected)"},
	},
	"build.xml": {
		{"bin", "Ant build output (build.xml detected)"},
	},
	"package.json": {
		{"node_modules", "Node.js dependencies (package.json detected)"},
	},
}

// DetectAutoExcludes scans the project root for build output directories.
// A directory is only excluded when the build file that produces it sits
// next to it. Nested modules are detected at any depth.
func DetectAutoExcludes(projectRoot string) *AutoExcludeResult {
	result := &AutoExcludeResult{
		Directories: []string{},
		Reasons:     make(map[string]string),
	}

	_ = filepath.WalkDir(projectRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip directories we can't read
		}
		if path == projectRoot {
			return nil
		}

		relPath, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if result.excluded(relPath) {
				return filepath.SkipDir
			}
			// Don't descend into dependency directories even if not yet excluded
			switch d.Name() {
			case "node_modules", ".git", ".gradle", ".idea":
				return filepath.SkipDir
			}
			return nil
		}

		markers, ok := buildMarkers[d.Name()]
		if !ok {
			return nil
		}
		relDirPath := filepath.Dir(relPath)
		for _, m := range markers {
			dir := m.dir
			if relDirPath != "." {
				dir = filepath.Join(relDirPath, m.dir)
			}
			if dirExists(filepath.Join(projectRoot, dir)) && !contains(result.Directories, dir) {
				result.Directories = append(result.Directories, dir)
				result.Reasons[dir] = m.reason
			}
		}
		return nil
	})

	return result
}

// excluded reports whether relPath is, or lies under, an excluded directory.
func (r *AutoExcludeResult) excluded(relPath string) bool {
	for _, dir := range r.Directories {
		if relPath == dir || strings.HasPrefix(relPath, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// JavaFiles returns the .java files under root, relative to root and
// sorted, leaving out auto-excluded directories and hidden directories.
// A root that is itself a file is returned as is.
func JavaFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(root)}, nil
	}

	excludes := DetectAutoExcludes(root)
	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" || excludes.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".java") {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// dirExists checks if a directory exists.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// contains checks if a string is in a slice.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
