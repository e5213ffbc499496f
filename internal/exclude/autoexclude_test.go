package exclude

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, rel), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestDetectAutoExcludes_Empty(t *testing.T) {
	tmpDir := t.TempDir()

	result := DetectAutoExcludes(tmpDir)

	if len(result.Directories) != 0 {
		t.Errorf("expected 0 directories, got %d: %v", len(result.Directories), result.Directories)
	}
}

func TestDetectAutoExcludes_Maven(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "pom.xml", "<project/>")
	mkdir(t, tmpDir, "target")

	result := DetectAutoExcludes(tmpDir)

	if len(result.Directories) != 1 || !contains(result.Directories, "target") {
		t.Errorf("expected [target], got %v", result.Directories)
	}
	if result.Reasons["target"] == "" {
		t.Error("expected reason for target directory")
	}
}

func TestDetectAutoExcludes_Maven_NoTarget(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "pom.xml", "<project/>")

	result := DetectAutoExcludes(tmpDir)

	if len(result.Directories) != 0 {
		t.Errorf("expected 0 directories (no target/), got %v", result.Directories)
	}
}

func TestDetectAutoExcludes_GradleMultiModule(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "settings.gradle", "")
	writeFile(t, tmpDir, "core/build.gradle", "")
	mkdir(t, tmpDir, "core/build")
	writeFile(t, tmpDir, "api/build.gradle.kts", "")
	mkdir(t, tmpDir, "api/build")
	// build/ without a build file next to it is kept.
	mkdir(t, tmpDir, "docs/build")

	result := DetectAutoExcludes(tmpDir)

	want := []string{filepath.Join("api", "build"), filepath.Join("core", "build")}
	for _, dir := range want {
		if !contains(result.Directories, dir) {
			t.Errorf("expected %s in %v", dir, result.Directories)
		}
	}
	if contains(result.Directories, filepath.Join("docs", "build")) {
		t.Errorf("docs/build should not be excluded: %v", result.Directories)
	}
}

func TestJavaFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "pom.xml", "<project/>")
	writeFile(t, tmpDir, "src/main/java/a/B.java", "class B {}")
	writeFile(t, tmpDir, "src/main/java/a/A.java", "class A {}")
	writeFile(t, tmpDir, "src/main/resources/app.properties", "")
	writeFile(t, tmpDir, "target/generated-sources/Gen.java", "class Gen {}")
	writeFile(t, tmpDir, ".git/hooks/Hook.java", "class Hook {}")

	files, err := JavaFiles(tmpDir)
	if err != nil {
		t.Fatalf("JavaFiles: %v", err)
	}

	got := strings.Join(files, ",")
	want := strings.Join([]string{
		filepath.Join("src", "main", "java", "a", "A.java"),
		filepath.Join("src", "main", "java", "a", "B.java"),
	}, ",")
	if got != want {
		t.Errorf("JavaFiles() = %s, want %s", got, want)
	}
}

func TestJavaFilesSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "One.java", "class One {}")

	files, err := JavaFiles(filepath.Join(tmpDir, "One.java"))
	if err != nil {
		t.Fatalf("JavaFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "One.java" {
		t.Errorf("JavaFiles() = %v", files)
	}

	if _, err := JavaFiles(filepath.Join(tmpDir, "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}
