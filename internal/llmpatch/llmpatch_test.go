package llmpatch

import (
	"context"
	"strings"
	"testing"

	"github.com/deepaste-ai/partial-edit/internal/config"
)

func TestGeneratePatchRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{Model: "gpt-4o"}
	_, err := GeneratePatch(context.Background(), cfg, "add a comment", map[string]string{"a.go": "package a\n"})
	if err == nil {
		t.Fatalf("expected an error when no API key is configured")
	}
}

func TestBuildUserPromptIncludesTaskAndFiles(t *testing.T) {
	files := map[string]string{
		"b.go": "package b\n",
		"a.go": "package a\n",
	}
	prompt := buildUserPrompt("rename the package", files)

	if !strings.Contains(prompt, "rename the package") {
		t.Fatalf("prompt missing task: %s", prompt)
	}
	if !strings.Contains(prompt, "*** File: a.go") || !strings.Contains(prompt, "*** File: b.go") {
		t.Fatalf("prompt missing file headers: %s", prompt)
	}

	// Files are listed in sorted order for determinism.
	if strings.Index(prompt, "a.go") > strings.Index(prompt, "b.go") {
		t.Fatalf("expected a.go before b.go in prompt: %s", prompt)
	}
}
