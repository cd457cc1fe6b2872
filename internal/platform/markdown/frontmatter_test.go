package markdown_test

import (
	"strings"
	"testing"

	"momentum/internal/platform/markdown"
)

type noteMeta struct {
	ID       int      `yaml:"id"`
	Date     string   `yaml:"date"`
	Keywords []string `yaml:"keywords"`
}

func TestEncodeDecodeFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Encode(noteMeta{ID: 3, Date: "2025-01-07", Keywords: []string{"Fiction"}}, "Finished part one")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\n") || !strings.Contains(rendered, "2025-01-07") {
		t.Fatalf("unexpected rendering:\n%s", rendered)
	}
	var meta noteMeta
	body, err := markdown.Decode(rendered, &meta)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.ID != 3 || meta.Date != "2025-01-07" || len(meta.Keywords) != 1 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if strings.TrimSpace(body) != "Finished part one" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestDecodeWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	body, err := markdown.Decode("just text", &meta)
	if err != nil || body != "just text" || meta.ID != 0 {
		t.Fatalf("expected passthrough, got %q %+v %v", body, meta, err)
	}
}

func TestDecodeUnterminatedFrontmatter(t *testing.T) {
	t.Parallel()
	var meta noteMeta
	if _, err := markdown.Decode("---\nid: 1\n", &meta); err == nil {
		t.Fatalf("expected missing separator error")
	}
}
