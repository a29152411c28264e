package window

import (
	"strings"

	"sms-assistant-be/pkg/store"
)

// Config encapsulates window-building parameters
type Config struct {
	MaxChars   int
	SnippetCap int
	// EmitOversizedFirst controls the edge case where the very first block
	// already exceeds MaxChars: false (the default) emits nothing, true
	// emits that single block untruncated. Blocks are atomic either way.
	EmitOversizedFirst bool
}

// DefaultConfig returns default window configuration
func DefaultConfig() Config {
	return Config{
		MaxChars:   6000,
		SnippetCap: 700,
	}
}

// Builder packs ranked records into a size-bounded prompt context. Output is
// deterministic: same records and budget always yield byte-identical text.
type Builder struct {
	config Config
}

func NewBuilder(config Config) *Builder {
	if config.MaxChars <= 0 {
		config.MaxChars = DefaultConfig().MaxChars
	}
	if config.SnippetCap <= 0 {
		config.SnippetCap = DefaultConfig().SnippetCap
	}
	return &Builder{config: config}
}

// Build serializes records in input order, stopping before the block that
// would push the output past MaxChars. Blocks are never cut midway.
func (b *Builder) Build(records []store.Record) string {
	var out strings.Builder

	for i, rec := range records {
		block := b.renderBlock(rec)

		if out.Len()+len(block) > b.config.MaxChars {
			if i == 0 && b.config.EmitOversizedFirst {
				return block
			}
			break
		}
		out.WriteString(block)
	}

	return out.String()
}

func (b *Builder) renderBlock(rec store.Record) string {
	var block strings.Builder

	block.WriteString("### ")
	if rec.Title != "" {
		block.WriteString(rec.Title)
	} else {
		block.WriteString("Untitled")
	}
	if rec.Kind != "" {
		block.WriteString(" [" + rec.Kind + "]")
	}
	block.WriteString("\n")

	if rec.URL != "" {
		block.WriteString("URL: " + rec.URL + "\n")
	}
	if rec.Tag != "" {
		block.WriteString("Tag: " + rec.Tag + "\n")
	}

	snippet := rec.Body
	if runes := []rune(snippet); len(runes) > b.config.SnippetCap {
		snippet = string(runes[:b.config.SnippetCap]) + "…"
	}
	block.WriteString(snippet)
	block.WriteString("\n---\n")

	return block.String()
}
