package normalize

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

const ellipsis = "..."

// Markers are agent scaffolding removed from every reply.
var Markers = []string{"Tool output:", "Final Answer:"}

type Config struct {
	MaxChars          int  `split_words:"true" default:"500"`
	Summarize         bool `default:"true"`
	SummarizeMinLines int  `split_words:"true" default:"4"`
	SummarizeMinChars int  `split_words:"true" default:"300"`
}

// Summarizer restates raw tool output conversationally without adding facts.
type Summarizer interface {
	Summarize(ctx context.Context, raw string, userQuery string) (string, error)
}

var _ contractx.Normalizer = (*Normalizer)(nil)

type Normalizer struct {
	cfg        Config
	summarizer Summarizer
	log        zerolog.Logger
}

// New builds a Normalizer. summarizer may be nil.
func New(cfg Config, summarizer Summarizer) *Normalizer {
	if cfg.MaxChars <= len(ellipsis) {
		cfg.MaxChars = 500
	}
	return &Normalizer{
		cfg:        cfg,
		summarizer: summarizer,
		log:        log.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize cleans raw, then either summarizes it (tool output that is dense)
// or truncates it to MaxChars. A failed summary falls back to truncation.
func (n *Normalizer) Normalize(ctx context.Context, raw string, toolUsed bool, userQuery string) (string, error) {
	cleaned := Clean(raw)
	if toolUsed && n.shouldSummarize(cleaned) {
		summary, err := n.summarizer.Summarize(ctx, cleaned, userQuery)
		switch {
		case err != nil:
			n.log.Warn().Err(err).Msg("summarize failed, falling back to truncation")
		case Clean(summary) != "":
			return Clean(summary), nil
		}
	}
	return Truncate(cleaned, n.cfg.MaxChars), nil
}

// NormalizeDirect is used for terminal tool output, which is returned as is
// apart from scaffolding removal.
func (n *Normalizer) NormalizeDirect(raw string) string {
	return Clean(raw)
}

func (n *Normalizer) shouldSummarize(s string) bool {
	if !n.cfg.Summarize || n.summarizer == nil || s == "" {
		return false
	}
	lines := strings.Count(s, "\n") + 1
	return lines >= n.cfg.SummarizeMinLines || utf8.RuneCountInString(s) >= n.cfg.SummarizeMinChars
}

// Clean removes scaffolding markers until none remain, trims trailing space
// from every line and drops blank lines. Indentation is kept.
// Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	for {
		before := s
		for _, m := range Markers {
			s = strings.ReplaceAll(s, m, "")
		}
		if s == before {
			break
		}
	}

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimRightFunc(line, unicode.IsSpace); strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimLeftFunc(strings.Join(kept, "\n"), unicode.IsSpace)
}

// Truncate shortens s to at most max runes including the ellipsis. It cuts
// at the last whitespace when possible and never splits a rune or leaves a
// dangling markdown token.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= len(ellipsis) {
		if max <= 0 {
			return ""
		}
		return string(runes[:max])
	}
	cut := runes[:max-len(ellipsis)]

	if i := lastSpace(cut); i > 0 {
		cut = cut[:i]
	}
	head := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("*_`#-,;:([{", r)
	})
	return head + ellipsis
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if unicode.IsSpace(rs[i]) {
			return i
		}
	}
	return -1
}
