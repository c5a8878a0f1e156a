package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

var (
	//go:embed template/classifier.txt
	classifierRaw string

	//go:embed template/chat.txt
	chatRaw string

	//go:embed template/support.txt
	supportRaw string

	//go:embed template/format_reminder.txt
	formatReminderRaw string

	//go:embed template/summarize.txt
	summarizeRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Classifier     string
	Chat           string
	Support        string
	FormatReminder string
	Summarize      string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Classifier:     strings.TrimSpace(classifierRaw),
		Chat:           strings.TrimSpace(chatRaw),
		Support:        strings.TrimSpace(supportRaw),
		FormatReminder: strings.TrimSpace(formatReminderRaw),
		Summarize:      strings.TrimSpace(summarizeRaw),
	}
}

// Require fails when any named prompt is blank.
func (p PromptSet) Require() error {
	for name, v := range map[string]string{
		"classifier":      p.Classifier,
		"chat":            p.Chat,
		"support":         p.Support,
		"format_reminder": p.FormatReminder,
		"summarize":       p.Summarize,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s", contractx.ErrPromptMissing, name)
		}
	}
	return nil
}

// Render replaces {key} placeholders literally. Values are not re-scanned,
// so they may contain braces.
func Render(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
