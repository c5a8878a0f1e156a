package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/metrics"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/orderid"
)

var greetings = map[string]struct{}{
	"hi":        {},
	"hello":     {},
	"hey":       {},
	"thanks":    {},
	"thank you": {},
}

var domainKeywords = []string{"order", "delivery", "refund", "cancel", "status", "issue", "problem", "track"}

// Rule names which step decided the intent.
const (
	RuleOrderID  = "order_id"
	RuleGreeting = "greeting"
	RuleKeyword  = "keyword"
	RuleModel    = "model"
)

var _ contractx.Classifier = (*Classifier)(nil)

type Classifier struct {
	model  contractx.Completer
	prompt string
	log    zerolog.Logger
}

// New builds a Classifier. A nil model makes every ambiguous query chat.
func New(model contractx.Completer, systemPrompt string) *Classifier {
	return &Classifier{
		model:  model,
		prompt: systemPrompt,
		log:    log.With().Str("component", "intent_classifier").Logger(),
	}
}

func (c *Classifier) Classify(ctx context.Context, query string) (contractx.Intent, error) {
	intent, rule, err := c.classify(ctx, query)
	if err != nil {
		return "", err
	}
	metrics.IntentTotal.WithLabelValues(string(intent), rule).Inc()
	c.log.Debug().Str("intent", string(intent)).Str("rule", rule).Msg("query classified")
	return intent, nil
}

func (c *Classifier) classify(ctx context.Context, query string) (contractx.Intent, string, error) {
	if _, ok := orderid.Find(query); ok {
		return contractx.IntentTool, RuleOrderID, nil
	}

	normalized := normalize(query)
	if _, ok := greetings[normalized]; ok {
		return contractx.IntentChat, RuleGreeting, nil
	}
	for _, kw := range domainKeywords {
		if strings.Contains(normalized, kw) {
			return contractx.IntentTool, RuleKeyword, nil
		}
	}

	if c.model == nil {
		return contractx.IntentChat, RuleModel, nil
	}
	out, err := c.model.Complete(ctx, c.prompt, strings.TrimSpace(query))
	if err != nil {
		return "", "", fmt.Errorf("%w: classify intent: %v", contractx.ErrModelInvoke, err)
	}
	return Coerce(out), RuleModel, nil
}

// Coerce maps model output to an intent. Anything but the literal tool
// token is chat.
func Coerce(out string) contractx.Intent {
	if strings.ToLower(strings.TrimSpace(out)) == string(contractx.IntentTool) {
		return contractx.IntentTool
	}
	return contractx.IntentChat
}

// normalize lower-cases, trims and folds inner whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
