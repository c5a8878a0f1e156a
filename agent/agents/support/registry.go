package support

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/intent"
	llmx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/llm"
	promptx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/prompt"
	"github.com/tanpawarit/Chative-Food-Delivery-Support/agent/state"
	toolx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/tool"
	openrouterx "github.com/tanpawarit/Chative-Food-Delivery-Support/pkg/openrouter"
)

// Agents groups every model-backed component of the chat pipeline.
type Agents struct {
	Classifier *intent.Classifier
	Chat       *ChatResponder
	Dispatcher *Dispatcher
	Summarizer *Summarizer
}

// NewRegistry builds the fast completer for classification and chat, and
// eino chat models for tool reasoning and summarization.
func NewRegistry(ctx context.Context, cfg llmx.Config, agentCfg Config, tools *toolx.Registry, store state.Store) (*Agents, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	if err := prompts.Require(); err != nil {
		return nil, err
	}

	fast, err := openrouterx.NewCompleter(cfg.OpenRouterFor(contractx.AgentTypeChat))
	if err != nil {
		return nil, fmt.Errorf("%w: create fast model: %v", contractx.ErrModelInvoke, err)
	}
	classifierModel, err := openrouterx.NewCompleter(cfg.OpenRouterFor(contractx.AgentTypeClassifier))
	if err != nil {
		return nil, fmt.Errorf("%w: create classifier model: %v", contractx.ErrModelInvoke, err)
	}

	supportModelCfg := cfg.OpenRouterFor(contractx.AgentTypeSupport)
	supportModel, err := supportModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create support model: %v", contractx.ErrModelInvoke, err)
	}
	summarizerModelCfg := cfg.OpenRouterFor(contractx.AgentTypeSummarizer)
	summarizerModel, err := summarizerModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create summarizer model: %v", contractx.ErrModelInvoke, err)
	}

	chat, err := NewChatResponder(fast, prompts.Chat)
	if err != nil {
		return nil, err
	}
	dispatcher, err := NewDispatcher(ctx, supportModel, tools, store, prompts, agentCfg)
	if err != nil {
		return nil, err
	}
	summarizer, err := NewSummarizer(ctx, summarizerModel, prompts.Summarize)
	if err != nil {
		return nil, err
	}

	return &Agents{
		Classifier: intent.New(classifierModel, prompts.Classifier),
		Chat:       chat,
		Dispatcher: dispatcher,
		Summarizer: summarizer,
	}, nil
}
