package support

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/contract"
)

// compileReasoningGraph runs one reasoning step over the running transcript.
func compileReasoningGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[[]*schema.Message, *schema.Message], error) {
	graph := compose.NewGraph[[]*schema.Message, *schema.Message]()

	if err := graph.AddLambdaNode("check_transcript",
		compose.InvokableLambda(func(ctx context.Context, in []*schema.Message) ([]*schema.Message, error) {
			if len(in) == 0 {
				return nil, fmt.Errorf("%w: reasoning transcript is empty", contractx.ErrValidation)
			}
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add reasoning check node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add reasoning model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "check_transcript"); err != nil {
		return nil, fmt.Errorf("add reasoning edge start->check: %w", err)
	}
	if err := graph.AddEdge("check_transcript", "model"); err != nil {
		return nil, fmt.Errorf("add reasoning edge check->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add reasoning edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("support.reasoning_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile reasoning graph: %w", err)
	}
	return runner, nil
}

// compileSummaryGraph fills the summarize template and calls the model.
// systemPrompt must not contain FString placeholders.
func compileSummaryGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.UserMessage("User query: {user_query}\n\nRaw tool response:\n{raw_output}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add summary prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add summary model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add summary edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add summary edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add summary edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("support.summary_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile summary graph: %w", err)
	}
	return runner, nil
}
