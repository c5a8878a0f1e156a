package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/tanpawarit/Chative-Food-Delivery-Support/agent/nodes/orchestrator"
)

func (s *Service) compileHandleChatGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("classify_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ClassifyIntent(ctx, in, s.deps.Classifier)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node classify_intent: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeChatReply,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ChatReply(ctx, in, s.deps.Chat, s.deps.Normalizer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node chat_reply: %w", err)
	}

	if err := graph.AddLambdaNode(nodex.NodeEnrichTool,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.EnrichQuery(ctx, in, s.deps.Enricher)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node enrich_query: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_agent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.DispatchAgent(ctx, in, s.deps.Dispatcher)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_agent: %w", err)
	}

	if err := graph.AddLambdaNode("normalize_response",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.NormalizeResponse(ctx, in, s.deps.Normalizer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node normalize_response: %w", err)
	}

	finalize := func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
		return nodex.FinalizeReply(in)
	}
	if err := graph.AddLambdaNode("finalize_chat", compose.InvokableLambda(finalize)); err != nil {
		return nil, fmt.Errorf("add node finalize_chat: %w", err)
	}
	if err := graph.AddLambdaNode("finalize_reply", compose.InvokableLambda(finalize)); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.Route(in)
		},
		map[string]bool{
			nodex.NodeChatReply:  true,
			nodex.NodeEnrichTool: true,
		},
	)
	if err := graph.AddBranch("classify_intent", branch); err != nil {
		return nil, fmt.Errorf("add intent branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "classify_intent"},
		{nodex.NodeChatReply, "finalize_chat"},
		{"finalize_chat", compose.END},
		{nodex.NodeEnrichTool, "dispatch_agent"},
		{"dispatch_agent", "normalize_response"},
		{"normalize_response", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_chat"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
