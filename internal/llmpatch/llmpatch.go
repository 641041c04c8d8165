// Package llmpatch is a thin wrapper around an OpenAI-compatible chat
// completion endpoint that asks a model to synthesize patch text for a task.
// It does not parse, validate, or apply what comes back; that is
// internal/patch's job, reached through ProcessPatch.
package llmpatch

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/deepaste-ai/partial-edit/internal/config"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You rewrite source files by emitting a patch in the
apply_patch format. Respond with nothing but the patch, starting with
"*** Begin Patch" and ending with "*** End Patch". Use "*** Update File:",
"*** Add File:", "*** Delete File:", and "*** Move to:" sections as needed,
with "@@ " anchors before a hunk's context lines whenever the surrounding
function or block is not already uniquely identified by the preceding hunk.
Every hunk line must begin with " ", "+", or "-".`

// GeneratePatch asks the configured model for patch text that accomplishes
// task against the given file collection. files is keyed the same way
// internal/patch.ProcessPatch expects its file collection: path to content.
func GeneratePatch(ctx context.Context, cfg *config.Config, task string, files map[string]string) (string, error) {
	if cfg.APIKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	req := openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(task, files)},
		},
		Temperature: 0.2,
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func buildUserPrompt(task string, files map[string]string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	fmt.Fprintf(&b, "Task:\n%s\n\n", task)
	for _, p := range paths {
		fmt.Fprintf(&b, "*** File: %s\n%s\n", p, files[p])
	}
	return b.String()
}
