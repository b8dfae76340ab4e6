package anthropic

import (
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageResponse_Text(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: "thinking", Text: "hidden"},
		{Type: "text", Text: "visible"},
	}}
	assert.Equal(t, "visible", resp.Text())
	assert.Equal(t, "", (&MessageResponse{}).Text())
}

func TestEstimateCost(t *testing.T) {
	usage := TokenUsage{InputTokens: 1_000_000, OutputTokens: 100_000}
	assert.InDelta(t, 3.00+1.50, usage.EstimateCost("claude-sonnet-4-5-20250929"), 0.001)
	assert.Zero(t, usage.EstimateCost("unknown-model"))
}

func TestEstimateCost_CacheTokens(t *testing.T) {
	usage := TokenUsage{
		CacheCreationInputTokens: 1_000_000,
		CacheReadInputTokens:     1_000_000,
	}
	// Write at 1.25x input rate, read at 0.1x.
	assert.InDelta(t, 3.00*1.25+3.00*0.1, usage.EstimateCost("claude-sonnet-4-5-20250929"), 0.001)
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	blocks := BuildCachedSystemBlocks("prompt")
	require.Len(t, blocks, 1)
	assert.Equal(t, "prompt", blocks[0].Text)
	require.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "1h", blocks[0].CacheControl.TTL)
}

func TestToSDKMessages_Roles(t *testing.T) {
	out := toSDKMessages([]Message{
		{Role: "user", Content: "q"},
		{Role: "assistant", Content: "a"},
	})
	require.Len(t, out, 2)
	assert.Equal(t, sdk.MessageParamRoleUser, out[0].Role)
	assert.Equal(t, sdk.MessageParamRoleAssistant, out[1].Role)
}
