package services

import (
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceText(t *testing.T) {
	text, err := choiceText(&openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: `{"concept": `}},
			{Message: openai.ChatCompletionMessage{Content: `"smart casual"}`}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"concept": "smart casual"}`, text)

	_, err = choiceText(&openai.ChatCompletion{})
	assert.Error(t, err)

	_, err = choiceText(&openai.ChatCompletion{Choices: []openai.ChatCompletionChoice{{}}})
	assert.Error(t, err)
}
