package ai

import "fmt"

const analysisPrompt = `Analyze the following website content. Return a JSON object with:
{
  "analysis": {
    "primary_topic": string,
    "target_audience": string,
    "ambiguities": [string]
  },
  "diffs": [string]
}
Content:
%s`

// BuildPrompt embeds the page text in the fixed analysis prompt.
func BuildPrompt(text string) string {
	return fmt.Sprintf(analysisPrompt, text)
}
