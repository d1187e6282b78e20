package tool

import "github.com/praxislabs/praxis/pkg/llm"

// FinishName is the synthetic pseudo-tool the model calls to terminate a run
// with its final answer. It is never registered; the engine intercepts it.
const FinishName = "finish"

// FinishAnswerParam is the single required parameter of the finish call.
const FinishAnswerParam = "answer"

// FinishDefinition returns the finish descriptor appended to every tool menu.
func FinishDefinition() llm.Tool {
	return Descriptor{
		Name:        FinishName,
		Description: "Call this when you have the final answer for the user. Pass the complete answer text.",
		Category:    CategoryUtility,
		Parameters: ObjectSchema(map[string]Property{
			FinishAnswerParam: {
				Type:        "string",
				Description: "The final answer to return to the user",
			},
		}, FinishAnswerParam),
	}.Definition()
}
