package tools

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/praxislabs/praxis/pkg/tool"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRandomGenerator returns the randomness tool: numbers in a range, random
// strings, UUIDs, and picks from a list of options.
func NewRandomGenerator() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "generate_random",
		Description: "Generates random values: a number within a range, a random string, a UUID, or a choice from a provided list of options.",
		Category:    tool.CategoryUtility,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"type": {
				Type:        "string",
				Description: "What to generate",
				Enum:        []string{"number", "string", "uuid", "choice"},
			},
			"min": {
				Type:        "integer",
				Description: "Lower bound for 'number' (inclusive)",
				Default:     0,
			},
			"max": {
				Type:        "integer",
				Description: "Upper bound for 'number' (inclusive)",
				Default:     100,
			},
			"length": {
				Type:        "integer",
				Description: "Length for 'string'",
				Default:     12,
			},
			"options": {
				Type:        "array",
				Description: "Options to pick from for 'choice'",
			},
		}, "type"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		switch kind := strArg(args, "type", ""); kind {
		case "number":
			min := intArg(args, "min", 0)
			max := intArg(args, "max", 100)
			if max < min {
				return tool.Fail("max (%d) must not be less than min (%d)", max, min)
			}
			return tool.Ok(min + rand.IntN(max-min+1))
		case "string":
			length := intArg(args, "length", 12)
			if length <= 0 || length > 1024 {
				return tool.Fail("length must be between 1 and 1024")
			}
			var b strings.Builder
			for i := 0; i < length; i++ {
				b.WriteByte(randomAlphabet[rand.IntN(len(randomAlphabet))])
			}
			return tool.Ok(b.String())
		case "uuid":
			return tool.Ok(uuid.NewString())
		case "choice":
			options, _ := args["options"].([]any)
			if len(options) == 0 {
				return tool.Fail("'choice' requires a non-empty options list")
			}
			return tool.Ok(options[rand.IntN(len(options))])
		default:
			return tool.Fail("unsupported type %q", kind)
		}
	})
}
