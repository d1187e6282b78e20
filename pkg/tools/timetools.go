package tools

import (
	"context"
	"time"

	"github.com/praxislabs/praxis/pkg/tool"
)

// clock is swapped out in tests.
var clock = time.Now

// NewCurrentTime returns the clock tool.
func NewCurrentTime() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "get_current_time",
		Description: "Returns the current date and time. Use it to learn the current time, today's date, or the day of the week.",
		Category:    tool.CategoryUtility,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"format": {
				Type:        "string",
				Description: "Output detail: 'full' (default), 'date', or 'time'",
				Enum:        []string{"full", "date", "time"},
				Default:     "full",
			},
		}),
	}, func(_ context.Context, args map[string]any) tool.Result {
		now := clock()
		switch strArg(args, "format", "full") {
		case "date":
			return tool.Ok(now.Format("2006-01-02"))
		case "time":
			return tool.Ok(now.Format("15:04:05"))
		default:
			return tool.Ok(map[string]any{
				"datetime":  now.Format("2006-01-02 15:04:05"),
				"date":      now.Format("2006-01-02"),
				"time":      now.Format("15:04:05"),
				"weekday":   now.Weekday().String(),
				"timestamp": now.Unix(),
			})
		}
	})
}

// NewTimeCalculator returns the date-math tool: offset from now or express a
// duration in other units.
func NewTimeCalculator() tool.Tool {
	return tool.New(tool.Descriptor{
		Name:        "time_calculator",
		Description: "Performs time calculations: a future or past moment relative to now ('add'/'subtract') or a duration expressed in seconds, minutes, hours, and days ('diff').",
		Category:    tool.CategoryUtility,
		Parameters: tool.ObjectSchema(map[string]tool.Property{
			"operation": {
				Type:        "string",
				Description: "The calculation to perform",
				Enum:        []string{"add", "subtract", "diff"},
			},
			"amount": {
				Type:        "integer",
				Description: "Number of time units",
			},
			"unit": {
				Type:        "string",
				Description: "Time unit",
				Enum:        []string{"days", "hours", "minutes"},
			},
		}, "operation", "amount", "unit"),
	}, func(_ context.Context, args map[string]any) tool.Result {
		amount := intArg(args, "amount", 0)
		unit := strArg(args, "unit", "")

		var delta time.Duration
		switch unit {
		case "days":
			delta = time.Duration(amount) * 24 * time.Hour
		case "hours":
			delta = time.Duration(amount) * time.Hour
		case "minutes":
			delta = time.Duration(amount) * time.Minute
		default:
			return tool.Fail("unsupported time unit %q", unit)
		}

		now := clock()
		const layout = "2006-01-02 15:04:05"
		op := strArg(args, "operation", "")
		switch op {
		case "add":
			return tool.Ok(map[string]any{
				"now":    now.Format(layout),
				"result": now.Add(delta).Format(layout),
			})
		case "subtract":
			return tool.Ok(map[string]any{
				"now":    now.Format(layout),
				"result": now.Add(-delta).Format(layout),
			})
		case "diff":
			return tool.Ok(map[string]any{
				"seconds": delta.Seconds(),
				"minutes": delta.Minutes(),
				"hours":   delta.Hours(),
				"days":    delta.Hours() / 24,
			})
		default:
			return tool.Fail("unsupported operation %q", op)
		}
	})
}
