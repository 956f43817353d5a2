package stylist

import (
	"fmt"
	"strconv"
	"strings"

	"closetapi/models"
)

const responseShape = `{
  "top": {"item_id": "<id of the chosen top>", "name": "<top name>", "reason": "<why this top>"},
  "bottom": {"item_id": "<id of the chosen bottom>", "name": "<bottom name>", "reason": "<why this bottom>"},
  "outer": {"item_id": null, "name": null, "reason": null},
  "shoes": {"item_id": null, "name": null, "reason": null},
  "concept": "<overall concept of the outfit>",
  "tip": "<styling tip>",
  "color_harmony": "<how the colors work together>"
}`

// BuildPrompt renders the stylist instruction for the given candidates. The
// output depends only on its arguments.
func BuildPrompt(garments []models.Garment, weather models.Weather, schedule string) string {
	var b strings.Builder

	b.WriteString("You are a professional stylist. Put together the best outfit from the wardrobe below.\n\n")

	b.WriteString("## Available garments\n")
	for _, g := range garments {
		fmt.Fprintf(&b, "- ID: %s\n", g.ID)
		writeAttr(&b, "Name", g.Name)
		writeAttr(&b, "Category", g.Category)
		writeAttr(&b, "Type", g.Type)
		writeAttr(&b, "Color", g.Color)
		writeAttr(&b, "Style", g.Style)
		writeAttr(&b, "Material", g.Material)
		writeAttr(&b, "Season", g.Season)
	}

	b.WriteString("\n## Today's weather\n")
	fmt.Fprintf(&b, "- Temperature: %s\n", formatTemp(weather.Temp))
	fmt.Fprintf(&b, "- Condition: %s\n", orUnknown(weather.Condition))

	b.WriteString("\n## Today's schedule\n")
	fmt.Fprintf(&b, "- Activity: %s\n", orUnknown(schedule))

	b.WriteString(`
## Selection rules
1. Pick garments that fit the weather and the activity.
2. Combine colors that go well together.
3. Keep the style of the outfit consistent.
4. A top and a bottom are mandatory. Outer and shoes are optional.
5. Use only IDs from the list above and copy them exactly as written, as strings.

## Response format
Reply with a single JSON object of exactly this shape:
`)
	b.WriteString(responseShape)
	b.WriteString(`

## Important
- Never invent an ID that is not in the list above.
- If no outer layer is needed set every field of "outer" to null.
- If no shoes fit set every field of "shoes" to null.
- Output the JSON object only. Do not add any text, explanation or markdown before or after it.
`)
	return b.String()
}

func writeAttr(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

func formatTemp(temp *float64) string {
	if temp == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*temp, 'f', -1, 64) + "°C"
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
