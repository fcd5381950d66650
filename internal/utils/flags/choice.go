package flags

import (
	"fmt"
	"strings"
)

const (
	choiceListOpenerConstant           = "<"
	choiceListCloserConstant           = ">"
	choiceListSeparatorConstant        = "|"
	choiceUsageBareTemplateConstant    = "`%s`"
	choiceUsageLabeledTemplateConstant = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string listing the accepted choices,
// with the default choice uppercased inside the placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choiceListOpenerConstant + strings.Join(renderChoiceList(defaultChoice, choices), choiceListSeparatorConstant) + choiceListCloserConstant
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageBareTemplateConstant, placeholder)
	}
	return fmt.Sprintf(choiceUsageLabeledTemplateConstant, placeholder, description)
}

func renderChoiceList(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	renderedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadyRendered := seenChoices[normalizedChoice]; alreadyRendered {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			renderedChoices = append(renderedChoices, strings.ToUpper(trimmedChoice))
			continue
		}
		renderedChoices = append(renderedChoices, trimmedChoice)
	}

	return renderedChoices
}
