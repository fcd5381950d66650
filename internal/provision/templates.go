package provision

import (
	"embed"
	"fmt"
)

const (
	lintHookNameConstant                    = "commit-msg"
	preCommitHookNameConstant               = "pre-commit"
	prePushHookNameConstant                 = "pre-push"
	templateDirectoryNameConstant           = "templates"
	templatePathSeparatorConstant           = "/"
	hookTemplateReadFailureTemplateConstant = "failed to read hook template %q: %w"
)

//go:embed templates
var embeddedHookTemplates embed.FS

// hookTemplateContent returns the embedded template bytes for the named hook.
func hookTemplateContent(templateName string) ([]byte, error) {
	templatePath := templateDirectoryNameConstant + templatePathSeparatorConstant + templateName
	templateContent, readError := embeddedHookTemplates.ReadFile(templatePath)
	if readError != nil {
		return nil, fmt.Errorf(hookTemplateReadFailureTemplateConstant, templateName, readError)
	}
	return templateContent, nil
}
