package cli

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultPromptTemplate is printed before every input line.
const DefaultPromptTemplate = "> "

// PromptData is the data available to prompt templates.
type PromptData struct {
	Cwd string
}

// ParsePromptTemplate parses a prompt template. Sprig functions are
// available, e.g. `{{ .Cwd | base }} > `.
func ParsePromptTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template: %w", err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
