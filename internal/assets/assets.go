package assets

import (
	"embed"
	"fmt"
	"strings"
)

// ModelsData holds the raw JSON catalog of supported models, grouped by provider.
//
//go:embed models.json
var ModelsData []byte

//go:embed prompts/*.txt
var prompts embed.FS

// Prompt loads a built-in prompt template by name (without extension) and
// substitutes {{key}} placeholders from vars.
func Prompt(name string, vars map[string]string) (string, error) {
	data, err := prompts.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", name, err)
	}
	out := strings.TrimSpace(string(data))
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out, nil
}
