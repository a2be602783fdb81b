package bot

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rbhz/global-dictionary/app/ui"
)

// resultTemplate renders a lookup view with the Telegram HTML subset
const resultTemplate = `
{{- if .Error }}⚠️ {{ .Error }}
{{ end }}
{{- with .Result -}}
<b>{{ .Word }}</b>{{ if .Phonetic }} <i>{{ .Phonetic }}</i>{{ end }}
{{- range $idx, $d := .Definitions }}

{{ inc $idx }}. <i>{{ $d.PartOfSpeech }}{{ if $d.TranslatedPartOfSpeech }} / {{ $d.TranslatedPartOfSpeech }}{{ end }}</i>
<code>{{ $d.Definition }}</code>
{{- if $d.Example }}
"{{ $d.Example }}"
{{- if $d.TranslatedExample }}
"{{ $d.TranslatedExample }}"
{{- end }}
{{- end }}
{{- if $d.Synonyms }}
<u>Synonyms</u>:{{ range $d.Synonyms }} {{ .Text }} ({{ .Title }}){{ end }}
{{- end }}
{{- if $d.Antonyms }}
<u>Antonyms</u>:{{ range $d.Antonyms }} {{ .Text }} ({{ .Title }}){{ end }}
{{- end }}
{{- else }}

{{ noDefinitions }}
{{- end }}
___
{{ with .Translation }}<b>{{ .Lang }}</b>: {{ .Text }}{{ else }}{{ noTranslation }}{{ end }}
{{- end -}}
`

var resultTmpl = template.Must(template.New("result").Funcs(template.FuncMap{
	"inc":           func(i int) int { return i + 1 },
	"noDefinitions": func() string { return ui.NoDefinitionsText },
	"noTranslation": func() string { return ui.TranslationUnavailable },
}).Parse(resultTemplate))

// GetResultMessageText executes template with lookup view data
func GetResultMessageText(view ui.View) (string, error) {
	buf := &bytes.Buffer{}
	if err := resultTmpl.Execute(buf, view); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
