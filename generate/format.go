package generate

import (
	"strings"
	"text/template"
)

type methodData struct {
	Doc        string
	Related    string
	Name       string
	ReturnType string
	Method     string
	Arguments  string
}

var methodTemplate = template.Must(template.New("method").Parse(`    /**
     * {{ .Doc }} relationship to {{ .Related }}
     */
    public function {{ .Name }}(){{ with .ReturnType }}: {{ . }}{{ end }}
    {
        return $this->{{ .Method }}(
{{ .Arguments }}
        );
    }
`))

const argumentIndent = "            "

// formatArguments: по аргументу на строку с поясняющим комментарием
func formatArguments(args []string) string {
	lines := make([]string, 0, len(args))
	for _, arg := range args {
		lines = append(lines, argumentIndent+strings.TrimSpace(arg)+", "+argumentComment(arg))
	}
	return strings.Join(lines, "\n")
}

func argumentComment(arg string) string {
	switch {
	case strings.Contains(arg, "::class"):
		return "// Related Model Class"
	case strings.Contains(arg, "'"):
		return "// Foreign/Local Key"
	default:
		return "// Other Argument"
	}
}
