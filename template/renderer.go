// Package template renders widget HTML fragments from extracted structured
// data using html/template. The markup carries the source site's Tailwind
// classes so injected widgets match the surrounding theme.
package template

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/dhalloran/adorn"
)

// Per-type item caps keep widgets readable; assessors occasionally extract
// far more entries than a sidebar can hold.
const (
	maxTimelineEvents = 8
	maxKeyFacts       = 12
	maxStatCards      = 6
	maxDefinitions    = 5
)

// TimelineEvent is one entry of a timeline widget.
type TimelineEvent struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// KeyFact is one row of a key-facts panel.
type KeyFact struct {
	Label  string   `json:"label"`
	Values FactList `json:"values"`
}

// FactList accepts either a JSON string or a list of strings; assessors
// return both shapes.
type FactList []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FactList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*f = FactList{single}
	return nil
}

// StatCard is one card of a stat-cards grid.
type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

// Definition is one entry of a key-definitions box.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

var timelineTmpl = template.Must(template.New("timeline").Parse(`<div class="widget-timeline mb-4 p-4 rounded-xl bg-neutral-50 border border-neutral-200 dark:bg-neutral-900 dark:border-neutral-800">
  <h3 class="text-base font-semibold mb-3 text-neutral-900 dark:text-neutral-50">Timeline</h3>
  <div class="space-y-2">
{{- range . }}
    <div class="flex gap-2.5">
      <div class="flex flex-col items-center">
        <span class="w-2 h-2 rounded-full border-2 border-sky-500 dark:border-sky-400 mt-1"></span>
        <span class="w-px flex-1 bg-neutral-300 dark:bg-neutral-700"></span>
      </div>
      <div class="pb-2">
        <time class="text-[11px] font-semibold text-sky-600 dark:text-sky-400">{{ .Date }}</time>
        <h4 class="text-sm font-semibold text-neutral-900 dark:text-neutral-100">{{ .Title }}</h4>
        <p class="text-xs text-neutral-500 dark:text-neutral-400">{{ .Description }}</p>
      </div>
    </div>
{{- end }}
  </div>
</div>`))

var keyFactsTmpl = template.Must(template.New("key_facts").Parse(`<aside class="widget-key-facts w-full md:w-80 mb-4 rounded-xl bg-neutral-50 border border-neutral-200 dark:bg-neutral-900 dark:border-neutral-800 overflow-hidden">
  <h3 class="text-base font-semibold px-4 py-3 text-neutral-900 dark:text-neutral-50 border-b border-neutral-200 dark:border-neutral-700">Key Facts</h3>
  <table class="w-full">
    <tbody>
{{- range . }}
      <tr>
        <th class="py-2 pl-4 pr-4 text-left align-top text-sm font-semibold text-neutral-900 dark:text-neutral-100 whitespace-nowrap">{{ .Label }}</th>
        <td class="py-2 pr-4 text-sm text-neutral-500 dark:text-neutral-400 leading-relaxed">{{ range $i, $v := .Values }}{{ if $i }}<br/>{{ end }}{{ $v }}{{ end }}</td>
      </tr>
{{- end }}
    </tbody>
  </table>
</aside>`))

var statCardsTmpl = template.Must(template.New("stat_cards").Parse(`<div class="widget-stat-cards mb-4 p-4 rounded-xl bg-neutral-50 border border-neutral-200 dark:bg-neutral-900 dark:border-neutral-800">
  <div class="grid grid-cols-2 sm:grid-cols-3 gap-2">
{{- range . }}
    <div class="p-3 rounded-lg border border-neutral-200 bg-white dark:border-neutral-700 dark:bg-neutral-800 text-center">
      <p class="text-[11px] uppercase tracking-wide text-neutral-500 dark:text-neutral-400">{{ .Label }}</p>
      <p class="text-lg font-bold text-neutral-900 dark:text-neutral-50">{{ .Value }}</p>
{{- if .Note }}
      <p class="text-[10px] text-neutral-400 dark:text-neutral-500">{{ .Note }}</p>
{{- end }}
    </div>
{{- end }}
  </div>
</div>`))

var definitionsTmpl = template.Must(template.New("key_definitions").Parse(`<div class="widget-key-definitions mb-4 p-4 rounded-xl bg-neutral-50 border border-neutral-200 dark:bg-neutral-900 dark:border-neutral-800">
  <h3 class="text-base font-semibold mb-2 text-neutral-900 dark:text-neutral-50">Key Terms</h3>
  <div>
{{- range $i, $d := . }}
    <div{{ if $i }} class="border-t border-neutral-200 dark:border-neutral-700 pt-2 mt-2"{{ end }}>
      <span class="text-sm font-semibold text-neutral-900 dark:text-neutral-100">{{ $d.Term }}</span>
      <span class="text-neutral-400 mx-1">&mdash;</span>
      <span class="text-xs text-neutral-500 dark:text-neutral-400">{{ $d.Definition }}</span>
    </div>
{{- end }}
  </div>
</div>`))

// Ensure Renderer implements adorn.WidgetRenderer at compile time.
var _ adorn.WidgetRenderer = (*Renderer)(nil)

// Renderer renders the supported widget types.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render turns extracted data into an HTML fragment. Unsupported types and
// empty data render as an empty fragment, which callers treat as a skip.
// Malformed data that does not match the type's schema is EINVALID.
func (r *Renderer) Render(widgetType adorn.WidgetType, data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	switch widgetType {
	case adorn.WidgetTimeline:
		return renderItems[TimelineEvent](timelineTmpl, data, maxTimelineEvents)
	case adorn.WidgetKeyFacts:
		return renderItems[KeyFact](keyFactsTmpl, data, maxKeyFacts)
	case adorn.WidgetStatCards:
		return renderItems[StatCard](statCardsTmpl, data, maxStatCards)
	case adorn.WidgetKeyDefinitions:
		return renderItems[Definition](definitionsTmpl, data, maxDefinitions)
	default:
		return "", nil
	}
}

func renderItems[T any](tmpl *template.Template, data json.RawMessage, max int) (string, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return "", adorn.Errorf(adorn.EINVALID, "widget data does not match schema: %v", err)
	}
	if len(items) == 0 {
		return "", nil
	}
	if len(items) > max {
		items = items[:max]
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, items); err != nil {
		return "", adorn.Errorf(adorn.EINTERNAL, "widget template failed: %v", err)
	}
	return sb.String(), nil
}
