package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for error codes.
// data carries the values substituted into {placeholders} (for example
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogues = map[string]map[string]string{
	"en": {
		"required":      "Missing required field: {field}",
		"invalid_type":  "Value does not match type: {type}",
		"not_a_list":    "Value does not match type: {type}",
		"not_a_map":     "Value does not match type: {type}",
		"instantiation": "Unable to instantiate type: {type}",
		"population":    "Unable to populate field: {field}",
	},
	"ja": {
		"required":      "必須フィールドがありません: {field}",
		"invalid_type":  "値が型と一致しません: {type}",
		"not_a_list":    "値が型と一致しません: {type}",
		"not_a_map":     "値が型と一致しません: {type}",
		"instantiation": "型を生成できません: {type}",
		"population":    "フィールドを設定できません: {field}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogues[t.lang][code]
	if !ok {
		return code
	}
	return Expand(tmpl, data)
}

// Expand substitutes {key} placeholders in tmpl. Unknown placeholders are
// left untouched.
func Expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                 sync.RWMutex
	current Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogues[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation. nil restores the
// English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	current = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := current
	mu.RUnlock()
	return tr.Message(code, data)
}
