package messages

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves human-readable messages for issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "fields").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":           "Invalid value type.",
		"required":               "Missing data for required field.",
		"null":                   "Field may not be null.",
		"pattern":                "String does not match expected pattern.",
		"too_small":              "Must be at least {min}.",
		"too_big":                "Must be at most {max}.",
		"too_short":              "Shorter than minimum length {min}.",
		"too_long":               "Longer than maximum length {max}.",
		"invalid_enum":           "Not a valid choice.",
		"invalid_url":            "Not a valid URL.",
		"parse_error":            "Could not parse input.",
		"invalid_object_id":      "Not a valid ObjectId.",
		"invalid_uuid":           "Not a valid UUID.",
		"required_field_missing": "Required field missing from output: {field}",
		"required_field_empty":   "Required field is empty in output: {field}",
		"unsupported_fields":     "Unexpected field(s): {fields}",
		"invalid_request":        "The request is invalid.",
		"invalid_response":       "The response could not be serialized.",
	},
	"ja": {
		"invalid_type":           "型が不正です",
		"required":               "必須プロパティが不足しています",
		"null":                   "null は許可されていません",
		"pattern":                "形式が一致しません",
		"too_small":              "{min} 以上である必要があります",
		"too_big":                "{max} 以下である必要があります",
		"too_short":              "短すぎます",
		"too_long":               "長すぎます",
		"invalid_enum":           "選択肢にない値です",
		"invalid_url":            "URL が不正です",
		"parse_error":            "解析エラー",
		"invalid_object_id":      "ObjectId が不正です",
		"invalid_uuid":           "UUID が不正です",
		"required_field_missing": "出力に必須フィールドがありません: {field}",
		"required_field_empty":   "出力の必須フィールドが空です: {field}",
		"unsupported_fields":     "未対応のフィールドです: {fields}",
		"invalid_request":        "リクエストが不正です",
		"invalid_response":       "レスポンスを生成できません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	d, ok := dictionaries[t.lang]
	if !ok {
		d = dictionaries["en"]
	}
	tmpl, ok := d[code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// Current returns the active Translator.
func Current() Translator {
	mu.RLock()
	defer mu.RUnlock()
	return currentTranslator
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return Current().Message(code, data) }

// expand replaces {name} placeholders with values from data. Unknown
// placeholders are left untouched.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
