package i18n

import "sync"

// Translator retrieves localized headings for error codes.
// data provides optional metadata to embed in the message (for example,
// "stage").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "syntax_error":
			return "構文エラー"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "形式が不正です"
		case "arity":
			return "要素数が一致しません"
		case "tag_mismatch":
			return "タグが一致しません"
		case "missing_key":
			return "キーが見つかりません"
		case "missing_value":
			return "値がありません"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "syntax_error":
			return "syntax error"
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			return "invalid format"
		case "arity":
			return "wrong number of elements"
		case "tag_mismatch":
			return "tag mismatch"
		case "missing_key":
			return "missing key"
		case "missing_value":
			return "missing value"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
