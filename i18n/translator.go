package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "column" or "want").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_column":
			return "列が不足しています"
		case "unknown_column":
			return "未知の列です"
		case "column_order":
			return "列の順序が一致しません"
		case "index_mismatch":
			return "インデックスが一致しません"
		case "index_unsorted":
			return "インデックスがソートされていません"
		case "max_depth":
			return "ネストが深すぎます"
		case "cycle":
			return "循環参照を検出しました"
		case "coercion":
			return "型変換に失敗しました"
		case "invalid_dtype":
			return "データ型が不正です"
		case "not_null":
			return "欠損値は許可されていません"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "invalid_enum":
			return "許可されていない値です"
		case "pattern":
			return "文字列制約に違反しています"
		case "uniqueness":
			return "値が重複しています"
		case "custom_check":
			return "カスタムチェックに失敗しました"
		case "definition":
			return "スキーマ定義が不正です"
		}
	default: // "en"
		switch code {
		case "missing_column":
			return "required column missing"
		case "unknown_column":
			return "unknown column"
		case "column_order":
			return "columns out of declared order"
		case "index_mismatch":
			return "index does not match declaration"
		case "index_unsorted":
			return "index not sorted"
		case "max_depth":
			return "nesting too deep"
		case "cycle":
			return "cyclic container detected"
		case "coercion":
			return "cannot coerce to declared dtype"
		case "invalid_dtype":
			return "invalid dtype"
		case "not_null":
			return "null values not allowed"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "invalid_enum":
			return "value not allowed"
		case "pattern":
			return "string constraint violated"
		case "uniqueness":
			return "duplicate value"
		case "custom_check":
			return "custom check failed"
		case "definition":
			return "malformed schema definition"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
