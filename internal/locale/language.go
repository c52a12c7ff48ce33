// Package locale holds the supported reply languages and the message catalog
// used by formatters. Everything here is loaded once and read-only afterwards.
package locale

import (
	"golang.org/x/text/language"
)

// Language is a reply language, keyed by its BCP 47 tag.
type Language string

const (
	English  Language = "en"
	Spanish  Language = "es"
	French   Language = "fr"
	Italian  Language = "it"
	German   Language = "de"
	Japanese Language = "ja"
	Chinese  Language = "zh-Hans"
	Korean   Language = "ko"
)

// Supported lists every language in catalog column order.
var Supported = []Language{English, Spanish, French, Italian, German, Japanese, Chinese, Korean}

var names = map[Language]string{
	English:  "English",
	Spanish:  "Spanish",
	French:   "French",
	Italian:  "Italian",
	German:   "German",
	Japanese: "Japanese",
	Chinese:  "Chinese",
	Korean:   "Korean",
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(Supported))
	for i, l := range Supported {
		tags[i] = language.Make(string(l))
	}
	return language.NewMatcher(tags)
}()

// ParseLanguage maps any BCP 47 tag ("en-US", "zh-CN", "ja-JP") onto a supported
// language. Unparseable or unsupported input falls back to English.
func ParseLanguage(s string) Language {
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return Supported[idx]
}

// Name is the English display name of the language.
func (l Language) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return string(l)
}

// FlexKey is the language key the remote data API uses in localized names.
func (l Language) FlexKey() string {
	switch l {
	case Japanese:
		return "ja-Hrkt"
	case "":
		return string(English)
	default:
		return string(l)
	}
}

// Tag returns the x/text tag of the language.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}
