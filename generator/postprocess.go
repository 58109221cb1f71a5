package generator

import "strings"

// PostProcess 校验模型输出并替换占位符。
func PostProcess(raw string, placeholders map[string]string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return Substitute(text, placeholders), nil
}
