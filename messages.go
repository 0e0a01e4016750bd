package caret

import "golang.org/x/text/language"

// Human-readable error text is looked up per the engine's configured
// language. The language has no behavioral effect beyond QueryError.Message.

var messageLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.Korean,
}

var messageMatcher = language.NewMatcher(messageLanguages)

var messageTables = map[language.Tag]map[ErrorCode]string{
	language.English: {
		CodeAtBoundary:               "no neighbor in the requested direction",
		CodeInvalidDirection:         "direction must be left or right",
		CodeInvalidBoundaryDirection: "boundary resolution requires a left or right direction",
		CodeInvalidAnchor:            "anchor does not match the operation",
		CodeInvalidSearch:            "offset exceeds text length",
		CodeOffsetOutOfRange:         "offset outside the addressable range",
		CodeInvalidOffsetAnchor:      "anchor cannot reach the configured root",
		CodeInternal:                 "internal error",
		CodeNotSupported:             "operation not supported",
	},
	language.Korean: {
		CodeAtBoundary:               "요청한 방향에 인접한 위치가 없습니다",
		CodeInvalidDirection:         "방향은 왼쪽 또는 오른쪽이어야 합니다",
		CodeInvalidBoundaryDirection: "경계 탐색은 왼쪽 또는 오른쪽 방향만 지원합니다",
		CodeInvalidAnchor:            "앵커가 연산과 일치하지 않습니다",
		CodeInvalidSearch:            "오프셋이 텍스트 길이를 초과합니다",
		CodeOffsetOutOfRange:         "오프셋이 주소 범위를 벗어났습니다",
		CodeInvalidOffsetAnchor:      "앵커에서 루트에 도달할 수 없습니다",
		CodeInternal:                 "내부 오류",
		CodeNotSupported:             "지원하지 않는 연산입니다",
	},
}

// matchLanguage resolves a BCP 47 language tag string (such as "ko-KR") to
// the closest supported message language. Empty or unrecognized tags fall
// back to English.
func matchLanguage(tag string) language.Tag {
	if tag == "" {
		return messageLanguages[0]
	}
	_, index, conf := messageMatcher.Match(language.Make(tag))
	if conf == language.No {
		return messageLanguages[0]
	}
	return messageLanguages[index]
}

// messageFor returns the localized message for a code, falling back to the
// English table for languages or codes with no entry.
func messageFor(tag language.Tag, code ErrorCode) string {
	if table, ok := messageTables[tag]; ok {
		if msg, ok := table[code]; ok {
			return msg
		}
	}
	return messageTables[messageLanguages[0]][code]
}
