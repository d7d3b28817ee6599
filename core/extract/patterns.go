package extract

import "regexp"

// Compiled regex families for fallback extraction.

// === REWARD PATTERNS ===

// rewardKeywords mark a line as talking about compensation. Matching is done
// on the lower-cased line.
var rewardKeywords = []string{
	"포인트", "point", "리워드", "reward", "보상", "혜택", "적립",
	"상품권", "바우처", "voucher", "기프티콘",
	"지급", "페이백", "캐시백", "원고료",
	"금액", "가격", "결제", "구매", "제공",
}

// magnitudeUnit is the alternation of Korean magnitude suffixes, longest first.
const magnitudeUnit = `(?:천만|백만|십만|억|만|천|백|십)`

// rewardSuffix is the currency or point marker that may follow an amount.
const rewardSuffix = `(?:원|포인트|[Pp](?:oints?)?\b)`

// numberToken is a digit run with optional thousands commas and decimals.
const numberToken = `\d[\d,]*(?:\.\d+)?`

// rewardRangePattern matches "1~2만", "5,000-10,000P", "1만원 ~ 2만원".
var rewardRangePattern = regexp.MustCompile(
	numberToken + `\s*` + magnitudeUnit + `*\s*` + rewardSuffix + `?` +
		`\s*[~～〜\-–—]\s*` +
		numberToken + `\s*` + magnitudeUnit + `*\s*` + rewardSuffix + `?`)

// rewardUnitPattern matches Korean-unit amounts such as "1만5천원" or "2.5만".
var rewardUnitPattern = regexp.MustCompile(
	numberToken + `\s*` + magnitudeUnit +
		`(?:\s*` + numberToken + `\s*` + magnitudeUnit + `)*\s*` + rewardSuffix + `?`)

// rewardPlainPattern matches digit amounts that carry a mandatory suffix.
var rewardPlainPattern = regexp.MustCompile(numberToken + `\s*` + rewardSuffix)

// countUnitPattern matches a headcount or quantity unit right after an
// amount-shaped match ("100-200명 모집"), which marks it as not a reward.
var countUnitPattern = regexp.MustCompile(`^\s*(?:명|개|인|팀|건|회|곳|장|매)`)

// === NOISE PATTERNS ===

// Substrings removed from reward lines before amount matching so that their
// dashes and digits are not read as ranges.
var (
	fullDatePattern = regexp.MustCompile(`\d{4}\s*[.\-/년]\s*\d{1,2}\s*[.\-/월]\s*\d{1,2}`)
	clockPattern    = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// === PHONE PATTERNS ===

// phonePattern matches a Korean phone number: optional +82, a 1–2 digit
// area/mobile prefix after the trunk zero, a 3–4 digit middle group and a
// 4-digit final group with flexible separators. Group 1 is the number; the
// surrounding non-digit guards stand in for lookarounds.
var phonePattern = regexp.MustCompile(
	`(?:^|[^\d])((?:\+?82[\s\-.]*\(?0?|\(?0)\d{1,2}\)?[\s\-.]*\d{3,4}[\s\-.]*\d{4})(?:$|[^\d])`)
