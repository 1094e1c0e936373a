package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// キオスク表示用メッセージ。アラビア語が既定、英語はフォールバック。

type Key string

const (
	KeyIdentifierRequired  Key = "identifier_required"
	KeyNotFound            Key = "not_found"
	KeyInvalidRequest      Key = "invalid_request"
	KeyRecorded            Key = "recorded"          // %s = 動作名
	KeyRecordedAtSite      Key = "recorded_at_site"  // %s = 動作名, %s = 拠点名
	KeyDeviceBound         Key = "device_bound"      // %s = 氏名
	KeyAlreadyCheckedIn    Key = "already_checked_in"
	KeyNotCheckedIn        Key = "not_checked_in"
	KeyLateReasonRequired  Key = "late_reason_required"
	KeyBindingRejected     Key = "binding_rejected"
	KeyStorageUnavailable  Key = "storage_unavailable"
)

var supported = []language.Tag{
	language.Arabic, // 最初の要素が既定
	language.English,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.Arabic: {
		KeyIdentifierRequired: "الإدخال مطلوب.",
		KeyNotFound:           "المعرّف غير مسجل بالنظام. يرجى التحقق من الكود أو رقم الهاتف.",
		KeyInvalidRequest:     "بيانات الطلب غير مكتملة.",
		KeyRecorded:           "تم تسجيل '%s' بنجاح.",
		KeyRecordedAtSite:     "تم تسجيل '%s' بنجاح من موقع '%s'.",
		KeyDeviceBound:        "تم ربط هذا المتصفح بنجاح! مرحباً بك يا %s.",
		KeyAlreadyCheckedIn:   "لا يمكنك تسجيل الحضور مرتين.",
		KeyNotCheckedIn:       "لا يمكنك تسجيل الانصراف قبل الحضور.",
		KeyLateReasonRequired: "أنت متأخر اليوم، يرجى اختيار سبب التأخير أولاً.",
		KeyBindingRejected:    "تعذّر قبول هذا الجهاز. يرجى مراجعة الإدارة.",
		KeyStorageUnavailable: "حدث خطأ في الخادم، يرجى المحاولة بعد قليل.",
	},
	language.English: {
		KeyIdentifierRequired: "An identifier is required.",
		KeyNotFound:           "This identifier is not registered. Check your code or phone number.",
		KeyInvalidRequest:     "The request is incomplete.",
		KeyRecorded:           "'%s' recorded successfully.",
		KeyRecordedAtSite:     "'%s' recorded successfully at '%s'.",
		KeyDeviceBound:        "This browser is now linked to you. Welcome, %s!",
		KeyAlreadyCheckedIn:   "You have already checked in.",
		KeyNotCheckedIn:       "You cannot check out before checking in.",
		KeyLateReasonRequired: "You are late today, please pick a reason first.",
		KeyBindingRejected:    "This device cannot be accepted. Please contact the administrator.",
		KeyStorageUnavailable: "A server error occurred, please try again shortly.",
	},
}

type Catalog struct {
	tag language.Tag
}

// Pick: Accept-Language ヘッダから最適な言語を選ぶ。不明なら既定（ar）。
func Pick(acceptLanguage string) Catalog {
	if acceptLanguage == "" {
		return Catalog{tag: supported[0]}
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Catalog{tag: supported[0]}
	}
	_, idx, _ := matcher.Match(tags...)
	return Catalog{tag: supported[idx]}
}

func (c Catalog) Tag() language.Tag { return c.tag }

func (c Catalog) T(k Key, args ...any) string {
	m, ok := messages[c.tag]
	if !ok {
		m = messages[supported[0]]
	}
	tmpl, ok := m[k]
	if !ok {
		// キー漏れは英語側で補う
		tmpl, ok = messages[language.English][k]
		if !ok {
			return string(k)
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
