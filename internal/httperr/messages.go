package httperr

// messages holds the user-facing text for every business code.
var messages = map[string]string{
	"internal_error":             "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주세요.",
	"invalid_request":            "요청 형식이 올바르지 않습니다.",
	"invalid_time_range":         "종료 시간은 시작 시간 이후여야 합니다.",
	"invalid_date":               "날짜 형식이 올바르지 않습니다.",
	"invalid_status":             "허용되지 않는 예약 상태입니다.",
	"invalid_state":              "현재 예약 상태에서는 처리할 수 없습니다.",
	"invalid_attendance":         "출석 상태는 attended, absent, late 중 하나여야 합니다.",
	"invalid_role":               "역할은 instructor 또는 student 중 하나여야 합니다.",
	"invalid_schedule":           "근무 시간 설정이 올바르지 않습니다.",
	"invalid_total_sessions":     "총 횟수는 1 이상이어야 합니다.",
	"invalid_remaining_sessions": "남은 횟수는 0 이상 총 횟수 이하여야 합니다.",
	"invalid_package_period":     "만료일은 시작일 이후여야 합니다.",
	"invalid_validity_days":      "유효 기간은 1일 이상이어야 합니다.",
	"missing_name":               "이름을 입력해 주세요.",
	"invalid_timezone":           "지원하지 않는 시간대입니다.",
	"invalid_refund_window":      "환불 가능 시간은 0시간에서 720시간 사이여야 합니다.",
	"invalid_email":              "이메일 주소가 올바르지 않습니다.",
	"invalid_image":              "이미지 파일을 읽을 수 없습니다.",
	"range_too_long":             "조회 기간이 너무 깁니다.",
	"missing_title":              "제목을 입력해 주세요.",
	"invalid_duration":           "수업 시간은 0분보다 커야 합니다.",
	"invalid_price":              "가격은 0 이상이어야 합니다.",
	"invalid_coaching_type":      "수업 유형은 private 또는 group 이어야 합니다.",

	"user_not_found":        "사용자를 찾을 수 없습니다.",
	"instructor_not_found":  "강사를 찾을 수 없습니다.",
	"coaching_not_found":    "코칭을 찾을 수 없습니다.",
	"coaching_inactive":     "비활성화된 코칭입니다.",
	"package_not_found":     "패키지를 찾을 수 없습니다.",
	"template_not_found":    "패키지 템플릿을 찾을 수 없습니다.",
	"reservation_not_found": "예약을 찾을 수 없습니다.",
	"settings_not_found":    "설정을 찾을 수 없습니다.",
	"google_not_connected":  "Google 계정이 연결되어 있지 않습니다.",

	"package_mismatch":    "해당 수강생/강사의 패키지가 아닙니다.",
	"package_expired":     "만료된 패키지입니다.",
	"insufficient_credit": "남은 수업 횟수가 없습니다.",
	"credit_at_capacity":  "이미 모든 횟수가 남아 있는 패키지입니다.",

	"invitation_not_found":      "유효하지 않은 초대 코드입니다.",
	"invitation_used":           "이미 사용된 초대 코드입니다.",
	"invitation_expired":        "만료된 초대 코드입니다.",
	"invitation_email_mismatch": "초대받은 이메일과 로그인한 이메일이 다릅니다.",
	"invitation_code_exhausted": "초대 코드를 생성하지 못했습니다. 다시 시도해 주세요.",

	"slug_taken":      "이미 사용 중인 주소입니다.",
	"duplicate_entry": "이미 존재하는 항목입니다.",

	"forbidden":             "권한이 없습니다.",
	"instructor_only":       "강사만 사용할 수 있는 기능입니다.",
	"invalid_oauth_state":   "로그인 요청이 만료되었습니다. 다시 로그인해 주세요.",
	"oauth_exchange_failed": "Google 로그인에 실패했습니다.",
	"invalid_id_token":      "Google 인증 정보를 확인할 수 없습니다.",
	"storage_unavailable":   "파일 저장소를 사용할 수 없습니다.",
	"upload_failed":         "파일 업로드에 실패했습니다.",

	"missing_authorization_header": "로그인이 필요합니다.",
	"invalid_authorization_header": "인증 헤더 형식이 올바르지 않습니다.",
	"invalid_token":                "로그인 정보가 만료되었습니다. 다시 로그인해 주세요.",
	"invalid_token_payload":        "로그인 정보가 올바르지 않습니다.",
	"invalid_id":                   "잘못된 ID 형식입니다.",
	"missing_file":                 "업로드할 파일을 선택해 주세요.",
}

// Message returns the localized message for code, or a generic one.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages["internal_error"]
}
