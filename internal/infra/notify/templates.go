package notify

import (
	"fmt"
	"html"
	"strings"
	"time"
)

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// formatSlot renders "3월 2일(월) 10:00-11:00".
func formatSlot(start, end time.Time, loc *time.Location) string {
	s, e := start.In(loc), end.In(loc)
	return fmt.Sprintf("%d월 %d일(%s) %s-%s",
		int(s.Month()), s.Day(), weekdays[s.Weekday()], s.Format("15:04"), e.Format("15:04"))
}

type note struct {
	Subject string
	Lines   []string
}

func (m note) text() string {
	return strings.Join(m.Lines, "\n")
}

func (m note) html() string {
	var b strings.Builder
	for _, l := range m.Lines {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(l))
		b.WriteString("</p>")
	}
	return b.String()
}

func (m note) mail(to ...string) Mail {
	return Mail{To: to, Subject: m.Subject, HTML: m.html(), Text: m.text()}
}

func bookedMessage(title, slot, meet string) note {
	m := note{
		Subject: "[예약매니아] 예약이 확정되었습니다",
		Lines:   []string{fmt.Sprintf("%s 수업이 예약되었습니다.", title), "일시: " + slot},
	}
	if meet != "" {
		m.Lines = append(m.Lines, "Google Meet: "+meet)
	}
	return m
}

func cancelledMessage(title, slot string, refunded bool) note {
	m := note{
		Subject: "[예약매니아] 예약이 취소되었습니다",
		Lines:   []string{fmt.Sprintf("%s 수업 예약이 취소되었습니다.", title), "일시: " + slot},
	}
	if refunded {
		m.Lines = append(m.Lines, "사용한 수업 횟수 1회가 복원되었습니다.")
	}
	return m
}

func reminderMessage(title, slot, meet string) note {
	m := note{
		Subject: "[예약매니아] 내일 수업 안내",
		Lines:   []string{fmt.Sprintf("내일 %s 수업이 있습니다.", title), "일시: " + slot},
	}
	if meet != "" {
		m.Lines = append(m.Lines, "Google Meet: "+meet)
	}
	return m
}

func invitationMessage(instructor, title, code string, expires time.Time, loc *time.Location) note {
	return note{
		Subject: fmt.Sprintf("[예약매니아] %s 님이 수업에 초대했습니다", instructor),
		Lines: []string{
			fmt.Sprintf("%s 님이 %s 수업에 초대했습니다.", instructor, title),
			"초대 코드: " + code,
			"유효 기간: " + expires.In(loc).Format("2006-01-02 15:04") + " 까지",
		},
	}
}
